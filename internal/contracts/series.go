package contracts

import (
	"fmt"
	"time"
)

// DateLayout 모든 날짜 직렬화에 쓰는 포맷
const DateLayout = "2006-01-02"

// Float 결측을 명시적으로 표현하는 실수값
// ⭐ SSOT: NaN sentinel 대신 Valid 플래그로 결측 표현
type Float struct {
	Value float64
	Valid bool
}

// Some 값이 있는 Float 생성
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Missing 결측 Float
func Missing() Float {
	return Float{}
}

// String implements fmt.Stringer; missing values print as NA.
func (f Float) String() string {
	if !f.Valid {
		return "NA"
	}
	return fmt.Sprintf("%.4f", f.Value)
}

// DateOf truncates t to its civil date in t's own location and returns that
// date as midnight UTC, so dates from different zones compare and hash equally.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SleepRecord 일별 수면 점수 (date 기준 유일)
type SleepRecord struct {
	Date       time.Time `json:"date"`
	SleepScore Float     `json:"sleep_score"`
}

// WeatherObservation 시간 단위 기상 관측치
type WeatherObservation struct {
	Timestamp time.Time `json:"timestamp"`
	City      string    `json:"city_name"`
	TempMin   Float     `json:"temp_min"`
	TempMax   Float     `json:"temp_max"`
	Humidity  Float     `json:"humidity"`
}

// DailyWeather 일별 집계 기상 (min/max reducer, 결측 무시)
type DailyWeather struct {
	Date             time.Time `json:"date"`
	MinDailyTemp     Float     `json:"min_daily_temp"`
	MaxDailyTemp     Float     `json:"max_daily_temp"`
	MinDailyHumidity Float     `json:"min_daily_humidity"`
	MaxDailyHumidity Float     `json:"max_daily_humidity"`
}

// JoinedRow date 기준 inner join 결과 (결측 제거 전)
type JoinedRow struct {
	Date             time.Time
	SleepScore       Float
	MinDailyTemp     Float
	MaxDailyTemp     Float
	MinDailyHumidity Float
	MaxDailyHumidity Float
}

// Complete reports whether every column of the row is present.
func (r JoinedRow) Complete() bool {
	return r.SleepScore.Valid &&
		r.MinDailyTemp.Valid && r.MaxDailyTemp.Valid &&
		r.MinDailyHumidity.Valid && r.MaxDailyHumidity.Valid
}

// Column names of CausalInputSeries. The first column is the response.
const (
	ColumnSleepScore       = "sleep_score"
	ColumnMinDailyTemp     = "min_daily_temp"
	ColumnMaxDailyTemp     = "max_daily_temp"
	ColumnMinDailyHumidity = "min_daily_humidity"
	ColumnMaxDailyHumidity = "max_daily_humidity"
)

// CovariateColumns lists the covariate columns in table order.
var CovariateColumns = []string{
	ColumnMinDailyTemp,
	ColumnMaxDailyTemp,
	ColumnMinDailyHumidity,
	ColumnMaxDailyHumidity,
}

// CausalInputRow 외부 추정기에 넘기는 한 행 (결측 없음)
type CausalInputRow struct {
	Date             time.Time `json:"date"`
	SleepScore       float64   `json:"sleep_score"`
	MinDailyTemp     float64   `json:"min_daily_temp"`
	MaxDailyTemp     float64   `json:"max_daily_temp"`
	MinDailyHumidity float64   `json:"min_daily_humidity"`
	MaxDailyHumidity float64   `json:"max_daily_humidity"`
}

// Column returns the named column value. ok is false for unknown names.
func (r CausalInputRow) Column(name string) (v float64, ok bool) {
	switch name {
	case ColumnSleepScore:
		return r.SleepScore, true
	case ColumnMinDailyTemp:
		return r.MinDailyTemp, true
	case ColumnMaxDailyTemp:
		return r.MaxDailyTemp, true
	case ColumnMinDailyHumidity:
		return r.MinDailyHumidity, true
	case ColumnMaxDailyHumidity:
		return r.MaxDailyHumidity, true
	default:
		return 0, false
	}
}

// AssemblyStats 조립 단계별 행 수
type AssemblyStats struct {
	SleepRows   int `json:"sleep_rows"`
	WeatherDays int `json:"weather_days"`
	JoinedRows  int `json:"joined_rows"`
	DroppedRows int `json:"dropped_rows"`
}

// CausalInputSeries date-indexed 입력 테이블
// ⭐ SSOT: Rows는 date 오름차순, date 유일, 결측 없음
type CausalInputSeries struct {
	Rows  []CausalInputRow `json:"rows"`
	Stats AssemblyStats    `json:"stats"`
}

// Len returns the number of rows.
func (s *CausalInputSeries) Len() int {
	return len(s.Rows)
}

// Dates returns the date index.
func (s *CausalInputSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Rows))
	for i, r := range s.Rows {
		dates[i] = r.Date
	}
	return dates
}

// Span returns the first and last date. ok is false for an empty series.
func (s *CausalInputSeries) Span() (first, last time.Time, ok bool) {
	if len(s.Rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.Rows[0].Date, s.Rows[len(s.Rows)-1].Date, true
}

// Between returns the rows whose date falls in [from, to].
func (s *CausalInputSeries) Between(from, to time.Time) []CausalInputRow {
	var out []CausalInputRow
	for _, r := range s.Rows {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
