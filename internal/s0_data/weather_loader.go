package s0_data

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// Weather CSV columns. sea_level, grnd_level and the weather_* text
// columns may be present but are not read.
const (
	ColumnWeatherTime = "dt_iso"
	ColumnCity        = "city_name"
	ColumnTempMin     = "temp_min"
	ColumnTempMax     = "temp_max"
	ColumnHumidity    = "humidity"
)

// WeatherLoader 시간별 기상 CSV 로더 + 일별 집계
// ⭐ SSOT: 기상 파일 파싱/일 단위 변환은 이 타입에서만
type WeatherLoader struct {
	file string
	loc  *time.Location // 관측 시각 → 달력 날짜 변환 기준 시간대
	log  zerolog.Logger
}

// NewWeatherLoader 새 로더 생성. loc이 nil이면 UTC
func NewWeatherLoader(file string, loc *time.Location, log zerolog.Logger) *WeatherLoader {
	if loc == nil {
		loc = time.UTC
	}
	return &WeatherLoader{
		file: file,
		loc:  loc,
		log:  log,
	}
}

var _ contracts.WeatherLoader = (*WeatherLoader)(nil)

// Load returns daily weather for minDate..maxDate inclusive, ascending.
// The range is checked before the file is opened.
func (l *WeatherLoader) Load(ctx context.Context, root string, minDate, maxDate time.Time) ([]contracts.DailyWeather, error) {
	lo, hi := contracts.DateOf(minDate), contracts.DateOf(maxDate)
	if lo.After(hi) {
		return nil, &contracts.InvalidRangeError{Min: lo, Max: hi}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obs, err := l.ReadObservations(root)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	days := AggregateDaily(obs, l.loc)
	filtered := FilterRange(days, lo, hi)

	l.log.Debug().
		Int("observations", len(obs)).
		Int("days", len(days)).
		Int("in_range", len(filtered)).
		Str("from", lo.Format(contracts.DateLayout)).
		Str("to", hi.Format(contracts.DateLayout)).
		Msg("weather aggregated")

	return filtered, nil
}

// ReadObservations reads the raw hourly rows of the weather file.
func (l *WeatherLoader) ReadObservations(root string) ([]contracts.WeatherObservation, error) {
	path := filepath.Join(root, l.file)

	t, err := readTable(path, ColumnWeatherTime, ColumnTempMin, ColumnTempMax, ColumnHumidity)
	if err != nil {
		return nil, err
	}

	stamps, present, err := t.cells(ColumnWeatherTime)
	if err != nil {
		return nil, err
	}
	tempMin, err := t.floats(ColumnTempMin)
	if err != nil {
		return nil, err
	}
	tempMax, err := t.floats(ColumnTempMax)
	if err != nil {
		return nil, err
	}
	humidity, err := t.floats(ColumnHumidity)
	if err != nil {
		return nil, err
	}

	// city_name is optional
	cities := make([]string, t.rows)
	if t.has(ColumnCity) {
		if cities, _, err = t.cells(ColumnCity); err != nil {
			return nil, err
		}
	}

	obs := make([]contracts.WeatherObservation, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if !present[i] {
			return nil, &contracts.DataLoadError{
				Path: path, Line: t.line(i), Column: ColumnWeatherTime,
				Err: fmt.Errorf("missing timestamp"),
			}
		}
		ts, err := parseTime(stamps[i], weatherTimeLayouts)
		if err != nil {
			return nil, &contracts.DataLoadError{Path: path, Line: t.line(i), Column: ColumnWeatherTime, Err: err}
		}

		obs = append(obs, contracts.WeatherObservation{
			Timestamp: ts,
			City:      cities[i],
			TempMin:   tempMin[i],
			TempMax:   tempMax[i],
			Humidity:  humidity[i],
		})
	}

	l.log.Debug().Str("path", path).Int("rows", len(obs)).Msg("weather file read")

	return obs, nil
}
