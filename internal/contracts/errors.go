package contracts

import (
	"fmt"
	"time"
)

// DataLoadError 소스 파일 누락 또는 형식 오류 (치명적, 재시도 없음)
type DataLoadError struct {
	Path   string
	Line   int    // 1-based CSV line, 0 if not row-specific
	Column string // offending column, empty if not column-specific
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %q: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Path, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// InvalidRangeError min_date > max_date (호출자 책임)
type InvalidRangeError struct {
	Min time.Time
	Max time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: min %s is after max %s",
		e.Min.Format(DateLayout), e.Max.Format(DateLayout))
}

// InvalidWindowError 이동평균 윈도우 < 1
type InvalidWindowError struct {
	Window int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid smoothing window %d: must be >= 1", e.Window)
}

// EmptyResultError join 결과 완전한 행이 0개 (상위 데이터 커버리지 문제)
type EmptyResultError struct {
	SleepRows   int
	WeatherDays int
	JoinedRows  int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no complete rows after join (sleep=%d, weather_days=%d, joined=%d)",
		e.SleepRows, e.WeatherDays, e.JoinedRows)
}
