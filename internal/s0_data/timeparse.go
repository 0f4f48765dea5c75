package s0_data

import (
	"fmt"
	"time"
)

// sleepDateLayouts 수면 파일 dt 컬럼 허용 포맷 (순서대로 시도)
var sleepDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// weatherTimeLayouts 기상 파일 dt_iso 컬럼 허용 포맷
// 첫 번째가 OpenWeather bulk export 형식 ("2020-01-01 00:00:00 +0000 UTC")
var weatherTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700 MST",
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// parseTime tries each layout in order. Layouts without a zone are read as UTC.
func parseTime(v string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %q as date/time", v)
}
