package contracts

import (
	"context"
	"time"
)

// SleepLoader reads and smooths sleep scores (S0)
// ⭐ SSOT: S0 수면 데이터 로드 인터페이스
type SleepLoader interface {
	Load(ctx context.Context, root string, window int) ([]SleepRecord, error)
}

// WeatherLoader reads and aggregates weather observations (S0)
// ⭐ SSOT: S0 기상 데이터 로드 인터페이스
type WeatherLoader interface {
	Load(ctx context.Context, root string, minDate, maxDate time.Time) ([]DailyWeather, error)
}

// SeriesAssembler joins sleep and weather into the estimator input (S1)
// ⭐ SSOT: S1 시계열 조립 인터페이스
type SeriesAssembler interface {
	Assemble(ctx context.Context, root string, window int) (*CausalInputSeries, error)
}

// SeriesQualityGate checks an assembled series before handoff (S1)
type SeriesQualityGate interface {
	Check(series *CausalInputSeries) *SeriesQualitySnapshot
}
