package s1_series

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// Assembler joins the smoothed sleep series with daily weather
type Assembler struct {
	sleep   contracts.SleepLoader
	weather contracts.WeatherLoader
	log     zerolog.Logger
}

// NewAssembler creates a new Assembler
func NewAssembler(sleep contracts.SleepLoader, weather contracts.WeatherLoader, log zerolog.Logger) *Assembler {
	return &Assembler{
		sleep:   sleep,
		weather: weather,
		log:     log,
	}
}

var _ contracts.SeriesAssembler = (*Assembler)(nil)

// Assemble builds the estimator input for root with the given smoothing window
// ⭐ SSOT: S0 → S1 시계열 조립
func (a *Assembler) Assemble(ctx context.Context, root string, window int) (*contracts.CausalInputSeries, error) {
	// 1. 수면 (이동평균 포함)
	sleep, err := a.sleep.Load(ctx, root, window)
	if err != nil {
		return nil, fmt.Errorf("load sleep: %w", err)
	}
	if len(sleep) == 0 {
		return nil, &contracts.EmptyResultError{}
	}

	// 2. 기상 조회 범위 = 평활화된 수면 시계열의 min/max (선행 결측 행 포함)
	minDate, maxDate := sleep[0].Date, sleep[len(sleep)-1].Date
	for _, r := range sleep {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	weather, err := a.weather.Load(ctx, root, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("load weather: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. inner join → 결측 행 제거
	joined := Join(sleep, weather)
	rows := DropIncomplete(joined)

	stats := contracts.AssemblyStats{
		SleepRows:   len(sleep),
		WeatherDays: len(weather),
		JoinedRows:  len(joined),
		DroppedRows: len(joined) - len(rows),
	}

	if len(rows) == 0 {
		return nil, &contracts.EmptyResultError{
			SleepRows:   stats.SleepRows,
			WeatherDays: stats.WeatherDays,
			JoinedRows:  stats.JoinedRows,
		}
	}

	a.log.Info().
		Int("sleep_rows", stats.SleepRows).
		Int("weather_days", stats.WeatherDays).
		Int("joined", stats.JoinedRows).
		Int("dropped", stats.DroppedRows).
		Str("first", rows[0].Date.Format(contracts.DateLayout)).
		Str("last", rows[len(rows)-1].Date.Format(contracts.DateLayout)).
		Msg("series assembled")

	return &contracts.CausalInputSeries{Rows: rows, Stats: stats}, nil
}
