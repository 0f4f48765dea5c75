package quality

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// QualityGate validates an assembled series before it is handed to the estimator
type QualityGate struct {
	config Config
	log    zerolog.Logger
}

// Config holds quality gate thresholds
type Config struct {
	MinRows     int     `yaml:"min_rows"`     // 14
	MinCoverage float64 `yaml:"min_coverage"` // 0.90 (span 내 날짜 비율)
}

// DefaultConfig returns the thresholds used by the CLI.
func DefaultConfig() Config {
	return Config{
		MinRows:     14,
		MinCoverage: 0.90,
	}
}

// NewQualityGate creates a new QualityGate instance
func NewQualityGate(config Config, log zerolog.Logger) *QualityGate {
	return &QualityGate{
		config: config,
		log:    log,
	}
}

var _ contracts.SeriesQualityGate = (*QualityGate)(nil)

// Check validates ordering, size and calendar coverage of the series
// ⭐ SSOT: S1 → 외부 추정기 품질 검증
func (g *QualityGate) Check(series *contracts.CausalInputSeries) *contracts.SeriesQualitySnapshot {
	snapshot := &contracts.SeriesQualitySnapshot{
		Rows:    series.Len(),
		Ordered: isOrdered(series.Rows),
	}

	// 1. span / gaps
	if first, last, ok := series.Span(); ok {
		snapshot.First = first
		snapshot.Last = last
		snapshot.SpanDays = daysBetween(first, last) + 1
		snapshot.Gaps = findGaps(series.Rows)
	}

	// 2. 커버리지
	if snapshot.SpanDays > 0 {
		snapshot.Coverage = float64(snapshot.Rows) / float64(snapshot.SpanDays)
	}
	if series.Stats.JoinedRows > 0 {
		snapshot.RetainedRatio = float64(snapshot.Rows) / float64(series.Stats.JoinedRows)
	}

	// 3. 판정
	if !snapshot.Ordered {
		snapshot.Reasons = append(snapshot.Reasons, "dates are not strictly ascending")
	}
	if snapshot.Rows < g.config.MinRows {
		snapshot.Reasons = append(snapshot.Reasons,
			fmt.Sprintf("rows %d < min_rows %d", snapshot.Rows, g.config.MinRows))
	}
	if snapshot.Coverage < g.config.MinCoverage {
		snapshot.Reasons = append(snapshot.Reasons,
			fmt.Sprintf("coverage %.2f < min_coverage %.2f", snapshot.Coverage, g.config.MinCoverage))
	}
	snapshot.Passed = len(snapshot.Reasons) == 0

	g.log.Debug().
		Int("rows", snapshot.Rows).
		Int("gaps", len(snapshot.Gaps)).
		Float64("coverage", snapshot.Coverage).
		Bool("passed", snapshot.Passed).
		Msg("series quality checked")

	return snapshot
}

// isOrdered reports strictly ascending (hence unique) dates
func isOrdered(rows []contracts.CausalInputRow) bool {
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Date.Before(rows[i].Date) {
			return false
		}
	}
	return true
}

// findGaps lists calendar dates missing between consecutive rows
func findGaps(rows []contracts.CausalInputRow) []time.Time {
	var gaps []time.Time
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1].Date, rows[i].Date
		for d := prev.AddDate(0, 0, 1); d.Before(cur); d = d.AddDate(0, 0, 1) {
			gaps = append(gaps, d)
		}
	}
	return gaps
}

// daysBetween counts whole calendar days from a to b (UTC midnight dates)
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
