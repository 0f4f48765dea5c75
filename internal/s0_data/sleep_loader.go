package s0_data

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// Sleep CSV columns
const (
	ColumnSleepDate  = "dt"
	ColumnSleepScore = "sleep_score"
)

// SleepLoader 수면 점수 CSV 로더 + 이동평균
// ⭐ SSOT: 수면 파일 파싱은 이 타입에서만
type SleepLoader struct {
	file string
	log  zerolog.Logger
}

// NewSleepLoader 새 로더 생성 (file은 root 기준 상대 경로)
// log는 호출자가 logger.Component로 태깅해서 전달
func NewSleepLoader(file string, log zerolog.Logger) *SleepLoader {
	return &SleepLoader{
		file: file,
		log:  log,
	}
}

var _ contracts.SleepLoader = (*SleepLoader)(nil)

// Load reads the sleep file under root, sorts by date and smooths
// sleep_score with a trailing moving average of the given window.
func (l *SleepLoader) Load(ctx context.Context, root string, window int) ([]contracts.SleepRecord, error) {
	if window < 1 {
		return nil, &contracts.InvalidWindowError{Window: window}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := l.ReadRaw(root)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	smoothed, err := MovingAverage(raw, window)
	if err != nil {
		return nil, err
	}

	l.log.Debug().
		Int("rows", len(smoothed)).
		Int("window", window).
		Int("missing", countMissing(smoothed)).
		Msg("sleep series smoothed")

	return smoothed, nil
}

// ReadRaw reads the sleep file without smoothing. Records are sorted by
// date; a repeated date is a load error.
func (l *SleepLoader) ReadRaw(root string) ([]contracts.SleepRecord, error) {
	path := filepath.Join(root, l.file)

	t, err := readTable(path, ColumnSleepDate, ColumnSleepScore)
	if err != nil {
		return nil, err
	}

	dates, present, err := t.cells(ColumnSleepDate)
	if err != nil {
		return nil, err
	}
	scores, err := t.floats(ColumnSleepScore)
	if err != nil {
		return nil, err
	}

	records := make([]contracts.SleepRecord, 0, t.rows)
	lines := make(map[int64]int, t.rows)
	for i := 0; i < t.rows; i++ {
		if !present[i] {
			return nil, &contracts.DataLoadError{
				Path: path, Line: t.line(i), Column: ColumnSleepDate,
				Err: fmt.Errorf("missing date"),
			}
		}
		ts, err := parseTime(dates[i], sleepDateLayouts)
		if err != nil {
			return nil, &contracts.DataLoadError{Path: path, Line: t.line(i), Column: ColumnSleepDate, Err: err}
		}

		date := contracts.DateOf(ts)
		if prev, dup := lines[date.Unix()]; dup {
			return nil, &contracts.DataLoadError{
				Path: path, Line: t.line(i), Column: ColumnSleepDate,
				Err: fmt.Errorf("duplicate date %s (first seen on line %d)", date.Format(contracts.DateLayout), prev),
			}
		}
		lines[date.Unix()] = t.line(i)

		records = append(records, contracts.SleepRecord{Date: date, SleepScore: scores[i]})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	l.log.Debug().Str("path", path).Int("rows", len(records)).Msg("sleep file read")

	return records, nil
}

func countMissing(records []contracts.SleepRecord) int {
	n := 0
	for _, r := range records {
		if !r.SleepScore.Valid {
			n++
		}
	}
	return n
}
