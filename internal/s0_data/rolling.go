package s0_data

import (
	"github.com/montanaflynn/stats"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// MovingAverage replaces each score with the trailing mean of window
// consecutive records. Records must already be sorted by date.
//
// The first window-1 outputs are missing, as is any output whose window
// contains a missing score. window = 1 returns the input unchanged.
func MovingAverage(records []contracts.SleepRecord, window int) ([]contracts.SleepRecord, error) {
	if window < 1 {
		return nil, &contracts.InvalidWindowError{Window: window}
	}

	out := make([]contracts.SleepRecord, len(records))
	buf := make(stats.Float64Data, 0, window)

	for i, rec := range records {
		out[i] = contracts.SleepRecord{Date: rec.Date}
		if i < window-1 {
			continue
		}

		buf = buf[:0]
		for _, r := range records[i-window+1 : i+1] {
			if !r.SleepScore.Valid {
				break
			}
			buf = append(buf, r.SleepScore.Value)
		}
		if len(buf) < window {
			continue
		}

		mean, err := stats.Mean(buf)
		if err != nil {
			continue
		}
		out[i].SleepScore = contracts.Some(mean)
	}

	return out, nil
}
