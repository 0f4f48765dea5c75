package s1_series

import (
	"sort"
	"time"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// Join inner-joins sleep and weather on date. Rows keep missing values;
// the result is ascending by date.
func Join(sleep []contracts.SleepRecord, weather []contracts.DailyWeather) []contracts.JoinedRow {
	byDate := make(map[time.Time]contracts.DailyWeather, len(weather))
	for _, w := range weather {
		byDate[w.Date] = w
	}

	joined := make([]contracts.JoinedRow, 0, len(sleep))
	for _, s := range sleep {
		w, ok := byDate[s.Date]
		if !ok {
			continue
		}
		joined = append(joined, contracts.JoinedRow{
			Date:             s.Date,
			SleepScore:       s.SleepScore,
			MinDailyTemp:     w.MinDailyTemp,
			MaxDailyTemp:     w.MaxDailyTemp,
			MinDailyHumidity: w.MinDailyHumidity,
			MaxDailyHumidity: w.MaxDailyHumidity,
		})
	}

	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].Date.Before(joined[j].Date)
	})

	return joined
}

// DropIncomplete keeps only rows with every column present.
func DropIncomplete(rows []contracts.JoinedRow) []contracts.CausalInputRow {
	out := make([]contracts.CausalInputRow, 0, len(rows))
	for _, r := range rows {
		if !r.Complete() {
			continue
		}
		out = append(out, contracts.CausalInputRow{
			Date:             r.Date,
			SleepScore:       r.SleepScore.Value,
			MinDailyTemp:     r.MinDailyTemp.Value,
			MaxDailyTemp:     r.MaxDailyTemp.Value,
			MinDailyHumidity: r.MinDailyHumidity.Value,
			MaxDailyHumidity: r.MaxDailyHumidity.Value,
		})
	}
	return out
}
