package s0_data

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// dailyBucket 하루치 관측값 (결측 제외)
type dailyBucket struct {
	tempMin  stats.Float64Data
	tempMax  stats.Float64Data
	humidity stats.Float64Data
}

func (b *dailyBucket) add(o contracts.WeatherObservation) {
	if o.TempMin.Valid {
		b.tempMin = append(b.tempMin, o.TempMin.Value)
	}
	if o.TempMax.Valid {
		b.tempMax = append(b.tempMax, o.TempMax.Value)
	}
	if o.Humidity.Valid {
		b.humidity = append(b.humidity, o.Humidity.Value)
	}
}

// AggregateDaily groups observations by calendar date in loc and reduces
// each day to min(temp_min), max(temp_max), min(humidity), max(humidity).
// Missing inputs are ignored; a metric with no values that day is missing.
// Output is sorted by date.
func AggregateDaily(obs []contracts.WeatherObservation, loc *time.Location) []contracts.DailyWeather {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[time.Time]*dailyBucket)
	for _, o := range obs {
		date := contracts.DateOf(o.Timestamp.In(loc))
		b, ok := buckets[date]
		if !ok {
			b = &dailyBucket{}
			buckets[date] = b
		}
		b.add(o)
	}

	out := make([]contracts.DailyWeather, 0, len(buckets))
	for date, b := range buckets {
		out = append(out, contracts.DailyWeather{
			Date:             date,
			MinDailyTemp:     reduce(b.tempMin, stats.Min),
			MaxDailyTemp:     reduce(b.tempMax, stats.Max),
			MinDailyHumidity: reduce(b.humidity, stats.Min),
			MaxDailyHumidity: reduce(b.humidity, stats.Max),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

func reduce(values stats.Float64Data, fn func(stats.Float64Data) (float64, error)) contracts.Float {
	if len(values) == 0 {
		return contracts.Missing()
	}
	v, err := fn(values)
	if err != nil {
		return contracts.Missing()
	}
	return contracts.Some(v)
}

// FilterRange keeps days with minDate <= date <= maxDate. Bounds are compared as
// calendar dates.
func FilterRange(days []contracts.DailyWeather, minDate, maxDate time.Time) []contracts.DailyWeather {
	lo, hi := contracts.DateOf(minDate), contracts.DateOf(maxDate)

	out := make([]contracts.DailyWeather, 0, len(days))
	for _, d := range days {
		if d.Date.Before(lo) || d.Date.After(hi) {
			continue
		}
		out = append(out, d)
	}
	return out
}
