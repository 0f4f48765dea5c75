package s1_series

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/s0_data"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

type fakeSleepLoader struct {
	records []contracts.SleepRecord
	err     error
}

func (f *fakeSleepLoader) Load(ctx context.Context, root string, window int) ([]contracts.SleepRecord, error) {
	return f.records, f.err
}

type fakeWeatherLoader struct {
	days []contracts.DailyWeather
	err  error

	calls          int
	gotMin, gotMax time.Time
}

func (f *fakeWeatherLoader) Load(ctx context.Context, root string, minDate, maxDate time.Time) ([]contracts.DailyWeather, error) {
	f.calls++
	f.gotMin, f.gotMax = minDate, maxDate
	return f.days, f.err
}

func sleepDays(from, to int, score func(d int) contracts.Float) []contracts.SleepRecord {
	var out []contracts.SleepRecord
	for d := from; d <= to; d++ {
		out = append(out, contracts.SleepRecord{Date: day(d), SleepScore: score(d)})
	}
	return out
}

func weatherDays(from, to int) []contracts.DailyWeather {
	var out []contracts.DailyWeather
	for d := from; d <= to; d++ {
		out = append(out, contracts.DailyWeather{
			Date:             day(d),
			MinDailyTemp:     contracts.Some(float64(d)),
			MaxDailyTemp:     contracts.Some(float64(d + 5)),
			MinDailyHumidity: contracts.Some(40),
			MaxDailyHumidity: contracts.Some(90),
		})
	}
	return out
}

func present(d int) contracts.Float { return contracts.Some(float64(70 + d)) }

func TestJoin_OverlapScenario(t *testing.T) {
	joined := Join(sleepDays(1, 5, present), weatherDays(3, 7))

	var dates []time.Time
	for _, r := range joined {
		dates = append(dates, r.Date)
	}
	if diff := cmp.Diff([]time.Time{day(3), day(4), day(5)}, dates); diff != "" {
		t.Errorf("joined dates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, contracts.Some(73), joined[0].SleepScore)
	assert.Equal(t, contracts.Some(3), joined[0].MinDailyTemp)
}

func TestDropIncomplete(t *testing.T) {
	joined := Join(sleepDays(1, 4, present), weatherDays(1, 4))
	joined[0].SleepScore = contracts.Missing()
	joined[2].MaxDailyHumidity = contracts.Missing()

	rows := DropIncomplete(joined)

	require.Len(t, rows, 2)
	assert.Equal(t, day(2), rows[0].Date)
	assert.Equal(t, day(4), rows[1].Date)
	assert.Equal(t, 74.0, rows[1].SleepScore)
	assert.Equal(t, 9.0, rows[1].MaxDailyTemp)
}

func TestAssembler_Assemble(t *testing.T) {
	// 선행 2일은 이동평균 결측
	sleep := &fakeSleepLoader{records: sleepDays(1, 6, func(d int) contracts.Float {
		if d <= 2 {
			return contracts.Missing()
		}
		return present(d)
	})}
	weather := &fakeWeatherLoader{days: weatherDays(1, 5)}

	a := NewAssembler(sleep, weather, zerolog.Nop())
	series, err := a.Assemble(context.Background(), "data", 3)
	require.NoError(t, err)

	// weather range includes the leading missing rows
	assert.Equal(t, day(1), weather.gotMin)
	assert.Equal(t, day(6), weather.gotMax)

	assert.Equal(t, []time.Time{day(3), day(4), day(5)}, series.Dates())
	assert.Equal(t, contracts.AssemblyStats{
		SleepRows:   6,
		WeatherDays: 5,
		JoinedRows:  5,
		DroppedRows: 2,
	}, series.Stats)

	sleepDates := map[time.Time]bool{}
	for _, r := range sleep.records {
		sleepDates[r.Date] = true
	}
	weatherDates := map[time.Time]bool{}
	for _, w := range weather.days {
		weatherDates[w.Date] = true
	}
	for _, r := range series.Rows {
		assert.True(t, sleepDates[r.Date] && weatherDates[r.Date], "%s outside intersection", r.Date)
	}
}

func TestAssembler_Errors(t *testing.T) {
	loadErr := &contracts.DataLoadError{Path: "sleep.csv", Err: os.ErrNotExist}

	t.Run("sleep load error", func(t *testing.T) {
		weather := &fakeWeatherLoader{}
		a := NewAssembler(&fakeSleepLoader{err: loadErr}, weather, zerolog.Nop())

		_, err := a.Assemble(context.Background(), "data", 3)

		var target *contracts.DataLoadError
		require.True(t, errors.As(err, &target))
		assert.Zero(t, weather.calls)
	})

	t.Run("weather range error", func(t *testing.T) {
		rangeErr := &contracts.InvalidRangeError{Min: day(2), Max: day(1)}
		a := NewAssembler(
			&fakeSleepLoader{records: sleepDays(1, 3, present)},
			&fakeWeatherLoader{err: rangeErr},
			zerolog.Nop(),
		)

		_, err := a.Assemble(context.Background(), "data", 3)

		var target *contracts.InvalidRangeError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("empty sleep file", func(t *testing.T) {
		weather := &fakeWeatherLoader{}
		a := NewAssembler(&fakeSleepLoader{records: []contracts.SleepRecord{}}, weather, zerolog.Nop())

		_, err := a.Assemble(context.Background(), "data", 3)

		var target *contracts.EmptyResultError
		require.True(t, errors.As(err, &target))
		assert.Zero(t, weather.calls)
	})

	t.Run("no overlap", func(t *testing.T) {
		a := NewAssembler(
			&fakeSleepLoader{records: sleepDays(1, 3, present)},
			&fakeWeatherLoader{days: weatherDays(10, 12)},
			zerolog.Nop(),
		)

		_, err := a.Assemble(context.Background(), "data", 3)

		var target *contracts.EmptyResultError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 3, target.SleepRows)
		assert.Equal(t, 0, target.JoinedRows)
	})

	t.Run("all rows incomplete", func(t *testing.T) {
		a := NewAssembler(
			&fakeSleepLoader{records: sleepDays(1, 3, func(int) contracts.Float { return contracts.Missing() })},
			&fakeWeatherLoader{days: weatherDays(1, 3)},
			zerolog.Nop(),
		)

		_, err := a.Assemble(context.Background(), "data", 3)

		var target *contracts.EmptyResultError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 3, target.JoinedRows)
	})
}

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestAssembler_FromFiles(t *testing.T) {
	root := t.TempDir()

	writeLines(t, filepath.Join(root, "sleep.csv"),
		"dt,sleep_score",
		"2020-01-05,50",
		"2020-01-01,10",
		"2020-01-03,30",
		"2020-01-02,20",
		"2020-01-04,40",
	)
	writeLines(t, filepath.Join(root, "weather.csv"),
		"dt_iso,city_name,temp_min,temp_max,humidity,sea_level,grnd_level,weather_main",
		"2019-12-31 12:00:00 +0000 UTC,Seattle,0,1,50,,,Rain",
		"2020-01-03 01:00:00 +0000 UTC,Seattle,2,6,60,,,Rain",
		"2020-01-03 13:00:00 +0000 UTC,Seattle,3,8,75,,,Clouds",
		"2020-01-04 13:00:00 +0000 UTC,Seattle,1,5,,,,Clouds",
		"2020-01-05 13:00:00 +0000 UTC,Seattle,4,9,80,,,Clear",
		"2020-01-06 13:00:00 +0000 UTC,Seattle,4,9,80,,,Clear",
		"2020-01-07 13:00:00 +0000 UTC,Seattle,4,9,80,,,Clear",
	)

	a := NewAssembler(
		s0_data.NewSleepLoader("sleep.csv", zerolog.Nop()),
		s0_data.NewWeatherLoader("weather.csv", time.UTC, zerolog.Nop()),
		zerolog.Nop(),
	)

	series, err := a.Assemble(context.Background(), root, 2)
	require.NoError(t, err)

	// 01-04 has no humidity at all, so it is dropped
	want := []contracts.CausalInputRow{
		{Date: day(3), SleepScore: 25, MinDailyTemp: 2, MaxDailyTemp: 8, MinDailyHumidity: 60, MaxDailyHumidity: 75},
		{Date: day(5), SleepScore: 45, MinDailyTemp: 4, MaxDailyTemp: 9, MinDailyHumidity: 80, MaxDailyHumidity: 80},
	}
	if diff := cmp.Diff(want, series.Rows); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, series.Stats.JoinedRows)
	assert.Equal(t, 1, series.Stats.DroppedRows)
}
