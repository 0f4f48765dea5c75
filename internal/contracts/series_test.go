package contracts

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOf(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 2020-01-02 03:00 UTC is still Jan 1 in Los Angeles
	ts := time.Date(2020, 1, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, day(2), DateOf(ts))
	assert.Equal(t, day(1), DateOf(ts.In(la)))
	assert.Equal(t, time.UTC, DateOf(ts.In(la)).Location())
}

func TestFloat(t *testing.T) {
	assert.Equal(t, "NA", Missing().String())
	assert.Equal(t, "2.5000", Some(2.5).String())
	assert.True(t, Some(0).Valid, "zero is a value, not a missing cell")
	assert.False(t, Missing().Valid)
}

func TestJoinedRow_Complete(t *testing.T) {
	full := JoinedRow{
		Date:             day(1),
		SleepScore:       Some(80),
		MinDailyTemp:     Some(1),
		MaxDailyTemp:     Some(5),
		MinDailyHumidity: Some(40),
		MaxDailyHumidity: Some(90),
	}
	assert.True(t, full.Complete())

	partial := full
	partial.MaxDailyHumidity = Missing()
	assert.False(t, partial.Complete())

	noScore := full
	noScore.SleepScore = Missing()
	assert.False(t, noScore.Complete())
}

func TestCausalInputRow_Column(t *testing.T) {
	row := CausalInputRow{
		Date:             day(1),
		SleepScore:       81,
		MinDailyTemp:     -2,
		MaxDailyTemp:     6,
		MinDailyHumidity: 45,
		MaxDailyHumidity: 88,
	}

	v, ok := row.Column(ColumnSleepScore)
	assert.True(t, ok)
	assert.Equal(t, 81.0, v)

	for _, name := range CovariateColumns {
		_, ok := row.Column(name)
		assert.True(t, ok, name)
	}

	_, ok = row.Column("sea_level")
	assert.False(t, ok)
}

func TestCausalInputSeries_SpanAndBetween(t *testing.T) {
	empty := &CausalInputSeries{}
	_, _, ok := empty.Span()
	assert.False(t, ok)

	series := &CausalInputSeries{Rows: []CausalInputRow{
		{Date: day(1)}, {Date: day(2)}, {Date: day(3)}, {Date: day(5)},
	}}

	first, last, ok := series.Span()
	require.True(t, ok)
	assert.Equal(t, day(1), first)
	assert.Equal(t, day(5), last)
	assert.Equal(t, 4, series.Len())
	assert.Equal(t, []time.Time{day(1), day(2), day(3), day(5)}, series.Dates())

	between := series.Between(day(2), day(4))
	require.Len(t, between, 2)
	assert.Equal(t, day(2), between[0].Date)
	assert.Equal(t, day(3), between[1].Date)
}

func TestErrors_As(t *testing.T) {
	cause := errors.New("no such file")
	var err error = fmt.Errorf("assemble: %w", &DataLoadError{Path: "data/sleep.csv", Err: cause})

	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "data/sleep.csv", loadErr.Path)
	assert.ErrorIs(t, err, cause)

	err = &InvalidRangeError{Min: day(5), Max: day(3)}
	assert.Equal(t, "invalid date range: min 2020-01-05 is after max 2020-01-03", err.Error())

	err = &DataLoadError{Path: "w.csv", Line: 4, Column: "humidity", Err: errors.New(`parse "abc"`)}
	assert.Contains(t, err.Error(), `line 4, column "humidity"`)

	err = &EmptyResultError{SleepRows: 3, WeatherDays: 0}
	assert.Contains(t, err.Error(), "no complete rows")
}
