package commands

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/sleep-impact/internal/contracts"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestPrintTableRow_MissingCellAlignment(t *testing.T) {
	saved := *missingColor
	missingColor.EnableColor()
	t.Cleanup(func() { *missingColor = saved })

	var buf bytes.Buffer
	widths := []int{10, 6, 4}
	PrintTableRow(&buf, []string{"2020-01-01", formatFloat(contracts.Missing()), formatFloat(contracts.Some(2))}, widths)

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Equal(t, "2020-01-01  NA      2.00\n", ansi.ReplaceAllString(buf.String(), ""))
}

func TestFormatFloat(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "NA", formatFloat(contracts.Missing()))
	assert.Equal(t, "72.33", formatFloat(contracts.Some(72.333)))
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{
			name: "load",
			err:  fmt.Errorf("load sleep: %w", &contracts.DataLoadError{Path: "sleep.csv"}),
			hint: "check the file exists",
		},
		{
			name: "range",
			err:  &contracts.InvalidRangeError{},
			hint: "--from must be on or before --to",
		},
		{
			name: "window",
			err:  fmt.Errorf("load sleep: %w", &contracts.InvalidWindowError{Window: 0}),
			hint: "--window 1 or more",
		},
		{
			name: "empty",
			err:  &contracts.EmptyResultError{},
			hint: "try a smaller --window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeError(tt.err)
			assert.Contains(t, got, tt.err.Error())
			assert.Contains(t, got, tt.hint)
		})
	}

	assert.Equal(t, "plain", describeError(fmt.Errorf("plain")))
}
