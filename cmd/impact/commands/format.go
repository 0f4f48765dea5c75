package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	missingColor = color.New(color.Faint)
)

// PrintHeader prints a section header
func PrintHeader(w io.Writer, title string) {
	headerColor.Fprintf(w, "=== %s ===\n", title)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	successColor.Fprintf(w, "✅ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	warnColor.Fprintf(w, "⚠️  %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	errorColor.Fprintf(w, "❌ %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = fmt.Sprintf("%-*s", widths[i], col)
	}
	fmt.Fprintln(w, strings.Join(cells, "  "))

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row. Missing cells are dimmed after padding
// so escape codes do not count toward the column width.
func PrintTableRow(w io.Writer, values []string, widths []int) {
	cells := make([]string, len(values))
	for i, val := range values {
		cells[i] = fmt.Sprintf("%-*s", widths[i], val)
		if val == missingCell {
			cells[i] = missingColor.Sprint(cells[i])
		}
	}
	fmt.Fprintln(w, strings.Join(cells, "  "))
}

// missingCell 결측 값 표시
const missingCell = "NA"

// formatFloat renders a possibly-missing value
func formatFloat(f contracts.Float) string {
	if !f.Valid {
		return missingCell
	}
	return fmt.Sprintf("%.2f", f.Value)
}

// describeError adds a hint for the domain error kinds
func describeError(err error) string {
	var (
		loadErr   *contracts.DataLoadError
		rangeErr  *contracts.InvalidRangeError
		windowErr *contracts.InvalidWindowError
		emptyErr  *contracts.EmptyResultError
	)
	switch {
	case errors.As(err, &loadErr):
		return fmt.Sprintf("%v\n   check the file exists under --root and has the expected columns", err)
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("%v\n   --from must be on or before --to", err)
	case errors.As(err, &windowErr):
		return fmt.Sprintf("%v\n   pass --window 1 or more (1 disables smoothing)", err)
	case errors.As(err, &emptyErr):
		return fmt.Sprintf("%v\n   sleep and weather dates do not overlap after smoothing; try a smaller --window", err)
	default:
		return err.Error()
	}
}
