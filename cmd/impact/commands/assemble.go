package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/impact"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "S1 수면 × 기상 시계열 조립",
	Long: `수면 이동평균과 일별 기상을 date로 inner join 하고
결측이 있는 행을 제거한 최종 시계열을 출력합니다.

Example:
  go run ./cmd/impact assemble
  go run ./cmd/impact assemble --window 3 --csv out/series.csv`,
	RunE: runAssemble,
}

var (
	// Flags
	assembleCSV string
)

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().StringVar(&assembleCSV, "csv", "", "write the series to this CSV file instead of printing it")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	PrintHeader(out, "Assemble Series")

	d, err := initDeps(cmd)
	if err != nil {
		return err
	}

	series, err := d.assembler.Assemble(cmd.Context(), d.cfg.Data.Root, d.cfg.Data.Window)
	if err != nil {
		return err
	}

	printStats(out, series)

	if assembleCSV != "" {
		columns := append([]string{contracts.ColumnSleepScore}, contracts.CovariateColumns...)
		if err := impact.WriteSeriesCSV(assembleCSV, series.Rows, columns); err != nil {
			return err
		}
		PrintSuccess(out, fmt.Sprintf("Wrote %d rows to %s", series.Len(), assembleCSV))
		return nil
	}

	widths := []int{10, 8, 8, 8, 8, 8}
	PrintTableHeader(out, []string{"date", "sleep", "t_min", "t_max", "h_min", "h_max"}, widths)
	for _, r := range series.Rows {
		PrintTableRow(out, []string{
			r.Date.Format(contracts.DateLayout),
			fmt.Sprintf("%.2f", r.SleepScore),
			fmt.Sprintf("%.2f", r.MinDailyTemp),
			fmt.Sprintf("%.2f", r.MaxDailyTemp),
			fmt.Sprintf("%.0f", r.MinDailyHumidity),
			fmt.Sprintf("%.0f", r.MaxDailyHumidity),
		}, widths)
	}

	return nil
}

func printStats(out io.Writer, series *contracts.CausalInputSeries) {
	first, last, _ := series.Span()
	PrintKeyValue(out, "Sleep rows", strconv.Itoa(series.Stats.SleepRows), 12)
	PrintKeyValue(out, "Weather days", strconv.Itoa(series.Stats.WeatherDays), 12)
	PrintKeyValue(out, "Joined", strconv.Itoa(series.Stats.JoinedRows), 12)
	PrintKeyValue(out, "Dropped", strconv.Itoa(series.Stats.DroppedRows), 12)
	PrintKeyValue(out, "Rows", strconv.Itoa(series.Len()), 12)
	PrintKeyValue(out, "Span", first.Format(contracts.DateLayout)+" ~ "+last.Format(contracts.DateLayout), 12)
	PrintSeparator(out)
}
