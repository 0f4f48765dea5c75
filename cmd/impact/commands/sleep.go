package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// sleepCmd represents the sleep command
var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "S0 수면 점수 이동평균 출력",
	Long: `수면 점수 파일을 읽어 날짜순 정렬 후 trailing 이동평균을 출력합니다.
앞쪽 window-1 일은 NA로 표시됩니다.

Example:
  go run ./cmd/impact sleep
  go run ./cmd/impact sleep --window 3 --root ./data`,
	RunE: runSleep,
}

func init() {
	rootCmd.AddCommand(sleepCmd)
}

func runSleep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	PrintHeader(out, "Sleep Score")

	d, err := initDeps(cmd)
	if err != nil {
		return err
	}

	raw, err := d.sleep.ReadRaw(d.cfg.Data.Root)
	if err != nil {
		return err
	}
	smoothed, err := d.sleep.Load(cmd.Context(), d.cfg.Data.Root, d.cfg.Data.Window)
	if err != nil {
		return err
	}

	PrintKeyValue(out, "File", d.cfg.Data.SleepFile, 8)
	PrintKeyValue(out, "Window", strconv.Itoa(d.cfg.Data.Window), 8)
	PrintKeyValue(out, "Rows", strconv.Itoa(len(smoothed)), 8)
	fmt.Fprintln(out)

	widths := []int{10, 10, 10}
	PrintTableHeader(out, []string{"date", "raw", "smoothed"}, widths)
	for i, r := range smoothed {
		PrintTableRow(out, []string{
			r.Date.Format(contracts.DateLayout),
			formatFloat(raw[i].SleepScore),
			formatFloat(r.SleepScore),
		}, widths)
	}

	return nil
}
