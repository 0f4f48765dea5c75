package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// weatherCmd represents the weather command
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "S0 일별 기상 집계 출력",
	Long: `시간별 기상 관측을 기준 시간대의 달력 날짜로 묶어
일별 min/max 기온·습도를 출력합니다. --from/--to 모두 포함 구간입니다.

Example:
  go run ./cmd/impact weather --from 2020-03-01 --to 2020-03-31
  go run ./cmd/impact weather --from 2020-03-01 --to 2020-03-07 --timezone America/Los_Angeles`,
	RunE: runWeather,
}

var (
	// Flags
	weatherFrom string
	weatherTo   string
)

func init() {
	rootCmd.AddCommand(weatherCmd)

	weatherCmd.Flags().StringVar(&weatherFrom, "from", "", "Start date (YYYY-MM-DD)")
	weatherCmd.Flags().StringVar(&weatherTo, "to", "", "End date (YYYY-MM-DD)")
	_ = weatherCmd.MarkFlagRequired("from")
	_ = weatherCmd.MarkFlagRequired("to")
}

func runWeather(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	PrintHeader(out, "Daily Weather")

	from, err := time.Parse(contracts.DateLayout, weatherFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := time.Parse(contracts.DateLayout, weatherTo)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}

	d, err := initDeps(cmd)
	if err != nil {
		return err
	}

	days, err := d.weather.Load(cmd.Context(), d.cfg.Data.Root, from, to)
	if err != nil {
		return err
	}

	PrintKeyValue(out, "File", d.cfg.Data.WeatherFile, 8)
	PrintKeyValue(out, "Timezone", d.cfg.Data.Timezone, 8)
	PrintKeyValue(out, "Days", strconv.Itoa(len(days)), 8)
	fmt.Fprintln(out)

	widths := []int{10, 9, 9, 9, 9}
	PrintTableHeader(out, []string{"date", "temp_min", "temp_max", "hum_min", "hum_max"}, widths)
	for _, day := range days {
		PrintTableRow(out, []string{
			day.Date.Format(contracts.DateLayout),
			formatFloat(day.MinDailyTemp),
			formatFloat(day.MaxDailyTemp),
			formatFloat(day.MinDailyHumidity),
			formatFloat(day.MaxDailyHumidity),
		}, widths)
	}

	return nil
}
