package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/s0_data/quality"
	"github.com/wonny/sleep-impact/internal/studyconfig"
)

// errQualityFailed 품질 게이트 미통과
var errQualityFailed = errors.New("series failed quality gate")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "S1 시계열 품질 검증",
	Long: `조립된 시계열의 정렬, 행 수, 달력 커버리지를 검사합니다.
--study 를 주면 study 파일의 quality 임계값을 사용합니다.

Example:
  go run ./cmd/impact check
  go run ./cmd/impact check --study config/study/stay_home_2020.yaml`,
	RunE: runCheck,
}

var (
	// Flags
	checkStudy string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkStudy, "study", "", "study file with quality thresholds")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	PrintHeader(out, "Quality Check")

	d, err := initDeps(cmd)
	if err != nil {
		return err
	}

	thresholds := quality.DefaultConfig()
	if checkStudy != "" {
		study, _, err := studyconfig.Load(checkStudy)
		if err != nil {
			return err
		}
		thresholds = study.QualityConfig()
	}

	series, err := d.assembler.Assemble(cmd.Context(), d.cfg.Data.Root, d.cfg.Data.Window)
	if err != nil {
		return err
	}

	gate := quality.NewQualityGate(thresholds, d.log.Component("quality.gate"))
	snapshot := gate.Check(series)
	printSnapshot(out, snapshot)

	if !snapshot.Passed {
		d.log.WithField("reasons", snapshot.Reasons).Warn("quality gate failed")
		return errQualityFailed
	}
	d.log.Infof("quality gate passed: %d rows, coverage %.2f", snapshot.Rows, snapshot.Coverage)
	PrintSuccess(out, "Quality gate passed")
	return nil
}

func printSnapshot(out io.Writer, s *contracts.SeriesQualitySnapshot) {
	PrintKeyValue(out, "Rows", strconv.Itoa(s.Rows), 10)
	if s.Rows > 0 {
		PrintKeyValue(out, "Span", fmt.Sprintf("%s ~ %s (%d days)",
			s.First.Format(contracts.DateLayout), s.Last.Format(contracts.DateLayout), s.SpanDays), 10)
	}
	PrintKeyValue(out, "Ordered", strconv.FormatBool(s.Ordered), 10)
	PrintKeyValue(out, "Coverage", fmt.Sprintf("%.1f%%", s.Coverage*100), 10)
	PrintKeyValue(out, "Retained", fmt.Sprintf("%.1f%%", s.RetainedRatio*100), 10)
	PrintKeyValue(out, "Gaps", strconv.Itoa(len(s.Gaps)), 10)
	for _, reason := range s.Reasons {
		PrintWarning(out, reason)
	}
}
