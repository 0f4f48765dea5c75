package commands

import (
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/impact"
	"github.com/wonny/sleep-impact/internal/s0_data/quality"
	"github.com/wonny/sleep-impact/internal/studyconfig"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "외부 추정기용 series.csv + manifest.json 생성",
	Long: `study 설정을 읽어 시계열을 조립하고 pre/post 구간으로 나눈 뒤
외부 BSTS 추정기에 넘길 번들(series.csv, manifest.json)을 --out 에 씁니다.

Workflow:
  1. study 설정 로드 및 검증 (warnings 출력)
  2. 수면/기상 로드 → join → 결측 제거
  3. 품질 검증 (--strict 이면 실패 시 중단)
  4. pre/post 구간 분리 및 요약 통계
  5. 번들 저장

Example:
  go run ./cmd/impact export
  go run ./cmd/impact export --study config/study/stay_home_2020.yaml --out out/stay_home --strict`,
	RunE: runExport,
}

var (
	// Flags
	exportStudy  string
	exportOut    string
	exportStrict bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportStudy, "study", "", "study file (default $STUDY_FILE)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default $OUTPUT_DIR)")
	exportCmd.Flags().BoolVar(&exportStrict, "strict", false, "abort when the quality gate fails")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	PrintHeader(out, "Export Handoff Bundle")

	d, err := initDeps(cmd)
	if err != nil {
		return err
	}

	studyPath := d.cfg.StudyFile
	if exportStudy != "" {
		studyPath = exportStudy
	}
	outDir := d.cfg.OutputDir
	if exportOut != "" {
		outDir = exportOut
	}

	// 1. study
	study, _, err := studyconfig.Load(studyPath)
	if err != nil {
		return err
	}
	for _, w := range studyconfig.Warn(study) {
		d.log.WithField("code", w.Code).Warnf("study %s: %s", study.Meta.StudyID, w.Message)
		PrintWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	hash, err := studyconfig.Hash(study)
	if err != nil {
		return err
	}

	// 2. series
	series, err := d.assembler.Assemble(cmd.Context(), d.cfg.Data.Root, d.cfg.Data.Window)
	if err != nil {
		return err
	}

	// 3. quality
	snapshot := quality.NewQualityGate(study.QualityConfig(), d.log.Component("quality.gate")).Check(series)
	if !snapshot.Passed {
		for _, reason := range snapshot.Reasons {
			PrintWarning(out, reason)
		}
		if exportStrict {
			return errQualityFailed
		}
	}

	// 4. request
	req, err := impact.NewRequest(series, study, hash)
	if err != nil {
		return err
	}

	// 5. bundle
	m, err := impact.NewExporter(clockwork.NewRealClock(), d.log.Component("impact.exporter")).Write(outDir, req, snapshot)
	if err != nil {
		return err
	}

	PrintKeyValue(out, "Study", m.StudyID, 12)
	PrintKeyValue(out, "Run ID", m.RunID, 12)
	PrintKeyValue(out, "Config hash", m.ConfigHash[:12], 12)
	PrintKeyValue(out, "Rows", strconv.Itoa(m.Rows), 12)
	PrintKeyValue(out, "Pre rows", strconv.Itoa(m.PreRows), 12)
	PrintKeyValue(out, "Post rows", strconv.Itoa(m.PostRows), 12)
	PrintKeyValue(out, "Mean change", fmt.Sprintf("%+.2f", m.Summary.MeanChange), 12)
	PrintSeparator(out)
	PrintSuccess(out, fmt.Sprintf("Bundle written to %s", outDir))

	d.log.WithField("out", outDir).Info("export complete")

	return nil
}
