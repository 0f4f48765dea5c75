package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/sleep-impact/internal/s0_data"
	"github.com/wonny/sleep-impact/internal/s1_series"
	"github.com/wonny/sleep-impact/pkg/config"
	"github.com/wonny/sleep-impact/pkg/logger"
)

var (
	// cmdLog 실패 로깅용. initDeps 이전에는 Nop
	cmdLog = logger.Nop()

	// logOutput 구조화 로그 출력 (stdout은 커맨드 결과 전용)
	logOutput io.Writer = os.Stderr
)

var (
	// Global flags (override env config)
	dataRoot string
	window   int
	timezone string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "impact",
	Short: "Sleep impact - 수면 점수 / 기상 데이터 준비 CLI",
	Long: `Sleep Impact CLI

수면 점수(일별)와 기상 관측(시간별) CSV를 읽어
이동평균 → 일별 집계 → date join → 결측 제거 후
외부 BSTS 인과효과 추정기에 넘길 시계열을 만듭니다.

Usage:
  go run ./cmd/impact [command]

Examples:
  go run ./cmd/impact sleep --window 7
  go run ./cmd/impact weather --from 2020-03-01 --to 2020-03-31
  go run ./cmd/impact assemble --csv out/series.csv
  go run ./cmd/impact check
  go run ./cmd/impact export --study config/study/stay_home_2020.yaml --out out`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		name := rootCmd.Name()
		if cmd != nil {
			name = cmd.CommandPath()
		}
		cmdLog.WithError(err).
			WithFields(map[string]interface{}{
				"command": name,
				"root":    dataRoot,
			}).
			Error("command failed")
		PrintError(os.Stderr, describeError(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataRoot, "root", "", "source data directory (default $DATA_ROOT or ./data)")
	rootCmd.PersistentFlags().IntVar(&window, "window", 0, "moving-average window in days (default $SMOOTHING_WINDOW or 7)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "reference zone for weather timestamps (default $DATA_TIMEZONE or UTC)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// deps 커맨드 공통 의존성
type deps struct {
	cfg       *config.Config
	log       *logger.Logger
	sleep     *s0_data.SleepLoader
	weather   *s0_data.WeatherLoader
	assembler *s1_series.Assembler
}

// initDeps loads config, applies flag overrides and wires the loaders.
func initDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Data.Root = dataRoot
	}
	if flags.Changed("window") {
		cfg.Data.Window = window
	}
	if flags.Changed("timezone") {
		cfg.Data.Timezone = timezone
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	loc, err := cfg.Data.Location()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(logOutput, cfg)
	cmdLog = log

	log.WithFields(map[string]interface{}{
		"root":     cfg.Data.Root,
		"window":   cfg.Data.Window,
		"timezone": cfg.Data.Timezone,
	}).Debug("config resolved")

	sleep := s0_data.NewSleepLoader(cfg.Data.SleepFile, log.Component("s0_data.sleep"))
	weather := s0_data.NewWeatherLoader(cfg.Data.WeatherFile, loc, log.Component("s0_data.weather"))

	return &deps{
		cfg:       cfg,
		log:       log,
		sleep:     sleep,
		weather:   weather,
		assembler: s1_series.NewAssembler(sleep, weather, log.Component("s1_series.assembler")),
	}, nil
}
