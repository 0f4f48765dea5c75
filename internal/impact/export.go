package impact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/studyconfig"
)

// Bundle file names
const (
	SeriesFile   = "series.csv"
	ManifestFile = "manifest.json"
)

// Manifest 추정기 핸드오프 메타데이터 (재현성용)
type Manifest struct {
	RunID      string    `json:"run_id"`
	CreatedAt  time.Time `json:"created_at"`
	StudyID    string    `json:"study_id"`
	ConfigHash string    `json:"config_hash"`

	SeriesFile string   `json:"series_file"`
	Response   string   `json:"response"`
	Covariates []string `json:"covariates"`
	Pre        Window   `json:"pre_period"`
	Post       Window   `json:"post_period"`

	Estimator studyconfig.Estimator `json:"estimator"`

	Rows     int `json:"rows"`
	PreRows  int `json:"pre_rows"`
	PostRows int `json:"post_rows"`

	Summary *Summary                         `json:"summary"`
	Quality *contracts.SeriesQualitySnapshot `json:"quality,omitempty"`
}

// Exporter writes the estimator handoff bundle
type Exporter struct {
	clock clockwork.Clock
	log   zerolog.Logger
}

// NewExporter creates a new Exporter
func NewExporter(clock clockwork.Clock, log zerolog.Logger) *Exporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Exporter{
		clock: clock,
		log:   log,
	}
}

// Write writes series.csv and manifest.json into dir and returns the manifest.
// quality may be nil.
func (e *Exporter) Write(dir string, req *Request, quality *contracts.SeriesQualitySnapshot) (*Manifest, error) {
	summary, err := Summarize(req)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// 1. series.csv
	if err := WriteSeriesCSV(filepath.Join(dir, SeriesFile), req.Rows, req.Columns()); err != nil {
		return nil, err
	}

	// 2. manifest.json
	m := &Manifest{
		RunID:      uuid.NewString(),
		CreatedAt:  e.clock.Now().UTC(),
		StudyID:    req.StudyID,
		ConfigHash: req.ConfigHash,
		SeriesFile: SeriesFile,
		Response:   req.Response,
		Covariates: req.Covariates,
		Pre:        req.Pre,
		Post:       req.Post,
		Estimator:  req.Estimator,
		Rows:       len(req.Rows),
		PreRows:    summary.Pre.N,
		PostRows:   summary.Post.N,
		Summary:    summary,
		Quality:    quality,
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	e.log.Info().
		Str("run_id", m.RunID).
		Str("dir", dir).
		Int("rows", m.Rows).
		Msg("handoff bundle written")

	return m, nil
}

// WriteSeriesCSV writes a date column followed by the named columns.
func WriteSeriesCSV(path string, rows []contracts.CausalInputRow, columns []string) error {
	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date.Format(contracts.DateLayout)
	}

	cols := []series.Series{series.New(dates, series.String, "date")}
	for _, name := range columns {
		vals := make([]string, len(rows))
		for i, r := range rows {
			v, ok := r.Column(name)
			if !ok {
				return fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
			}
			vals[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		cols = append(cols, series.New(vals, series.String, name))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return fmt.Errorf("build series table: %w", df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
