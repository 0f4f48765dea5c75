package studyconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sleep-impact/internal/s0_data/quality"
)

func validConfig() *Config {
	return &Config{
		Meta: Meta{StudyID: "stay_home_2020"},
		Periods: Periods{
			Pre:  Period{Start: "2020-01-01", End: "2020-03-22"},
			Post: Period{Start: "2020-03-23", End: "2020-04-30"},
		},
		Covariates: []string{"min_daily_temp", "max_daily_humidity"},
		Estimator:  Estimator{Seed: 7, NIter: 2000, NSeasons: 7, Alpha: 0.05},
	}
}

func TestLoad(t *testing.T) {
	// 저장소에 포함된 예제 study
	path := "../../config/study/stay_home_2020.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "stay_home_2020", cfg.Meta.StudyID)
	assert.Equal(t, "2020-03-23", cfg.Periods.Post.Start)
	assert.Len(t, cfg.Covariates, 4)
	assert.Equal(t, int64(1), cfg.Estimator.Seed)
	assert.Equal(t, quality.Config{MinRows: 60, MinCoverage: 0.9}, cfg.QualityConfig())
	assert.NotEmpty(t, yamlData)

	// 해시 생성
	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	// 동일 설정 → 동일 해시
	hash2, _ := Hash(cfg)
	assert.Equal(t, hash, hash2, "hash not deterministic")
}

func TestLoad_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meta:
  study_id: x
  owner: me
`), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
}

func TestLoad_InvalidReturnsRawBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meta:
  study_id: x
periods:
  pre: {start: "2020-01-01", end: "2020-01-10"}
  post: {start: "2020-01-05", end: "2020-01-20"}
covariates: [min_daily_temp]
estimator: {seed: 1, niter: 10, nseasons: 0, alpha: 0.05}
`), 0o644))

	cfg, data, err := Load(path)
	assert.Nil(t, cfg)
	assert.NotEmpty(t, data)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "periods", verr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing study id", func(c *Config) { c.Meta.StudyID = "" }, "meta.study_id"},
		{"bad date", func(c *Config) { c.Periods.Pre.Start = "01/01/2020" }, "periods.pre.start"},
		{"pre reversed", func(c *Config) { c.Periods.Pre.Start = "2020-03-30" }, "periods.pre"},
		{"post reversed", func(c *Config) { c.Periods.Post.End = "2020-03-01" }, "periods.post"},
		{"overlap", func(c *Config) { c.Periods.Post.Start = "2020-03-22" }, "periods"},
		{"short pre", func(c *Config) { c.Periods.Pre.Start = "2020-03-21" }, "periods.pre"},
		{"no covariates", func(c *Config) { c.Covariates = nil }, "covariates"},
		{"unknown covariate", func(c *Config) { c.Covariates = []string{"sea_level"} }, "covariates[0]"},
		{"duplicate covariate", func(c *Config) { c.Covariates = []string{"min_daily_temp", "min_daily_temp"} }, "covariates"},
		{"niter", func(c *Config) { c.Estimator.NIter = 0 }, "estimator.niter"},
		{"alpha zero", func(c *Config) { c.Estimator.Alpha = 0 }, "estimator.alpha"},
		{"alpha one", func(c *Config) { c.Estimator.Alpha = 1 }, "estimator.alpha"},
		{"quality rows", func(c *Config) { c.Quality = &quality.Config{MinRows: 0, MinCoverage: 0.5} }, "quality.min_rows"},
		{"quality coverage", func(c *Config) { c.Quality = &quality.Config{MinRows: 5, MinCoverage: 1.5} }, "quality.min_coverage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.wantField, verr.Field, verr.Message)
		})
	}
}

func TestHash_ChangesWithConfig(t *testing.T) {
	a, err := Hash(validConfig())
	require.NoError(t, err)

	changed := validConfig()
	changed.Estimator.Seed = 8
	b, err := Hash(changed)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPeriod_Days(t *testing.T) {
	assert.Equal(t, 1, Period{Start: "2020-01-01", End: "2020-01-01"}.Days())
	assert.Equal(t, 31, Period{Start: "2020-01-01", End: "2020-01-31"}.Days())
	assert.Equal(t, 0, Period{Start: "2020-02-01", End: "2020-01-31"}.Days())
	assert.Equal(t, 0, Period{Start: "x", End: "2020-01-31"}.Days())
}

func TestWarn(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, Warn(cfg))

	cfg.Estimator.NIter = 100
	cfg.Estimator.Seed = 0
	cfg.Periods.Pre = Period{Start: "2020-03-10", End: "2020-03-22"}

	codes := map[string]bool{}
	for _, w := range Warn(cfg) {
		codes[w.Code] = true
	}
	assert.True(t, codes["LOW_NITER"])
	assert.True(t, codes["ZERO_SEED"])
	assert.True(t, codes["SHORT_PRE_PERIOD"])
}
