package studyconfig

import (
	"fmt"
	"time"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/s0_data/quality"
)

// Config는 하나의 인과효과 분석(study)의 전체 설정
type Config struct {
	Meta       Meta            `yaml:"meta" json:"meta"`
	Periods    Periods         `yaml:"periods" json:"periods"`
	Covariates []string        `yaml:"covariates" json:"covariates" validate:"required,min=1,unique,dive,oneof=min_daily_temp max_daily_temp min_daily_humidity max_daily_humidity"`
	Estimator  Estimator       `yaml:"estimator" json:"estimator"`
	Quality    *quality.Config `yaml:"quality,omitempty" json:"quality,omitempty"` // nil → quality.DefaultConfig()
}

// Meta 메타 정보
type Meta struct {
	StudyID     string `yaml:"study_id" json:"study_id" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

// Periods 처치 이전/이후 구간 (양끝 포함)
type Periods struct {
	Pre  Period `yaml:"pre" json:"pre"`
	Post Period `yaml:"post" json:"post"`
}

// Period YYYY-MM-DD 문자열 구간
type Period struct {
	Start string `yaml:"start" json:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" json:"end" validate:"required,datetime=2006-01-02"`
}

// Range parses the period bounds as dates.
func (p Period) Range() (start, end time.Time, err error) {
	start, err = time.Parse(contracts.DateLayout, p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err = time.Parse(contracts.DateLayout, p.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

// Days returns the inclusive length of the period, 0 if it does not parse.
func (p Period) Days() int {
	start, end, err := p.Range()
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Estimator 외부 BSTS 추정기 파라미터 (그대로 manifest에 전달)
// seed는 전역 상태가 아니라 명시적 파라미터
type Estimator struct {
	Seed        int64   `yaml:"seed" json:"seed"`
	NIter       int     `yaml:"niter" json:"niter" validate:"min=1"`
	NSeasons    int     `yaml:"nseasons" json:"nseasons" validate:"min=0"`
	Alpha       float64 `yaml:"alpha" json:"alpha" validate:"gt=0,lt=1"`
	Standardize bool    `yaml:"standardize" json:"standardize"`
}

// QualityConfig returns the study's gate thresholds or the defaults.
func (c *Config) QualityConfig() quality.Config {
	if c.Quality == nil {
		return quality.DefaultConfig()
	}
	return *c.Quality
}
