package impact

import (
	"errors"
	"fmt"
	"time"

	"github.com/wonny/sleep-impact/internal/contracts"
	"github.com/wonny/sleep-impact/internal/studyconfig"
)

// MinPrePeriodRows 사전 구간에 필요한 최소 완전 행 수
const MinPrePeriodRows = 3

var (
	ErrEmptyPeriod    = errors.New("period has no rows")
	ErrShortPrePeriod = errors.New("pre period too short")
	ErrUnknownColumn  = errors.New("unknown column")
)

// Window 날짜 구간 (양끝 포함)
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls in the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// MarshalJSON renders the bounds as YYYY-MM-DD.
func (w Window) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":%q,"end":%q}`,
		w.Start.Format(contracts.DateLayout), w.End.Format(contracts.DateLayout))), nil
}

// Request 외부 BSTS 추정기에 넘기는 입력 묶음
// ⭐ SSOT: response 1개 + covariates n개, 결측 없음, 날짜 오름차순
type Request struct {
	StudyID    string
	ConfigHash string

	Response   string
	Covariates []string
	Estimator  studyconfig.Estimator

	Pre  Window
	Post Window

	// Rows covers Pre.Start..Post.End, including any days between the periods.
	Rows []contracts.CausalInputRow
}

// NewRequest slices series into the study's pre and post periods.
func NewRequest(series *contracts.CausalInputSeries, study *studyconfig.Config, configHash string) (*Request, error) {
	preStart, preEnd, err := study.Periods.Pre.Range()
	if err != nil {
		return nil, fmt.Errorf("pre period: %w", err)
	}
	postStart, postEnd, err := study.Periods.Post.Range()
	if err != nil {
		return nil, fmt.Errorf("post period: %w", err)
	}

	for _, c := range study.Covariates {
		if _, ok := (contracts.CausalInputRow{}).Column(c); !ok {
			return nil, fmt.Errorf("covariate %q: %w", c, ErrUnknownColumn)
		}
	}

	req := &Request{
		StudyID:    study.Meta.StudyID,
		ConfigHash: configHash,
		Response:   contracts.ColumnSleepScore,
		Covariates: append([]string(nil), study.Covariates...),
		Estimator:  study.Estimator,
		Pre:        Window{Start: preStart, End: preEnd},
		Post:       Window{Start: postStart, End: postEnd},
		Rows:       series.Between(preStart, postEnd),
	}

	pre, post := req.PreRows(), req.PostRows()
	if len(pre) == 0 {
		return nil, fmt.Errorf("pre %s..%s: %w", study.Periods.Pre.Start, study.Periods.Pre.End, ErrEmptyPeriod)
	}
	if len(post) == 0 {
		return nil, fmt.Errorf("post %s..%s: %w", study.Periods.Post.Start, study.Periods.Post.End, ErrEmptyPeriod)
	}
	if len(pre) < MinPrePeriodRows {
		return nil, fmt.Errorf("%d rows, need %d: %w", len(pre), MinPrePeriodRows, ErrShortPrePeriod)
	}

	return req, nil
}

// PreRows returns the rows inside the pre period.
func (r *Request) PreRows() []contracts.CausalInputRow {
	return r.rowsIn(r.Pre)
}

// PostRows returns the rows inside the post period.
func (r *Request) PostRows() []contracts.CausalInputRow {
	return r.rowsIn(r.Post)
}

func (r *Request) rowsIn(w Window) []contracts.CausalInputRow {
	var out []contracts.CausalInputRow
	for _, row := range r.Rows {
		if w.Contains(row.Date) {
			out = append(out, row)
		}
	}
	return out
}

// Columns returns the response followed by the covariates.
func (r *Request) Columns() []string {
	return append([]string{r.Response}, r.Covariates...)
}
