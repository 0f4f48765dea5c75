package impact

import (
	"github.com/montanaflynn/stats"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// PeriodSummary response 컬럼의 구간별 기술통계
type PeriodSummary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"` // 표본 표준편차, n < 2 이면 0
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary 사전/사후 구간 비교 (기술통계만, 추론 없음)
type Summary struct {
	Pre        PeriodSummary      `json:"pre"`
	Post       PeriodSummary      `json:"post"`
	MeanChange float64            `json:"mean_change"` // post.mean - pre.mean
	PreCorr    map[string]float64 `json:"pre_correlation"`
}

// Summarize computes descriptive statistics of the response per period and
// the pre-period Pearson correlation of each covariate with the response.
func Summarize(req *Request) (*Summary, error) {
	pre, post := req.PreRows(), req.PostRows()

	preSummary, err := summarizeColumn(pre, req.Response)
	if err != nil {
		return nil, err
	}
	postSummary, err := summarizeColumn(post, req.Response)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Pre:        preSummary,
		Post:       postSummary,
		MeanChange: postSummary.Mean - preSummary.Mean,
		PreCorr:    make(map[string]float64, len(req.Covariates)),
	}

	response := column(pre, req.Response)
	for _, c := range req.Covariates {
		r, err := stats.Pearson(response, column(pre, c))
		if err != nil {
			return nil, err
		}
		s.PreCorr[c] = r
	}

	return s, nil
}

func summarizeColumn(rows []contracts.CausalInputRow, name string) (PeriodSummary, error) {
	data := column(rows, name)
	if len(data) == 0 {
		return PeriodSummary{}, ErrEmptyPeriod
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return PeriodSummary{}, err
	}
	lo, err := stats.Min(data)
	if err != nil {
		return PeriodSummary{}, err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return PeriodSummary{}, err
	}

	var sd float64
	if len(data) > 1 {
		if sd, err = stats.StandardDeviationSample(data); err != nil {
			return PeriodSummary{}, err
		}
	}

	return PeriodSummary{N: len(data), Mean: mean, StdDev: sd, Min: lo, Max: hi}, nil
}

func column(rows []contracts.CausalInputRow, name string) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Column(name); ok {
			out = append(out, v)
		}
	}
	return out
}
