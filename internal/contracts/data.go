package contracts

import "time"

// SeriesQualitySnapshot represents quality information about an assembled series
// ⭐ SSOT: S1 → 외부 추정기 전달 전 품질 정보
type SeriesQualitySnapshot struct {
	First         time.Time   `json:"first"`
	Last          time.Time   `json:"last"`
	Rows          int         `json:"rows"`
	SpanDays      int         `json:"span_days"`
	Gaps          []time.Time `json:"gaps,omitempty"` // span 내 누락된 날짜
	Ordered       bool        `json:"ordered"`        // 오름차순 + 유일
	Coverage      float64     `json:"coverage"`       // rows / span_days
	RetainedRatio float64     `json:"retained_ratio"` // rows / joined rows
	Passed        bool        `json:"passed"`         // 품질 검증 통과 여부
	Reasons       []string    `json:"reasons,omitempty"`
}

// IsContiguous reports whether the series has no calendar gaps.
func (s *SeriesQualitySnapshot) IsContiguous() bool {
	return s.Rows > 0 && len(s.Gaps) == 0
}

// GapRate returns the share of calendar days inside the span that are missing.
func (s *SeriesQualitySnapshot) GapRate() float64 {
	if s.SpanDays == 0 {
		return 0.0
	}
	return float64(len(s.Gaps)) / float64(s.SpanDays)
}
