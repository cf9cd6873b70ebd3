package models

// RecommendationRequest asks the advisor for a narrative reading of a
// completed (or in-flight) assessment session, optionally alongside the
// caller's latest wealth-gap numbers. When no session is given, the
// assessment key selects the caller's most recent saved result instead.
type RecommendationRequest struct {
	SessionID        string            `json:"session_id,omitempty"`
	AssessmentKey    AssessmentKey     `json:"assessment_key,omitempty"`
	IncludeWealthGap bool              `json:"include_wealth_gap,omitempty"`
	WealthGap        *WealthGapRequest `json:"wealth_gap,omitempty"`
}

type ActionItem struct {
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Timeframe string `json:"timeframe"`
}

type Recommendations struct {
	Summary    string       `json:"summary"`
	Strengths  []string     `json:"strengths"`
	Priorities []ActionItem `json:"priorities"`
	ModelUsed  string       `json:"model_used,omitempty"`
}
