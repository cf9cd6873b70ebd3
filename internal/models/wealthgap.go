package models

import "time"

// WealthGapInputs are the raw calculator fields. All amounts default to
// zero when blank or unparseable; the calculator always produces a
// result from partial data.
type WealthGapInputs struct {
	CurrentIncome    float64 `json:"current_income"`
	DesiredIncome    float64 `json:"desired_income"`
	CurrentAssets    float64 `json:"current_assets"`
	BusinessValue    float64 `json:"business_value"`
	TimeToExit       float64 `json:"time_to_exit"`
	CurrentExpenses  float64 `json:"current_expenses"`
	PostExitExpenses float64 `json:"post_exit_expenses"`
}

// WealthGapResult is purely derived; it is recomputed from the inputs
// on every change and has no independent lifecycle.
type WealthGapResult struct {
	CapitalNeeded     float64 `json:"capital_needed"`
	TotalAssets       float64 `json:"total_assets"`
	WealthGap         float64 `json:"wealth_gap"`
	HasGap            bool    `json:"has_gap"`
	AnnualValueNeeded float64 `json:"annual_value_needed"`
	RequiredGrowthPct float64 `json:"required_growth_pct"`
	YearsOfSecurity   float64 `json:"years_of_security"`
	Recommendation    string  `json:"recommendation"`
}

// WealthGapRequest carries the calculator fields as entered, currency
// formatting included ("1,250,000", "$80000", "").
type WealthGapRequest struct {
	CurrentIncome    string `json:"current_income"`
	DesiredIncome    string `json:"desired_income"`
	CurrentAssets    string `json:"current_assets"`
	BusinessValue    string `json:"business_value"`
	TimeToExit       string `json:"time_to_exit"`
	CurrentExpenses  string `json:"current_expenses"`
	PostExitExpenses string `json:"post_exit_expenses"`
	Save             bool   `json:"save,omitempty"`
}

type WealthGapSnapshot struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Inputs    WealthGapInputs `json:"inputs"`
	Result    WealthGapResult `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type WealthGapHistoryResponse struct {
	Snapshots []WealthGapSnapshot `json:"snapshots"`
	Total     int                 `json:"total"`
}
