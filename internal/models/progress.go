package models

import "time"

// ExitPhase identifies one step of the five-phase exit-planning journey.
type ExitPhase string

const (
	PhaseBusinessBaseline     ExitPhase = "business_baseline"
	PhaseFinancialCalculators ExitPhase = "financial_calculators"
	PhaseOwnerCentricity      ExitPhase = "owner_centricity"
	PhasePersonalVision       ExitPhase = "personal_vision"
	PhaseActionPlanning       ExitPhase = "action_planning"
)

var ExitPhaseOrder = []ExitPhase{
	PhaseBusinessBaseline,
	PhaseFinancialCalculators,
	PhaseOwnerCentricity,
	PhasePersonalVision,
	PhaseActionPlanning,
}

var ValidExitPhases = map[ExitPhase]bool{
	PhaseBusinessBaseline:     true,
	PhaseFinancialCalculators: true,
	PhaseOwnerCentricity:      true,
	PhasePersonalVision:       true,
	PhaseActionPlanning:       true,
}

type PhaseCompletion struct {
	Phase       ExitPhase `json:"phase"`
	Completed   bool      `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ProgressResponse struct {
	Phases          []PhaseCompletion `json:"phases"`
	CompletedPhases int               `json:"completed_phases"`
	TotalPhases     int               `json:"total_phases"`
	ProgressPct     int               `json:"progress_pct"`
}
