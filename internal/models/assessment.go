package models

import "time"

type AssessmentKey string

const (
	AssessmentOwnerCentricity AssessmentKey = "owner-centricity"
	AssessmentPersonalVision  AssessmentKey = "personal-vision"
)

// Tier buckets a 0-100 score into a qualitative readiness level.
type Tier string

const (
	TierExcellent      Tier = "excellent"
	TierGood           Tier = "good"
	TierDeveloping     Tier = "developing"
	TierHighDependency Tier = "high_dependency"
)

// CategoryTheme is the display accent for a category, resolved once at
// definition time rather than re-derived from the category name.
type CategoryTheme string

const (
	ThemeBlue   CategoryTheme = "blue"
	ThemeGreen  CategoryTheme = "green"
	ThemePurple CategoryTheme = "purple"
	ThemeOrange CategoryTheme = "orange"
	ThemeTeal   CategoryTheme = "teal"
)

// ── Definition Types (immutable after load) ─────────────

type Option struct {
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

type Category struct {
	Name      string        `json:"name"`
	Weight    float64       `json:"weight"`
	Theme     CategoryTheme `json:"theme"`
	Questions []Question    `json:"questions"`
}

type Assessment struct {
	Key            AssessmentKey `json:"key"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	MaxOptionScore int           `json:"max_option_score"`
	Categories     []Category    `json:"categories"`
}

// QuestionCount returns the total number of questions across categories.
func (a *Assessment) QuestionCount() int {
	n := 0
	for _, c := range a.Categories {
		n += len(c.Questions)
	}
	return n
}

// Interpretation carries the business reading of a tier. The valuation
// adjustment is applied by the valuation advisor, not computed here.
type Interpretation struct {
	Tier        Tier   `json:"tier"`
	Level       string `json:"level"`
	Description string `json:"description"`
	ValueImpact string `json:"value_impact"`
	Readiness   string `json:"readiness"`
}

// ── Derived Result Types ─────────────────────────────────

// AssessmentResult is recomputed on demand from the answer map; it is
// never stored as mutable state that could drift from the answers.
type AssessmentResult struct {
	AssessmentKey     AssessmentKey      `json:"assessment_key"`
	PerCategoryScore  map[string]float64 `json:"per_category_score"`
	FinalScore        float64            `json:"final_score"`
	Interpretation    Interpretation     `json:"interpretation"`
	QuestionsAnswered int                `json:"questions_answered"`
	QuestionsTotal    int                `json:"questions_total"`
	Complete          bool               `json:"complete"`
}

// SavedResult is a completed result as persisted for reporting.
type SavedResult struct {
	ID               int64              `json:"id"`
	UserID           int64              `json:"user_id"`
	AssessmentKey    AssessmentKey      `json:"assessment_key"`
	PerCategoryScore map[string]float64 `json:"per_category_score"`
	FinalScore       float64            `json:"final_score"`
	Tier             Tier               `json:"tier"`
	CompletedAt      time.Time          `json:"completed_at"`
}

// ── Request/Response Types ───────────────────────────────

type AssessmentSummary struct {
	Key           AssessmentKey `json:"key"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	CategoryCount int           `json:"category_count"`
	QuestionCount int           `json:"question_count"`
}

type SelectAnswerRequest struct {
	QuestionID  string `json:"question_id"`
	OptionIndex int    `json:"option_index"`
}

type SessionResponse struct {
	SessionID       string            `json:"session_id"`
	AssessmentKey   AssessmentKey     `json:"assessment_key"`
	CategoryIndex   int               `json:"category_index"`
	CategoryName    string            `json:"category_name,omitempty"`
	ShowingResults  bool              `json:"showing_results"`
	Progress        int               `json:"progress"`
	CategoryReady   bool              `json:"category_ready"`
	AnsweredIDs     []string          `json:"answered_ids"`
	RunningResult   *AssessmentResult `json:"running_result,omitempty"`
}

type AdvanceResponse struct {
	Advanced bool              `json:"advanced"`
	Session  SessionResponse   `json:"session"`
	Result   *AssessmentResult `json:"result,omitempty"`
}

type ResultListResponse struct {
	Results []SavedResult `json:"results"`
	Total   int           `json:"total"`
}
