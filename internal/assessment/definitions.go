package assessment

import (
	"fmt"
	"log"
	"math"

	"github.com/kgob/backend/internal/models"
)

// Registry holds the built-in assessment definitions, keyed and
// validated once at startup. Definitions are read-only afterwards.
type Registry struct {
	byKey []*models.Assessment
}

// NewRegistry validates every definition and returns the registry.
// A malformed definition is a configuration error: the caller should
// treat it as fatal at startup, never surface it at scoring time.
func NewRegistry(defs ...*models.Assessment) (*Registry, error) {
	r := &Registry{}
	for _, def := range defs {
		if err := Validate(def); err != nil {
			return nil, fmt.Errorf("assessment %q: %w", def.Key, err)
		}
		r.byKey = append(r.byKey, def)
	}
	return r, nil
}

// DefaultRegistry loads the built-in Owner Centricity and Personal
// Vision definitions.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(OwnerCentricity(), PersonalVision())
}

func (r *Registry) Get(key models.AssessmentKey) (*models.Assessment, bool) {
	for _, a := range r.byKey {
		if a.Key == key {
			return a, true
		}
	}
	return nil, false
}

func (r *Registry) List() []models.AssessmentSummary {
	summaries := make([]models.AssessmentSummary, 0, len(r.byKey))
	for _, a := range r.byKey {
		summaries = append(summaries, models.AssessmentSummary{
			Key:           a.Key,
			Title:         a.Title,
			Description:   a.Description,
			CategoryCount: len(a.Categories),
			QuestionCount: a.QuestionCount(),
		})
	}
	return summaries
}

// Validate checks the structural invariants of a definition. Category
// weights that don't sum near 1.0 are logged as a warning rather than
// rejected; the assessment methodology tolerates uneven weights and the
// scorer re-normalizes anyway.
func Validate(a *models.Assessment) error {
	if a.Key == "" {
		return fmt.Errorf("missing key")
	}
	if a.MaxOptionScore <= 0 {
		return fmt.Errorf("max_option_score must be positive, got %d", a.MaxOptionScore)
	}
	if len(a.Categories) == 0 {
		return fmt.Errorf("no categories")
	}

	seen := make(map[string]bool)
	weightSum := 0.0
	for _, cat := range a.Categories {
		if len(cat.Questions) == 0 {
			return fmt.Errorf("category %q has no questions", cat.Name)
		}
		if cat.Weight <= 0 {
			return fmt.Errorf("category %q has non-positive weight %g", cat.Name, cat.Weight)
		}
		weightSum += cat.Weight
		for _, q := range cat.Questions {
			if q.ID == "" {
				return fmt.Errorf("category %q has a question with no id", cat.Name)
			}
			if seen[q.ID] {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
			if len(q.Options) < 2 {
				return fmt.Errorf("question %q has %d options, need at least 2", q.ID, len(q.Options))
			}
			for i, opt := range q.Options {
				if opt.Score <= 0 {
					return fmt.Errorf("question %q option %d has non-positive score %d", q.ID, i, opt.Score)
				}
				if opt.Score > a.MaxOptionScore {
					return fmt.Errorf("question %q option %d score %d exceeds max %d", q.ID, i, opt.Score, a.MaxOptionScore)
				}
			}
		}
	}

	if math.Abs(weightSum-1.0) > 0.001 {
		log.Printf("WARN: assessment %q category weights sum to %.3f, expected 1.0", a.Key, weightSum)
	}

	return nil
}

// ── Owner Centricity ─────────────────────────────────────

// OwnerCentricity measures how much the business depends on the
// owner's personal, non-delegable involvement across five functional
// areas. Lower centricity reads as higher exit value.
func OwnerCentricity() *models.Assessment {
	return &models.Assessment{
		Key:            models.AssessmentOwnerCentricity,
		Title:          "Owner Centricity Assessment",
		Description:    "Evaluate how independently your business operates across five functional areas",
		MaxOptionScore: 4,
		Categories: []models.Category{
			{
				Name:   "Sales & Customer Management",
				Weight: 0.25,
				Theme:  models.ThemeBlue,
				Questions: []models.Question{
					{
						ID:     "customer_relationships",
						Prompt: "Who maintains primary relationships with your top 10 customers?",
						Options: []models.Option{
							{Text: "Dedicated sales team members exclusively", Score: 4, Explanation: "Excellent - no owner dependency in customer relationships"},
							{Text: "Mix of owner and sales team", Score: 3, Explanation: "Good - shared responsibility reduces risk"},
							{Text: "Primarily owner with some team backup", Score: 2, Explanation: "Concerning - high owner dependency"},
							{Text: "Owner maintains all key customer relationships", Score: 1, Explanation: "Critical risk - complete owner dependency"},
						},
					},
					{
						ID:     "sales_process",
						Prompt: "How documented and systematized are your sales processes?",
						Options: []models.Option{
							{Text: "Fully documented CRM with standardized processes", Score: 4, Explanation: "Excellent - systematic approach enables consistent results"},
							{Text: "Good documentation with minor gaps", Score: 3, Explanation: "Good - mostly systematic with some informal processes"},
							{Text: "Basic documentation, relies on experience", Score: 2, Explanation: "Average - too dependent on individual experience"},
							{Text: "Mostly undocumented, owner-dependent", Score: 1, Explanation: "Poor - success depends entirely on owner knowledge"},
						},
					},
					{
						ID:     "new_customer_acquisition",
						Prompt: "Who handles new customer acquisition and development?",
						Options: []models.Option{
							{Text: "Dedicated sales team with proven track record", Score: 4, Explanation: "Excellent - sustainable growth capability"},
							{Text: "Sales team with owner oversight and support", Score: 3, Explanation: "Good - team driven with owner guidance"},
							{Text: "Owner primary with team support", Score: 2, Explanation: "Concerning - growth depends heavily on owner"},
							{Text: "Owner handles all new business development", Score: 1, Explanation: "Critical - growth completely owner dependent"},
						},
					},
				},
			},
			{
				Name:   "Operations & Production",
				Weight: 0.20,
				Theme:  models.ThemeGreen,
				Questions: []models.Question{
					{
						ID:     "daily_operations",
						Prompt: "Who manages daily operations when you're away for 2+ weeks?",
						Options: []models.Option{
							{Text: "Operations manager handles everything smoothly", Score: 4, Explanation: "Excellent - business runs independently"},
							{Text: "Manager handles most, occasional consultation needed", Score: 3, Explanation: "Good - minimal owner dependency"},
							{Text: "Manager handles routine, owner needed for problems", Score: 2, Explanation: "Average - moderate dependency"},
							{Text: "Operations struggle significantly without owner", Score: 1, Explanation: "Poor - critical owner dependency"},
						},
					},
					{
						ID:     "quality_control",
						Prompt: "How are quality standards maintained and monitored?",
						Options: []models.Option{
							{Text: "Systematic quality management with documented procedures", Score: 4, Explanation: "Excellent - consistent quality without owner involvement"},
							{Text: "Good systems with regular owner oversight", Score: 3, Explanation: "Good - systems in place with owner guidance"},
							{Text: "Basic systems requiring owner involvement", Score: 2, Explanation: "Average - quality depends on owner presence"},
							{Text: "Quality control depends primarily on owner", Score: 1, Explanation: "Poor - quality risks without owner"},
						},
					},
					{
						ID:     "vendor_management",
						Prompt: "Who manages key vendor and supplier relationships?",
						Options: []models.Option{
							{Text: "Purchasing manager with established relationships", Score: 4, Explanation: "Excellent - diversified vendor management"},
							{Text: "Team manages routine, owner handles strategic vendors", Score: 3, Explanation: "Good - balanced approach"},
							{Text: "Owner primary contact with team support", Score: 2, Explanation: "Average - moderate owner dependency"},
							{Text: "Owner maintains all critical vendor relationships", Score: 1, Explanation: "Poor - complete vendor relationship dependency"},
						},
					},
				},
			},
			{
				Name:   "Financial Management",
				Weight: 0.20,
				Theme:  models.ThemePurple,
				Questions: []models.Question{
					{
						ID:     "financial_reporting",
						Prompt: "Who prepares and analyzes monthly financial reports?",
						Options: []models.Option{
							{Text: "CFO/Controller produces comprehensive reports", Score: 4, Explanation: "Excellent - professional financial management"},
							{Text: "Bookkeeper prepares, owner analyzes", Score: 3, Explanation: "Good - shared financial responsibilities"},
							{Text: "Owner compiles and analyzes most reports", Score: 2, Explanation: "Average - high owner involvement in finance"},
							{Text: "Owner handles most financial management", Score: 1, Explanation: "Poor - complete financial dependency on owner"},
						},
					},
					{
						ID:     "cash_management",
						Prompt: "Who makes cash management and investment decisions?",
						Options: []models.Option{
							{Text: "Financial manager with established policies", Score: 4, Explanation: "Excellent - systematic cash management"},
							{Text: "Team makes routine, owner approves major decisions", Score: 3, Explanation: "Good - delegated authority with oversight"},
							{Text: "Owner makes most financial decisions", Score: 2, Explanation: "Average - centralized decision making"},
							{Text: "All financial decisions require owner approval", Score: 1, Explanation: "Poor - bottleneck in financial operations"},
						},
					},
				},
			},
			{
				Name:   "Strategic Decision Making",
				Weight: 0.25,
				Theme:  models.ThemeTeal,
				Questions: []models.Question{
					{
						ID:     "strategic_planning",
						Prompt: "Who participates in strategic planning and major decisions?",
						Options: []models.Option{
							{Text: "Management team leads strategic planning process", Score: 4, Explanation: "Excellent - distributed strategic thinking"},
							{Text: "Management participates, owner guides direction", Score: 3, Explanation: "Good - collaborative strategic planning"},
							{Text: "Owner leads with management input", Score: 2, Explanation: "Average - owner-led planning"},
							{Text: "Owner makes all strategic decisions alone", Score: 1, Explanation: "Poor - no strategic succession capability"},
						},
					},
					{
						ID:     "problem_solving",
						Prompt: "When significant problems arise, who typically resolves them?",
						Options: []models.Option{
							{Text: "Management team resolves most issues independently", Score: 4, Explanation: "Excellent - autonomous problem-solving capability"},
							{Text: "Management handles routine, escalates complex issues", Score: 3, Explanation: "Good - appropriate escalation process"},
							{Text: "Owner involved in most problem resolution", Score: 2, Explanation: "Average - high owner involvement needed"},
							{Text: "All significant problems come directly to owner", Score: 1, Explanation: "Poor - owner is single point of failure"},
						},
					},
					{
						ID:     "external_relationships",
						Prompt: "Who manages relationships with banks, lawyers, accountants?",
						Options: []models.Option{
							{Text: "Designated team members manage each relationship", Score: 4, Explanation: "Excellent - professional relationship distribution"},
							{Text: "Team involved, owner maintains primary contact", Score: 3, Explanation: "Good - shared professional relationships"},
							{Text: "Owner primary with team support", Score: 2, Explanation: "Average - owner-centric relationships"},
							{Text: "Owner maintains all external relationships", Score: 1, Explanation: "Poor - complete relationship dependency"},
						},
					},
				},
			},
			{
				Name:   "Innovation & Development",
				Weight: 0.10,
				Theme:  models.ThemeOrange,
				Questions: []models.Question{
					{
						ID:     "innovation_process",
						Prompt: "Who drives product/service innovation and development?",
						Options: []models.Option{
							{Text: "Innovation team with systematic process", Score: 4, Explanation: "Excellent - sustainable innovation capability"},
							{Text: "Team contributes ideas, owner provides direction", Score: 3, Explanation: "Good - collaborative innovation"},
							{Text: "Owner primary innovator with team input", Score: 2, Explanation: "Average - owner-dependent innovation"},
							{Text: "Owner exclusively drives all innovation", Score: 1, Explanation: "Poor - innovation stops without owner"},
						},
					},
				},
			},
		},
	}
}

// ── Personal Vision ──────────────────────────────────────

// PersonalVision measures how prepared the owner is for life after the
// exit across financial, activity, identity, and family dimensions.
func PersonalVision() *models.Assessment {
	return &models.Assessment{
		Key:            models.AssessmentPersonalVision,
		Title:          "Personal Vision Assessment",
		Description:    "Evaluate your readiness for life after the business across four dimensions",
		MaxOptionScore: 4,
		Categories: []models.Category{
			{
				Name:   "Financial Lifestyle & Security",
				Weight: 0.25,
				Theme:  models.ThemeGreen,
				Questions: []models.Question{
					{
						ID:     "desired_income_clarity",
						Prompt: "How clearly have you defined the annual income you need after exit?",
						Options: []models.Option{
							{Text: "Detailed budget with advisor-validated income target", Score: 4, Explanation: "Excellent - financial needs are fully quantified"},
							{Text: "Solid estimate based on current spending", Score: 3, Explanation: "Good - a realistic target exists but hasn't been stress-tested"},
							{Text: "Rough number, never written down", Score: 2, Explanation: "Concerning - lifestyle funding is guesswork"},
							{Text: "No idea what post-exit life will cost", Score: 1, Explanation: "Critical - exit proceeds cannot be sized against needs"},
						},
					},
					{
						ID:     "risk_tolerance_alignment",
						Prompt: "How well does your investment plan match your post-exit risk tolerance?",
						Options: []models.Option{
							{Text: "Written investment policy aligned with withdrawal needs", Score: 4, Explanation: "Excellent - portfolio strategy matches the plan"},
							{Text: "General allocation discussed with an advisor", Score: 3, Explanation: "Good - direction is set, details pending"},
							{Text: "Investments managed ad hoc", Score: 2, Explanation: "Average - no link between portfolio and exit plan"},
							{Text: "Nearly all wealth still tied up in the business", Score: 1, Explanation: "Poor - concentration risk threatens the exit"},
						},
					},
				},
			},
			{
				Name:   "Activity & Engagement",
				Weight: 0.25,
				Theme:  models.ThemeBlue,
				Questions: []models.Question{
					{
						ID:     "work_involvement_plan",
						Prompt: "How defined is your plan for ongoing work involvement after exit?",
						Options: []models.Option{
							{Text: "Specific commitments already arranged (board, advisory, consulting)", Score: 4, Explanation: "Excellent - engagement is planned, not hoped for"},
							{Text: "Clear preferences with a few concrete options", Score: 3, Explanation: "Good - direction chosen, arrangements pending"},
							{Text: "Vague intention to 'stay somewhat involved'", Score: 2, Explanation: "Average - likely to drift back into the business"},
							{Text: "No plan for how to spend working energy", Score: 1, Explanation: "Poor - high risk of post-exit regret"},
						},
					},
					{
						ID:     "daily_structure",
						Prompt: "How concrete is your picture of a typical post-exit week?",
						Options: []models.Option{
							{Text: "Scheduled mix of activities already being piloted", Score: 4, Explanation: "Excellent - the new routine is being tested now"},
							{Text: "Clear list of activities and time commitments", Score: 3, Explanation: "Good - the week has a shape on paper"},
							{Text: "A few hobbies in mind, nothing scheduled", Score: 2, Explanation: "Average - weeks may feel empty after the handover"},
							{Text: "Haven't thought past the closing date", Score: 1, Explanation: "Poor - day one after exit is a blank page"},
						},
					},
				},
			},
			{
				Name:   "Identity & Purpose",
				Weight: 0.30,
				Theme:  models.ThemePurple,
				Questions: []models.Question{
					{
						ID:     "identity_transition",
						Prompt: "How prepared are you to no longer be 'the owner' of your business?",
						Options: []models.Option{
							{Text: "Identity already anchored in roles outside the business", Score: 4, Explanation: "Excellent - self-worth doesn't depend on the title"},
							{Text: "Actively building an identity beyond the company", Score: 3, Explanation: "Good - transition work is underway"},
							{Text: "Aware it will be hard, no concrete steps taken", Score: 2, Explanation: "Average - identity risk acknowledged but unaddressed"},
							{Text: "The business is who I am", Score: 1, Explanation: "Critical - exit threatens core identity"},
						},
					},
					{
						ID:     "post_exit_purpose",
						Prompt: "How clear is your sense of purpose for the years after exit?",
						Options: []models.Option{
							{Text: "Defined mission with commitments already made", Score: 4, Explanation: "Excellent - purpose carries through the transition"},
							{Text: "Strong interests that could become a mission", Score: 3, Explanation: "Good - raw material for purpose exists"},
							{Text: "General hope that something will emerge", Score: 2, Explanation: "Average - purpose is deferred to later"},
							{Text: "Purpose has always come from the business", Score: 1, Explanation: "Poor - nothing identified to replace it"},
						},
					},
					{
						ID:     "legacy_definition",
						Prompt: "How well have you defined the legacy you want to leave?",
						Options: []models.Option{
							{Text: "Written legacy goals shared with family and advisors", Score: 4, Explanation: "Excellent - legacy shapes the exit structure"},
							{Text: "Clear ideas discussed informally", Score: 3, Explanation: "Good - legacy thinking has started"},
							{Text: "Occasional thoughts, nothing articulated", Score: 2, Explanation: "Average - legacy left to chance"},
							{Text: "Haven't considered legacy at all", Score: 1, Explanation: "Poor - a major exit dimension is missing"},
						},
					},
				},
			},
			{
				Name:   "Relationships & Family",
				Weight: 0.20,
				Theme:  models.ThemeTeal,
				Questions: []models.Question{
					{
						ID:     "family_alignment",
						Prompt: "How aligned is your family with your exit timeline and plans?",
						Options: []models.Option{
							{Text: "Family fully informed and supportive of the plan", Score: 4, Explanation: "Excellent - no surprises waiting at home"},
							{Text: "Spouse/partner aligned, wider family partially informed", Score: 3, Explanation: "Good - core support is in place"},
							{Text: "Plans mentioned but never discussed in depth", Score: 2, Explanation: "Average - alignment is assumed, not confirmed"},
							{Text: "Family doesn't know an exit is being considered", Score: 1, Explanation: "Poor - major relationship risk at transition"},
						},
					},
					{
						ID:     "network_transition",
						Prompt: "How will you maintain meaningful relationships once business contact ends?",
						Options: []models.Option{
							{Text: "Strong social circle independent of the business", Score: 4, Explanation: "Excellent - relationships survive the exit"},
							{Text: "Several close relationships outside work", Score: 3, Explanation: "Good - a foundation exists beyond the company"},
							{Text: "Most relationships run through the business", Score: 2, Explanation: "Average - social life is at risk after exit"},
							{Text: "Nearly all relationships are business contacts", Score: 1, Explanation: "Poor - exit may mean isolation"},
						},
					},
				},
			},
		},
	}
}
