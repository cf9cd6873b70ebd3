package assessment

import (
	"math"

	"github.com/kgob/backend/internal/models"
)

// Tier thresholds are business policy carried over from the advisory
// methodology, not derived values. Inclusive lower bounds: a score
// exactly on a boundary belongs to the higher tier.
const (
	TierExcellentMin  = 85.0
	TierGoodMin       = 70.0
	TierDevelopingMin = 55.0
)

// CategoryScore averages the selected option scores for the answered
// questions of one category and maps the average onto a 0-100 scale.
// The scale factor is 100 / maxOptionScore so a 1-4 option scale maps
// a perfect category to exactly 100.
//
// Returns ok=false when no question in the category has been answered:
// an unreached category is excluded from the weighted average, not
// treated as zero.
func CategoryScore(cat models.Category, answers map[string]models.Option, maxOptionScore int) (float64, bool) {
	total := 0
	count := 0
	for _, q := range cat.Questions {
		opt, ok := answers[q.ID]
		if !ok {
			continue
		}
		total += opt.Score
		count++
	}
	if count == 0 {
		return 0, false
	}
	scale := 100.0 / float64(maxOptionScore)
	return float64(total) / float64(count) * scale, true
}

// FinalScore combines the weighted category scores into a single 0-100
// score. Weights are re-normalized over answered categories only, so a
// partially completed assessment yields a meaningful running score
// instead of an artificially low total.
func FinalScore(a *models.Assessment, answers map[string]models.Option) float64 {
	weightedSum := 0.0
	weightSum := 0.0
	for _, cat := range a.Categories {
		score, ok := CategoryScore(cat, answers, a.MaxOptionScore)
		if !ok {
			continue
		}
		weightedSum += score * cat.Weight
		weightSum += cat.Weight
	}
	if weightSum <= 0 {
		return 0
	}
	return weightedSum / weightSum
}

// Interpret maps a 0-100 score to its tier. Ties resolve upward.
func Interpret(score float64) models.Tier {
	switch {
	case score >= TierExcellentMin:
		return models.TierExcellent
	case score >= TierGoodMin:
		return models.TierGood
	case score >= TierDevelopingMin:
		return models.TierDeveloping
	default:
		return models.TierHighDependency
	}
}

// Interpretation returns the business reading attached to a score's
// tier. The valuation adjustments are advisory copy, applied by the
// valuation workflow rather than computed here.
func Interpretation(score float64) models.Interpretation {
	return InterpretationForTier(Interpret(score))
}

// InterpretationForTier returns the business reading for a tier that
// was already decided. Saved results carry the tier computed from the
// unrounded score; rehydration must not re-derive it from the rounded
// stored score, which can sit on the other side of a boundary.
func InterpretationForTier(tier models.Tier) models.Interpretation {
	switch tier {
	case models.TierExcellent:
		return models.Interpretation{
			Tier:        models.TierExcellent,
			Level:       "Excellent",
			Description: "Your business demonstrates exceptional independence from owner involvement. This significantly enhances business value.",
			ValueImpact: "+20-25% above base valuation",
			Readiness:   "Ready for immediate exit consideration",
		}
	case models.TierGood:
		return models.Interpretation{
			Tier:        models.TierGood,
			Level:       "Good",
			Description: "Strong management systems with some areas for improvement. Moderate positive impact on value.",
			ValueImpact: "+10-15% above base valuation",
			Readiness:   "Ready for exit planning with minor improvements",
		}
	case models.TierDeveloping:
		return models.Interpretation{
			Tier:        models.TierDeveloping,
			Level:       "Developing",
			Description: "Moderate owner dependency that should be addressed before exit. Some impact on valuation.",
			ValueImpact: "Neutral to +5% above base valuation",
			Readiness:   "Needs 12-18 months of improvement before exit",
		}
	default:
		return models.Interpretation{
			Tier:        models.TierHighDependency,
			Level:       "High Dependency",
			Description: "High owner dependency significantly impacts business value and exit options.",
			ValueImpact: "-15-25% below base valuation",
			Readiness:   "Requires 2-3 years of systematic improvement",
		}
	}
}

// Result computes the full derived result for an assessment and answer
// map. Pure and idempotent; safe to call on every answer change.
func Result(a *models.Assessment, answers map[string]models.Option) *models.AssessmentResult {
	perCategory := make(map[string]float64)
	for _, cat := range a.Categories {
		if score, ok := CategoryScore(cat, answers, a.MaxOptionScore); ok {
			perCategory[cat.Name] = round1(score)
		}
	}
	final := FinalScore(a, answers)

	answered := 0
	for _, cat := range a.Categories {
		for _, q := range cat.Questions {
			if _, ok := answers[q.ID]; ok {
				answered++
			}
		}
	}
	total := a.QuestionCount()

	return &models.AssessmentResult{
		AssessmentKey:     a.Key,
		PerCategoryScore:  perCategory,
		FinalScore:        round1(final),
		Interpretation:    Interpretation(final),
		QuestionsAnswered: answered,
		QuestionsTotal:    total,
		Complete:          answered == total,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
