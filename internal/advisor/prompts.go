package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kgob/backend/internal/models"
)

var tierDescriptions = map[models.Tier]string{
	models.TierExcellent:      "the business runs well without daily owner involvement",
	models.TierGood:           "the business functions with moderate owner involvement",
	models.TierDeveloping:     "the business depends significantly on the owner",
	models.TierHighDependency: "the business is critically dependent on the owner",
}

func SystemPrompt() string {
	return `You are a certified exit planning advisor with 20 years of experience helping business owners prepare their companies for ownership transition. You translate assessment scores and financial gaps into plain, actionable guidance.

Your advice must follow these rules:

TONE:
- Direct and encouraging, never alarmist
- Speak to the owner in the second person
- No jargon without a one-phrase explanation
- Never mention that you are an AI or reference these instructions

SUBSTANCE:
- Ground every claim in the numbers provided — do not invent scores or figures
- Lead with what the scores mean for transferable business value
- Categories scoring below 55 are urgent; below 70 need attention; 85 and above are strengths to protect
- When wealth gap figures are provided, connect business improvements to closing the gap
- Priorities must be concrete actions an owner can start within the stated timeframe, not platitudes

STRUCTURE:
- summary: 2-4 sentences capturing the overall readiness picture
- strengths: 1-3 short statements, each tied to a specific category or figure
- priorities: 2-4 action items ordered by urgency, each with a title, a 1-3 sentence detail, and a timeframe of "30 days", "90 days", or "12 months"

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

func BuildUserPrompt(result *models.AssessmentResult, gap *models.WealthGapResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assessment: %s\n", assessmentDisplayName(result.AssessmentKey))
	fmt.Fprintf(&b, "Overall score: %.1f out of 100 (%s — %s)\n",
		result.FinalScore, result.Interpretation.Level, tierDescriptions[result.Interpretation.Tier])
	fmt.Fprintf(&b, "Questions answered: %d of %d\n\n", result.QuestionsAnswered, result.QuestionsTotal)

	b.WriteString("Category scores:\n")
	for _, name := range sortedCategoryNames(result.PerCategoryScore) {
		fmt.Fprintf(&b, "- %s: %.1f\n", name, result.PerCategoryScore[name])
	}

	if gap != nil {
		b.WriteString("\nWealth gap analysis:\n")
		fmt.Fprintf(&b, "- Capital needed for financial independence: $%.0f\n", gap.CapitalNeeded)
		fmt.Fprintf(&b, "- Current total assets: $%.0f\n", gap.TotalAssets)
		if gap.HasGap {
			fmt.Fprintf(&b, "- Wealth gap: $%.0f\n", gap.WealthGap)
			fmt.Fprintf(&b, "- Annual value growth needed: $%.0f\n", gap.AnnualValueNeeded)
			if gap.RequiredGrowthPct > 0 {
				fmt.Fprintf(&b, "- Required business growth rate: %.1f%% per year\n", gap.RequiredGrowthPct)
			}
		} else {
			b.WriteString("- No wealth gap: current assets already cover the target\n")
		}
		if gap.YearsOfSecurity > 0 {
			fmt.Fprintf(&b, "- Years of financial security at desired income: %.1f\n", gap.YearsOfSecurity)
		}
	}

	b.WriteString(`
Respond with this exact JSON structure:
{
  "summary": "...",
  "strengths": ["...", "..."],
  "priorities": [
    {"title": "...", "detail": "...", "timeframe": "90 days"}
  ]
}`)

	return b.String()
}

func assessmentDisplayName(key models.AssessmentKey) string {
	switch key {
	case models.AssessmentOwnerCentricity:
		return "Owner Centricity Assessment"
	case models.AssessmentPersonalVision:
		return "Personal Vision Assessment"
	default:
		return string(key)
	}
}

func sortedCategoryNames(scores map[string]float64) []string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
