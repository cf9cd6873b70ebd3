package wealthgap

import (
	"math"
	"strconv"
	"strings"

	"github.com/kgob/backend/internal/models"
)

// CapitalMultiple converts desired annual income into the capital that
// sustains it at a 4% safe withdrawal rate (1 / 0.04 = 25). Business
// policy carried over from the advisory methodology, not derived.
const CapitalMultiple = 25.0

// Compute derives the wealth-gap metrics from the raw inputs. Pure and
// total over its input domain: all-zero inputs produce an all-zero
// result, never an error.
func Compute(in models.WealthGapInputs) models.WealthGapResult {
	capitalNeeded := in.DesiredIncome * CapitalMultiple
	totalAssets := in.CurrentAssets + in.BusinessValue
	gap := math.Max(0, capitalNeeded-totalAssets)

	// A timeline under one year would make the annual target explode;
	// treat anything below 1 as a one-year runway.
	years := in.TimeToExit
	if years < 1 {
		years = 1
	}
	annualValueNeeded := gap / years

	requiredGrowthPct := 0.0
	if in.BusinessValue > 0 {
		requiredGrowthPct = round1(annualValueNeeded / in.BusinessValue * 100)
	}

	yearsOfSecurity := 0.0
	if in.DesiredIncome > 0 {
		yearsOfSecurity = round1(totalAssets / in.DesiredIncome)
	}

	result := models.WealthGapResult{
		CapitalNeeded:     capitalNeeded,
		TotalAssets:       totalAssets,
		WealthGap:         gap,
		HasGap:            gap > 0,
		AnnualValueNeeded: annualValueNeeded,
		RequiredGrowthPct: requiredGrowthPct,
		YearsOfSecurity:   yearsOfSecurity,
	}
	result.Recommendation = recommendation(result)
	return result
}

func recommendation(r models.WealthGapResult) string {
	switch {
	case r.CapitalNeeded == 0:
		return "Enter your desired post-exit income to size the capital you need."
	case !r.HasGap:
		return "Your projected assets cover your post-exit income needs. Focus on protecting value and optimizing the exit structure."
	case r.RequiredGrowthPct > 0 && r.RequiredGrowthPct <= 5:
		return "A modest annual value improvement closes your gap. Prioritize the highest-leverage value drivers before exit."
	case r.RequiredGrowthPct > 5:
		return "Closing your gap requires aggressive value growth. Consider extending your timeline or expanding non-business assets."
	default:
		return "Your gap must be closed from non-business assets or a longer timeline; the business alone cannot grow into it."
	}
}

// ParseAmount converts a currency field as entered ("$1,250,000",
// "80000", "") into a float. Blank or unparseable input is 0; the
// calculator always computes with whatever the user has typed so far.
func ParseAmount(s string) float64 {
	cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseInputs maps the raw request fields onto calculator inputs.
func ParseInputs(req models.WealthGapRequest) models.WealthGapInputs {
	return models.WealthGapInputs{
		CurrentIncome:    ParseAmount(req.CurrentIncome),
		DesiredIncome:    ParseAmount(req.DesiredIncome),
		CurrentAssets:    ParseAmount(req.CurrentAssets),
		BusinessValue:    ParseAmount(req.BusinessValue),
		TimeToExit:       ParseAmount(req.TimeToExit),
		CurrentExpenses:  ParseAmount(req.CurrentExpenses),
		PostExitExpenses: ParseAmount(req.PostExitExpenses),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
