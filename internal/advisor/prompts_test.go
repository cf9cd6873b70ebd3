package advisor

import (
	"strings"
	"testing"

	"github.com/kgob/backend/internal/models"
)

func sampleResult() *models.AssessmentResult {
	return &models.AssessmentResult{
		AssessmentKey: models.AssessmentOwnerCentricity,
		PerCategoryScore: map[string]float64{
			"Sales & Customer Management": 50,
			"Operations & Production":     87.5,
		},
		FinalScore:        66.7,
		Interpretation:    models.Interpretation{Tier: models.TierDeveloping, Level: "Developing"},
		QuestionsAnswered: 12,
		QuestionsTotal:    12,
		Complete:          true,
	}
}

func TestBuildUserPrompt_IncludesScores(t *testing.T) {
	prompt := BuildUserPrompt(sampleResult(), nil)

	if !strings.Contains(prompt, "Owner Centricity Assessment") {
		t.Error("prompt should name the assessment")
	}
	if !strings.Contains(prompt, "66.7") {
		t.Error("prompt should carry the overall score")
	}
	if !strings.Contains(prompt, "Sales & Customer Management: 50.0") {
		t.Error("prompt should list category scores")
	}
	if !strings.Contains(prompt, "Operations & Production: 87.5") {
		t.Error("prompt should list all answered categories")
	}
	if strings.Contains(prompt, "Wealth gap") {
		t.Error("prompt should omit wealth gap section when none is given")
	}
	if !strings.Contains(prompt, `"priorities"`) {
		t.Error("prompt should specify the JSON response shape")
	}
}

func TestBuildUserPrompt_CategoryOrderIsStable(t *testing.T) {
	first := BuildUserPrompt(sampleResult(), nil)
	for i := 0; i < 5; i++ {
		if next := BuildUserPrompt(sampleResult(), nil); next != first {
			t.Fatal("prompt should be deterministic for the same result")
		}
	}
}

func TestBuildUserPrompt_WithWealthGap(t *testing.T) {
	gap := &models.WealthGapResult{
		CapitalNeeded:     3750000,
		TotalAssets:       3500000,
		WealthGap:         250000,
		HasGap:            true,
		AnnualValueNeeded: 50000,
		RequiredGrowthPct: 1.7,
		YearsOfSecurity:   23.3,
	}

	prompt := BuildUserPrompt(sampleResult(), gap)

	if !strings.Contains(prompt, "Wealth gap") {
		t.Error("prompt should include the wealth gap section")
	}
	if !strings.Contains(prompt, "$250000") {
		t.Error("prompt should carry the gap figure")
	}
	if !strings.Contains(prompt, "1.7%") {
		t.Error("prompt should carry the required growth rate")
	}
}

func TestBuildUserPrompt_NoGap(t *testing.T) {
	gap := &models.WealthGapResult{
		CapitalNeeded: 2500000,
		TotalAssets:   3000000,
		HasGap:        false,
	}

	prompt := BuildUserPrompt(sampleResult(), gap)

	if !strings.Contains(prompt, "No wealth gap") {
		t.Error("prompt should state when assets already cover the target")
	}
}

func TestSystemPrompt_RequiresJSON(t *testing.T) {
	p := SystemPrompt()
	if !strings.Contains(p, "valid JSON only") {
		t.Error("system prompt must demand a JSON-only response")
	}
}
