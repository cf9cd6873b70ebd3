package assessment

import (
	"testing"

	"github.com/kgob/backend/internal/models"
)

func testAssessment() *models.Assessment {
	return &models.Assessment{
		Key:            "test-assessment",
		Title:          "Test Assessment",
		MaxOptionScore: 4,
		Categories: []models.Category{
			{
				Name:   "Alpha",
				Weight: 0.6,
				Questions: []models.Question{
					{ID: "a1", Prompt: "First alpha question", Options: fourOptions()},
					{ID: "a2", Prompt: "Second alpha question", Options: fourOptions()},
				},
			},
			{
				Name:   "Beta",
				Weight: 0.4,
				Questions: []models.Question{
					{ID: "b1", Prompt: "First beta question", Options: fourOptions()},
				},
			},
		},
	}
}

func fourOptions() []models.Option {
	return []models.Option{
		{Text: "Fully owner dependent", Score: 1},
		{Text: "Mostly owner dependent", Score: 2},
		{Text: "Mostly delegated", Score: 3},
		{Text: "Fully delegated", Score: 4},
	}
}

func answer(score int) models.Option {
	return models.Option{Score: score}
}

func TestCategoryScore_ScalesToHundred(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{
		"a1": answer(4),
		"a2": answer(4),
	}

	score, ok := CategoryScore(a.Categories[0], answers, a.MaxOptionScore)
	if !ok {
		t.Fatal("expected category to be scored")
	}
	if score != 100 {
		t.Errorf("perfect category: expected 100, got %g", score)
	}
}

func TestCategoryScore_AveragesAnsweredOnly(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{"a1": answer(2)}

	score, ok := CategoryScore(a.Categories[0], answers, a.MaxOptionScore)
	if !ok {
		t.Fatal("expected category to be scored")
	}
	// Single answer of 2 on a 1-4 scale: 2 * 25 = 50
	if score != 50 {
		t.Errorf("expected 50, got %g", score)
	}
}

func TestCategoryScore_Unanswered(t *testing.T) {
	a := testAssessment()

	_, ok := CategoryScore(a.Categories[1], map[string]models.Option{"a1": answer(3)}, a.MaxOptionScore)
	if ok {
		t.Error("category with no answered questions should be excluded, not scored")
	}
}

func TestFinalScore_RenormalizesOverAnsweredCategories(t *testing.T) {
	a := testAssessment()

	// Only Alpha answered: its weight should be renormalized to 1.0, so
	// the final score equals the category score.
	answers := map[string]models.Option{
		"a1": answer(3),
		"a2": answer(3),
	}

	catScore, _ := CategoryScore(a.Categories[0], answers, a.MaxOptionScore)
	final := FinalScore(a, answers)
	if final != catScore {
		t.Errorf("single answered category: final %g should equal category score %g", final, catScore)
	}
}

func TestFinalScore_WeightedAverage(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{
		"a1": answer(4),
		"a2": answer(4),
		"b1": answer(2),
	}

	// Alpha = 100 at weight 0.6, Beta = 50 at weight 0.4 → 80
	final := FinalScore(a, answers)
	if final != 80 {
		t.Errorf("expected 80, got %g", final)
	}
}

func TestFinalScore_NoAnswers(t *testing.T) {
	a := testAssessment()
	if final := FinalScore(a, map[string]models.Option{}); final != 0 {
		t.Errorf("empty answer map: expected 0, got %g", final)
	}
}

func TestFinalScore_MonotonicInAnswerScore(t *testing.T) {
	a := testAssessment()

	prev := -1.0
	for score := 1; score <= 4; score++ {
		answers := map[string]models.Option{
			"a1": answer(score),
			"a2": answer(score),
			"b1": answer(score),
		}
		final := FinalScore(a, answers)
		if final <= prev {
			t.Errorf("score %d: final %g not greater than previous %g", score, final, prev)
		}
		prev = final
	}
}

func TestInterpret_TierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Tier
	}{
		{100, models.TierExcellent},
		{85, models.TierExcellent},
		{84.999, models.TierGood},
		{70, models.TierGood},
		{69.999, models.TierDeveloping},
		{55, models.TierDeveloping},
		{54.999, models.TierHighDependency},
		{0, models.TierHighDependency},
	}

	for _, tc := range cases {
		if got := Interpret(tc.score); got != tc.want {
			t.Errorf("Interpret(%g): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestResult_Idempotent(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{
		"a1": answer(3),
		"b1": answer(2),
	}

	first := Result(a, answers)
	second := Result(a, answers)

	if first.FinalScore != second.FinalScore {
		t.Errorf("final score changed between calls: %g vs %g", first.FinalScore, second.FinalScore)
	}
	if len(first.PerCategoryScore) != len(second.PerCategoryScore) {
		t.Errorf("category score count changed: %d vs %d", len(first.PerCategoryScore), len(second.PerCategoryScore))
	}
}

func TestResult_PartialCompletion(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{"a1": answer(4)}

	result := Result(a, answers)

	if result.Complete {
		t.Error("result should not be complete with 1 of 3 questions answered")
	}
	if result.QuestionsAnswered != 1 || result.QuestionsTotal != 3 {
		t.Errorf("expected 1/3 answered, got %d/%d", result.QuestionsAnswered, result.QuestionsTotal)
	}
	if _, ok := result.PerCategoryScore["Beta"]; ok {
		t.Error("unanswered category should be absent from per-category scores")
	}
	if _, ok := result.PerCategoryScore["Alpha"]; !ok {
		t.Error("answered category missing from per-category scores")
	}
}

func TestResult_Complete(t *testing.T) {
	a := testAssessment()
	answers := map[string]models.Option{
		"a1": answer(4),
		"a2": answer(4),
		"b1": answer(4),
	}

	result := Result(a, answers)

	if !result.Complete {
		t.Error("expected complete result")
	}
	if result.FinalScore != 100 {
		t.Errorf("all top answers: expected 100, got %g", result.FinalScore)
	}
	if result.Interpretation.Tier != models.TierExcellent {
		t.Errorf("expected excellent tier, got %s", result.Interpretation.Tier)
	}
}
