package assessment

import (
	"testing"

	"github.com/kgob/backend/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("built-in definitions failed validation: %v", err)
	}

	summaries := r.List()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(summaries))
	}

	oc, ok := r.Get(models.AssessmentOwnerCentricity)
	if !ok {
		t.Fatal("owner centricity definition missing")
	}
	if len(oc.Categories) != 5 {
		t.Errorf("owner centricity: expected 5 categories, got %d", len(oc.Categories))
	}
	if oc.QuestionCount() != 12 {
		t.Errorf("owner centricity: expected 12 questions, got %d", oc.QuestionCount())
	}

	pv, ok := r.Get(models.AssessmentPersonalVision)
	if !ok {
		t.Fatal("personal vision definition missing")
	}
	if len(pv.Categories) != 4 {
		t.Errorf("personal vision: expected 4 categories, got %d", len(pv.Categories))
	}

	if _, ok := r.Get("unknown"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestOwnerCentricityWeights(t *testing.T) {
	oc := OwnerCentricity()

	sum := 0.0
	for _, cat := range oc.Categories {
		sum += cat.Weight
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("owner centricity weights sum to %g, expected 1.0", sum)
	}
}

func TestValidate_RejectsMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name string
		def  *models.Assessment
	}{
		{
			"no categories",
			&models.Assessment{Key: "x", MaxOptionScore: 4},
		},
		{
			"empty category",
			&models.Assessment{Key: "x", MaxOptionScore: 4, Categories: []models.Category{
				{Name: "Empty", Weight: 1.0},
			}},
		},
		{
			"single option",
			&models.Assessment{Key: "x", MaxOptionScore: 4, Categories: []models.Category{
				{Name: "C", Weight: 1.0, Questions: []models.Question{
					{ID: "q1", Options: []models.Option{{Text: "only", Score: 1}}},
				}},
			}},
		},
		{
			"duplicate question id",
			&models.Assessment{Key: "x", MaxOptionScore: 4, Categories: []models.Category{
				{Name: "C", Weight: 1.0, Questions: []models.Question{
					{ID: "q1", Options: fourOptions()},
					{ID: "q1", Options: fourOptions()},
				}},
			}},
		},
		{
			"score exceeds max",
			&models.Assessment{Key: "x", MaxOptionScore: 3, Categories: []models.Category{
				{Name: "C", Weight: 1.0, Questions: []models.Question{
					{ID: "q1", Options: fourOptions()},
				}},
			}},
		},
		{
			"non-positive weight",
			&models.Assessment{Key: "x", MaxOptionScore: 4, Categories: []models.Category{
				{Name: "C", Weight: 0, Questions: []models.Question{
					{ID: "q1", Options: fourOptions()},
				}},
			}},
		},
	}

	for _, tc := range cases {
		if err := Validate(tc.def); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidate_ToleratesUnevenWeights(t *testing.T) {
	def := &models.Assessment{Key: "x", MaxOptionScore: 4, Categories: []models.Category{
		{Name: "A", Weight: 0.5, Questions: []models.Question{{ID: "q1", Options: fourOptions()}}},
		{Name: "B", Weight: 0.3, Questions: []models.Question{{ID: "q2", Options: fourOptions()}}},
	}}

	// Weights summing to 0.8 warn but do not reject
	if err := Validate(def); err != nil {
		t.Errorf("uneven weights should be tolerated, got: %v", err)
	}
}
