package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kgob/backend/internal/assessment"
	"github.com/kgob/backend/internal/models"
)

func newTestHandler(t *testing.T) (*Handler, *assessment.Service) {
	t.Helper()
	registry, err := assessment.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	assessments := assessment.NewService(registry, assessment.NewManager(), nil)
	return NewHandler(NewService(NewMockClient(), "mock"), assessments), assessments
}

func postRecommendations(h *Handler, userID int64, req models.RecommendationRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(req)
	r := httptest.NewRequest("POST", "/api/v1/advisor/recommendations", bytes.NewReader(body))
	r = r.WithContext(context.WithValue(r.Context(), "user_id", userID))
	rr := httptest.NewRecorder()
	h.Recommendations(rr, r)
	return rr
}

func TestRecommendations_FromSession(t *testing.T) {
	h, assessments := newTestHandler(t)

	sess, err := assessments.StartSession(1, models.AssessmentOwnerCentricity)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := sess.Answer("customer_relationships", 2); err != nil {
		t.Fatalf("answer: %v", err)
	}

	rr := postRecommendations(h, 1, models.RecommendationRequest{SessionID: sess.ID})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var recs models.Recommendations
	if err := json.NewDecoder(rr.Body).Decode(&recs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if recs.ModelUsed != "mock" {
		t.Errorf("expected model_used mock, got %q", recs.ModelUsed)
	}
	if recs.Summary == "" || len(recs.Priorities) == 0 {
		t.Error("expected a populated recommendation payload")
	}
}

func TestRecommendations_EmptySessionRejected(t *testing.T) {
	h, assessments := newTestHandler(t)

	sess, err := assessments.StartSession(1, models.AssessmentOwnerCentricity)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	rr := postRecommendations(h, 1, models.RecommendationRequest{SessionID: sess.ID})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("session with no answers: expected 400, got %d", rr.Code)
	}
}

func TestRecommendations_RequiresSource(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := postRecommendations(h, 1, models.RecommendationRequest{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("no session or assessment key: expected 400, got %d", rr.Code)
	}
}

func TestRecommendations_WrongUser(t *testing.T) {
	h, assessments := newTestHandler(t)

	sess, err := assessments.StartSession(1, models.AssessmentOwnerCentricity)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	rr := postRecommendations(h, 2, models.RecommendationRequest{SessionID: sess.ID})

	if rr.Code != http.StatusNotFound {
		t.Errorf("another user's session: expected 404, got %d", rr.Code)
	}
}

func TestServiceModelName(t *testing.T) {
	svc := NewService(NewMockClient(), "mock")
	if svc.ModelName() != "mock" {
		t.Errorf("expected model name mock, got %q", svc.ModelName())
	}
}
