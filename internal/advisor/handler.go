package advisor

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kgob/backend/internal/assessment"
	"github.com/kgob/backend/internal/models"
	"github.com/kgob/backend/internal/wealthgap"
)

type Handler struct {
	service     *Service
	assessments *assessment.Service
}

func NewHandler(service *Service, assessments *assessment.Service) *Handler {
	return &Handler{service: service, assessments: assessments}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// Recommendations generates advisor guidance for an assessment session.
// The session must have at least one answered question; wealth gap
// figures are recomputed from the request when provided.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	var result *models.AssessmentResult
	switch {
	case req.SessionID != "":
		res, err := h.assessments.SessionResult(req.SessionID, userID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
			return
		}
		if res.QuestionsAnswered == 0 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Answer at least one question before requesting recommendations"})
			return
		}
		result = res
	case req.AssessmentKey != "":
		res, err := h.assessments.LatestResult(userID, req.AssessmentKey)
		if err != nil {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No saved result for that assessment"})
			return
		}
		result = res
	default:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "session_id or assessment_key is required"})
		return
	}

	var gap *models.WealthGapResult
	if req.IncludeWealthGap && req.WealthGap != nil {
		computed := wealthgap.Compute(wealthgap.ParseInputs(*req.WealthGap))
		gap = &computed
	}

	recs, err := h.service.GenerateRecommendations(r.Context(), result, gap)
	if err != nil {
		log.Printf("WARN: recommendation generation failed for user %d (model %s): %v",
			userID, h.service.ModelName(), err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Advisor is temporarily unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}
