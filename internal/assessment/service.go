package assessment

import (
	"fmt"
	"log"

	"github.com/kgob/backend/internal/models"
	"github.com/kgob/backend/internal/progress"
)

// Service orchestrates sessions over the definition registry and hands
// completed results to the store. Scoring itself stays in the pure
// functions; the service only wires state to collaborators.
type Service struct {
	registry    *Registry
	manager     *Manager
	store       *Store
	progressSvc *progress.Service
}

func NewService(registry *Registry, manager *Manager, store *Store) *Service {
	return &Service{registry: registry, manager: manager, store: store}
}

// SetProgressService injects phase tracking so completing an assessment
// marks its exit-planning phase.
func (s *Service) SetProgressService(ps *progress.Service) {
	s.progressSvc = ps
}

func (s *Service) ListAssessments() []models.AssessmentSummary {
	return s.registry.List()
}

func (s *Service) GetAssessment(key models.AssessmentKey) (*models.Assessment, bool) {
	return s.registry.Get(key)
}

func (s *Service) StartSession(userID int64, key models.AssessmentKey) (*Session, error) {
	a, ok := s.registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("unknown assessment %q", key)
	}
	return s.manager.Start(userID, a), nil
}

func (s *Service) GetSession(sessionID string, userID int64) (*Session, bool) {
	return s.manager.Get(sessionID, userID)
}

func (s *Service) SubmitAnswer(sessionID string, userID int64, req models.SelectAnswerRequest) (*Session, error) {
	sess, ok := s.manager.Get(sessionID, userID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	if err := sess.Answer(req.QuestionID, req.OptionIndex); err != nil {
		return nil, err
	}
	return sess, nil
}

// Advance runs the gated next() transition. When the session crosses
// into results the final result is computed once and persisted
// fire-and-forget; a save failure is logged, never surfaced to the
// user mid-flow.
func (s *Service) Advance(sessionID string, userID int64) (*Session, bool, *models.AssessmentResult, error) {
	sess, ok := s.manager.Get(sessionID, userID)
	if !ok {
		return nil, false, nil, fmt.Errorf("session not found")
	}

	advanced := sess.Next()
	if !advanced {
		return sess, false, nil, nil
	}

	if !sess.ShowingResults() {
		return sess, true, nil, nil
	}

	result := sess.Result()
	go s.persistResult(sess.UserID, result)
	return sess, true, result, nil
}

func (s *Service) persistResult(userID int64, result *models.AssessmentResult) {
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveResult(userID, result); err != nil {
		log.Printf("WARN: failed to save %s result for user %d: %v", result.AssessmentKey, userID, err)
		return
	}
	log.Printf("[assessment] saved %s result for user %d: score=%.1f tier=%s",
		result.AssessmentKey, userID, result.FinalScore, result.Interpretation.Tier)

	if s.progressSvc != nil {
		if phase, ok := phaseForAssessment(result.AssessmentKey); ok {
			if err := s.progressSvc.CompletePhase(userID, phase); err != nil {
				log.Printf("WARN: failed to mark phase %s complete for user %d: %v", phase, userID, err)
			}
		}
	}
}

func phaseForAssessment(key models.AssessmentKey) (models.ExitPhase, bool) {
	switch key {
	case models.AssessmentOwnerCentricity:
		return models.PhaseOwnerCentricity, true
	case models.AssessmentPersonalVision:
		return models.PhasePersonalVision, true
	default:
		return "", false
	}
}

func (s *Service) GoBack(sessionID string, userID int64) (*Session, bool, error) {
	sess, ok := s.manager.Get(sessionID, userID)
	if !ok {
		return nil, false, fmt.Errorf("session not found")
	}
	return sess, sess.Previous(), nil
}

func (s *Service) Retake(sessionID string, userID int64) (*Session, error) {
	sess, ok := s.manager.Get(sessionID, userID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	sess.Retake()
	return sess, nil
}

func (s *Service) SessionResult(sessionID string, userID int64) (*models.AssessmentResult, error) {
	sess, ok := s.manager.Get(sessionID, userID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return sess.Result(), nil
}

func (s *Service) ListResults(userID int64, limit, offset int) ([]models.SavedResult, int, error) {
	return s.store.ListResults(userID, limit, offset)
}

// LatestResult rehydrates the caller's most recent saved result for one
// assessment into the derived result shape. Saved rows are always from
// completed sessions, so the rehydrated result reads as complete.
func (s *Service) LatestResult(userID int64, key models.AssessmentKey) (*models.AssessmentResult, error) {
	saved, err := s.store.LatestResult(userID, key)
	if err != nil {
		return nil, err
	}

	total := 0
	if a, ok := s.registry.Get(key); ok {
		total = a.QuestionCount()
	}

	return &models.AssessmentResult{
		AssessmentKey:     saved.AssessmentKey,
		PerCategoryScore:  saved.PerCategoryScore,
		FinalScore:        saved.FinalScore,
		Interpretation:    InterpretationForTier(saved.Tier),
		QuestionsAnswered: total,
		QuestionsTotal:    total,
		Complete:          true,
	}, nil
}

// SessionResponse builds the wire representation of a session from one
// consistent snapshot of its state.
func SessionResponse(sess *Session, includeResult bool) models.SessionResponse {
	return sess.snapshotResponse(includeResult)
}
