package progress

import (
	"math"

	"github.com/kgob/backend/internal/models"
)

// Service tracks a user's position in the five-phase exit-planning
// journey. Phases complete independently; there is no gating between
// them, the journey just reports how far along the user is.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) CompletePhase(userID int64, phase models.ExitPhase) error {
	return s.store.MarkComplete(userID, phase)
}

func (s *Service) GetProgress(userID int64) (*models.ProgressResponse, error) {
	completed, err := s.store.CompletedPhases(userID)
	if err != nil {
		return nil, err
	}

	phases := make([]models.PhaseCompletion, 0, len(models.ExitPhaseOrder))
	done := 0
	for _, phase := range models.ExitPhaseOrder {
		pc := models.PhaseCompletion{Phase: phase}
		if at, ok := completed[phase]; ok {
			t := at
			pc.Completed = true
			pc.CompletedAt = &t
			done++
		}
		phases = append(phases, pc)
	}

	total := len(models.ExitPhaseOrder)
	return &models.ProgressResponse{
		Phases:          phases,
		CompletedPhases: done,
		TotalPhases:     total,
		ProgressPct:     int(math.Round(float64(done) / float64(total) * 100)),
	}, nil
}
