package progress

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kgob/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// MarkComplete records a phase as done. Upsert keeps the first
// completion time when the phase is marked again.
func (s *Store) MarkComplete(userID int64, phase models.ExitPhase) error {
	_, err := s.db.Exec(
		`INSERT INTO user_phase_progress (user_id, phase, completed_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, phase) DO NOTHING`,
		userID, phase,
	)
	if err != nil {
		return fmt.Errorf("mark phase complete: %w", err)
	}
	return nil
}

// CompletedPhases returns the completion time per finished phase.
func (s *Store) CompletedPhases(userID int64) (map[models.ExitPhase]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT phase, completed_at FROM user_phase_progress WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load phase progress: %w", err)
	}
	defer rows.Close()

	completed := make(map[models.ExitPhase]time.Time)
	for rows.Next() {
		var phase models.ExitPhase
		var at time.Time
		if err := rows.Scan(&phase, &at); err != nil {
			return nil, fmt.Errorf("scan phase progress: %w", err)
		}
		completed[phase] = at
	}
	return completed, rows.Err()
}
