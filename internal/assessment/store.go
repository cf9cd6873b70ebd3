package assessment

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kgob/backend/internal/models"
)

// Store persists completed assessment results. Open sessions never
// touch the database; only the final result object crosses this
// boundary.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveResult(userID int64, result *models.AssessmentResult) (*models.SavedResult, error) {
	perCategory, err := json.Marshal(result.PerCategoryScore)
	if err != nil {
		return nil, fmt.Errorf("marshal category scores: %w", err)
	}

	var saved models.SavedResult
	var rawScores []byte
	err = s.db.QueryRow(
		`INSERT INTO assessment_results (user_id, assessment_key, per_category_score, final_score, tier)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, assessment_key, per_category_score, final_score, tier, completed_at`,
		userID, result.AssessmentKey, perCategory, result.FinalScore, result.Interpretation.Tier,
	).Scan(&saved.ID, &saved.UserID, &saved.AssessmentKey, &rawScores,
		&saved.FinalScore, &saved.Tier, &saved.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	if err := json.Unmarshal(rawScores, &saved.PerCategoryScore); err != nil {
		return nil, fmt.Errorf("unmarshal category scores: %w", err)
	}
	return &saved, nil
}

func (s *Store) ListResults(userID int64, limit, offset int) ([]models.SavedResult, int, error) {
	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM assessment_results WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, assessment_key, per_category_score, final_score, tier, completed_at
		 FROM assessment_results
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []models.SavedResult
	for rows.Next() {
		var r models.SavedResult
		var rawScores []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.AssessmentKey, &rawScores,
			&r.FinalScore, &r.Tier, &r.CompletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal(rawScores, &r.PerCategoryScore); err != nil {
			return nil, 0, fmt.Errorf("unmarshal category scores: %w", err)
		}
		results = append(results, r)
	}
	return results, total, rows.Err()
}

// LatestResult returns the caller's most recent saved result for one
// assessment, or sql.ErrNoRows when none exists.
func (s *Store) LatestResult(userID int64, key models.AssessmentKey) (*models.SavedResult, error) {
	var r models.SavedResult
	var rawScores []byte
	err := s.db.QueryRow(
		`SELECT id, user_id, assessment_key, per_category_score, final_score, tier, completed_at
		 FROM assessment_results
		 WHERE user_id = $1 AND assessment_key = $2
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		userID, key,
	).Scan(&r.ID, &r.UserID, &r.AssessmentKey, &rawScores, &r.FinalScore, &r.Tier, &r.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawScores, &r.PerCategoryScore); err != nil {
		return nil, fmt.Errorf("unmarshal category scores: %w", err)
	}
	return &r, nil
}
