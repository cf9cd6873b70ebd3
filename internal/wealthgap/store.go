package wealthgap

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kgob/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveSnapshot(userID int64, inputs models.WealthGapInputs, result models.WealthGapResult) (*models.WealthGapSnapshot, error) {
	rawInputs, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("marshal inputs: %w", err)
	}
	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	snap := models.WealthGapSnapshot{UserID: userID, Inputs: inputs, Result: result}
	err = s.db.QueryRow(
		`INSERT INTO wealth_gap_snapshots (user_id, inputs, result)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, rawInputs, rawResult,
	).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Store) ListSnapshots(userID int64, limit, offset int) ([]models.WealthGapSnapshot, int, error) {
	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM wealth_gap_snapshots WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count snapshots: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, inputs, result, created_at
		 FROM wealth_gap_snapshots
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []models.WealthGapSnapshot
	for rows.Next() {
		var snap models.WealthGapSnapshot
		var rawInputs, rawResult []byte
		if err := rows.Scan(&snap.ID, &snap.UserID, &rawInputs, &rawResult, &snap.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal(rawInputs, &snap.Inputs); err != nil {
			return nil, 0, fmt.Errorf("unmarshal inputs: %w", err)
		}
		if err := json.Unmarshal(rawResult, &snap.Result); err != nil {
			return nil, 0, fmt.Errorf("unmarshal result: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, total, rows.Err()
}
