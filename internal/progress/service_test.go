package progress

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kgob/backend/internal/models"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewService(NewStore(db)), mock, func() { db.Close() }
}

func TestGetProgress_Empty(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT phase, completed_at FROM user_phase_progress`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"phase", "completed_at"}))

	resp, err := svc.GetProgress(3)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}

	if resp.TotalPhases != 5 {
		t.Errorf("expected 5 phases, got %d", resp.TotalPhases)
	}
	if resp.CompletedPhases != 0 || resp.ProgressPct != 0 {
		t.Errorf("fresh user should be at zero, got %d done (%d%%)", resp.CompletedPhases, resp.ProgressPct)
	}
	for _, pc := range resp.Phases {
		if pc.Completed {
			t.Errorf("phase %s unexpectedly complete", pc.Phase)
		}
	}
}

func TestGetProgress_PartiallyComplete(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT phase, completed_at FROM user_phase_progress`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"phase", "completed_at"}).
			AddRow("owner_centricity", now).
			AddRow("financial_calculators", now))

	resp, err := svc.GetProgress(3)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}

	if resp.CompletedPhases != 2 {
		t.Errorf("expected 2 completed phases, got %d", resp.CompletedPhases)
	}
	if resp.ProgressPct != 40 {
		t.Errorf("2 of 5 phases: expected 40%%, got %d%%", resp.ProgressPct)
	}

	// Response follows journey order regardless of row order
	if resp.Phases[0].Phase != models.PhaseBusinessBaseline {
		t.Errorf("expected first phase %s, got %s", models.PhaseBusinessBaseline, resp.Phases[0].Phase)
	}
	if !resp.Phases[1].Completed || resp.Phases[1].CompletedAt == nil {
		t.Error("financial_calculators should be complete with a timestamp")
	}
}

func TestCompletePhase(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO user_phase_progress`).
		WithArgs(int64(3), models.PhasePersonalVision).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := svc.CompletePhase(3, models.PhasePersonalVision); err != nil {
		t.Fatalf("complete phase: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
