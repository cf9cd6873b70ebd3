package assessment

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kgob/backend/internal/models"
)

// Session is one user's in-flight pass through an assessment: the
// answer map plus the navigation position. It lives only in memory;
// nothing is persisted until the session reaches results.
//
// The same session can be hit by overlapping requests (double-click,
// parallel tabs), so all state behind mu is read and written only
// under the lock.
type Session struct {
	ID         string
	UserID     int64
	Assessment *models.Assessment

	mu             sync.Mutex
	answers        map[string]models.Option
	categoryIndex  int
	showingResults bool
	updatedAt      time.Time

	StartedAt time.Time
}

func newSession(userID int64, a *models.Assessment) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Assessment: a,
		answers:    make(map[string]models.Option),
		StartedAt:  now,
		updatedAt:  now,
	}
}

// Answer records the selected option for a question. Selecting a new
// option for an already-answered question overwrites the previous
// choice; answering never un-answers.
func (s *Session) Answer(questionID string, optionIndex int) error {
	q, ok := s.findQuestion(questionID)
	if !ok {
		return fmt.Errorf("unknown question id %q", questionID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("option index %d out of range for question %q", optionIndex, questionID)
	}

	s.mu.Lock()
	s.answers[questionID] = q.Options[optionIndex]
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
	return nil
}

func (s *Session) findQuestion(questionID string) (models.Question, bool) {
	for _, cat := range s.Assessment.Categories {
		for _, q := range cat.Questions {
			if q.ID == questionID {
				return q, true
			}
		}
	}
	return models.Question{}, false
}

// CategoryComplete reports whether every question in the current
// category has been answered.
func (s *Session) CategoryComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryComplete()
}

func (s *Session) categoryComplete() bool {
	if s.showingResults {
		return true
	}
	for _, q := range s.Assessment.Categories[s.categoryIndex].Questions {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Next advances to the following category, or to results from the last
// one. The transition is gated on the current category being complete;
// a gated call is a no-op and returns false so the UI can disable the
// action rather than show an error.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showingResults || !s.categoryComplete() {
		return false
	}
	if s.categoryIndex < len(s.Assessment.Categories)-1 {
		s.categoryIndex++
	} else {
		s.showingResults = true
	}
	s.updatedAt = time.Now().UTC()
	return true
}

// Previous steps back one category. Revisiting earlier categories is
// always allowed; there is no completeness guard.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showingResults || s.categoryIndex == 0 {
		return false
	}
	s.categoryIndex--
	s.updatedAt = time.Now().UTC()
	return true
}

// Retake clears every answer and returns to the first category.
func (s *Session) Retake() {
	s.mu.Lock()
	s.answers = make(map[string]models.Option)
	s.categoryIndex = 0
	s.showingResults = false
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
}

// Progress is the position reached as a percentage of categories, not
// the fraction of questions answered. Per-category granularity keeps
// the bar from jittering while the user answers within a category.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

func (s *Session) progress() int {
	if s.showingResults {
		return 100
	}
	total := len(s.Assessment.Categories)
	return int(math.Round(float64(s.categoryIndex+1) / float64(total) * 100))
}

func (s *Session) CategoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryIndex
}

func (s *Session) ShowingResults() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showingResults
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Answers returns a copy of the answer map. The live map never leaves
// the lock.
func (s *Session) Answers() map[string]models.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]models.Option, len(s.answers))
	for id, opt := range s.answers {
		copied[id] = opt
	}
	return copied
}

// AnsweredIDs lists answered question ids in definition order.
func (s *Session) AnsweredIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answeredIDs()
}

func (s *Session) answeredIDs() []string {
	ids := make([]string, 0, len(s.answers))
	for _, cat := range s.Assessment.Categories {
		for _, q := range cat.Questions {
			if _, ok := s.answers[q.ID]; ok {
				ids = append(ids, q.ID)
			}
		}
	}
	return ids
}

// Result recomputes the derived result from the current answers.
func (s *Session) Result() *models.AssessmentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Result(s.Assessment, s.answers)
}

// snapshotResponse builds the wire representation under a single hold
// of the lock so position, completeness, and answers are consistent.
func (s *Session) snapshotResponse(includeResult bool) models.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.SessionResponse{
		SessionID:      s.ID,
		AssessmentKey:  s.Assessment.Key,
		CategoryIndex:  s.categoryIndex,
		ShowingResults: s.showingResults,
		Progress:       s.progress(),
		CategoryReady:  s.categoryComplete(),
		AnsweredIDs:    s.answeredIDs(),
	}
	if !s.showingResults {
		resp.CategoryName = s.Assessment.Categories[s.categoryIndex].Name
	}
	if includeResult {
		resp.RunningResult = Result(s.Assessment, s.answers)
	}
	return resp
}

// ── Manager ──────────────────────────────────────────────

// Manager owns the in-memory session table. The table lock covers
// insert and lookup; each session carries its own lock for state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Start(userID int64, a *models.Assessment) *Session {
	s := newSession(userID, a)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session when it exists and belongs to the user.
func (m *Manager) Get(sessionID string, userID int64) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok || s.UserID != userID {
		return nil, false
	}
	return s, true
}

func (m *Manager) Delete(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
