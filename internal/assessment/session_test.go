package assessment

import (
	"sync"
	"testing"

	"github.com/kgob/backend/internal/models"
)

func startTestSession(t *testing.T) *Session {
	t.Helper()
	return NewManager().Start(1, testAssessment())
}

func answerCategory(t *testing.T, s *Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := s.Answer(id, 2); err != nil {
			t.Fatalf("answer %s: %v", id, err)
		}
	}
}

func TestSession_AnswerValidation(t *testing.T) {
	s := startTestSession(t)

	if err := s.Answer("nope", 0); err == nil {
		t.Error("expected error for unknown question id")
	}
	if err := s.Answer("a1", 4); err == nil {
		t.Error("expected error for out-of-range option index")
	}
	if err := s.Answer("a1", -1); err == nil {
		t.Error("expected error for negative option index")
	}
	if err := s.Answer("a1", 3); err != nil {
		t.Errorf("valid answer rejected: %v", err)
	}
}

func TestSession_AnswerOverwrites(t *testing.T) {
	s := startTestSession(t)

	s.Answer("a1", 0)
	s.Answer("a1", 3)

	if got := s.Answers()["a1"].Score; got != 4 {
		t.Errorf("expected re-answer to overwrite, got score %d", got)
	}
	if n := len(s.AnsweredIDs()); n != 1 {
		t.Errorf("expected 1 answered question, got %d", n)
	}
}

func TestSession_NextGatedOnCompleteness(t *testing.T) {
	s := startTestSession(t)

	if s.Next() {
		t.Error("Next on an empty category should be a no-op")
	}
	if s.CategoryIndex() != 0 {
		t.Errorf("gated Next should not move, at index %d", s.CategoryIndex())
	}

	answerCategory(t, s, "a1")
	if s.Next() {
		t.Error("Next with a partially answered category should be a no-op")
	}

	answerCategory(t, s, "a2")
	if !s.Next() {
		t.Error("Next on a complete category should advance")
	}
	if s.CategoryIndex() != 1 {
		t.Errorf("expected index 1, got %d", s.CategoryIndex())
	}
}

func TestSession_NextFromLastCategoryShowsResults(t *testing.T) {
	s := startTestSession(t)
	answerCategory(t, s, "a1", "a2")
	s.Next()
	answerCategory(t, s, "b1")

	if !s.Next() {
		t.Fatal("expected advance into results")
	}
	if !s.ShowingResults() {
		t.Error("expected session to be showing results")
	}
	if s.Progress() != 100 {
		t.Errorf("expected progress 100 at results, got %d", s.Progress())
	}
	if s.Next() {
		t.Error("Next at results should be a no-op")
	}
	if s.Previous() {
		t.Error("Previous at results should be a no-op")
	}
}

func TestSession_PreviousUngated(t *testing.T) {
	s := startTestSession(t)

	if s.Previous() {
		t.Error("Previous at the first category should be a no-op")
	}

	answerCategory(t, s, "a1", "a2")
	s.Next()

	// Going back requires no completeness, and works immediately
	if !s.Previous() {
		t.Error("expected Previous to step back")
	}
	if s.CategoryIndex() != 0 {
		t.Errorf("expected index 0, got %d", s.CategoryIndex())
	}
}

func TestSession_Progress(t *testing.T) {
	s := startTestSession(t)

	// 2 categories: position 1 of 2 = 50%
	if got := s.Progress(); got != 50 {
		t.Errorf("expected 50 at first category, got %d", got)
	}

	answerCategory(t, s, "a1", "a2")
	s.Next()
	if got := s.Progress(); got != 100 {
		t.Errorf("expected 100 at last category, got %d", got)
	}
}

func TestSession_Retake(t *testing.T) {
	s := startTestSession(t)
	answerCategory(t, s, "a1", "a2")
	s.Next()
	answerCategory(t, s, "b1")
	s.Next()

	s.Retake()

	if s.ShowingResults() {
		t.Error("retake should leave results view")
	}
	if s.CategoryIndex() != 0 {
		t.Errorf("retake should return to first category, at %d", s.CategoryIndex())
	}
	if len(s.Answers()) != 0 {
		t.Errorf("retake should clear answers, %d remain", len(s.Answers()))
	}
	if s.Result().QuestionsAnswered != 0 {
		t.Error("result after retake should show no answered questions")
	}
}

// Overlapping requests hit the same session (double-click, parallel
// tabs). Run with -race: answering, scoring, and navigating from
// separate goroutines must not race on the session state.
func TestSession_ConcurrentAccess(t *testing.T) {
	s := startTestSession(t)

	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			s.Answer("a1", i%4)
			s.Answer("a2", i%4)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = s.Result()
			_ = s.AnsweredIDs()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = SessionResponse(s, true)
			s.Next()
			s.Previous()
		}
	}()

	wg.Wait()

	answers := s.Answers()
	if got := answers["a1"].Score; got < 1 || got > 4 {
		t.Errorf("answer for a1 corrupted: score %d", got)
	}
	if s.Result().QuestionsAnswered != 2 {
		t.Errorf("expected 2 answered questions, got %d", s.Result().QuestionsAnswered)
	}
}

func TestSession_AnswersReturnsCopy(t *testing.T) {
	s := startTestSession(t)
	s.Answer("a1", 3)

	answers := s.Answers()
	answers["a1"] = models.Option{Score: 1}
	delete(answers, "a1")

	if got := s.Answers()["a1"].Score; got != 4 {
		t.Errorf("mutating the returned map must not touch the session, got score %d", got)
	}
}

func TestManager_OwnershipCheck(t *testing.T) {
	m := NewManager()
	s := m.Start(1, testAssessment())

	if _, ok := m.Get(s.ID, 1); !ok {
		t.Error("owner should retrieve their session")
	}
	if _, ok := m.Get(s.ID, 2); ok {
		t.Error("another user must not retrieve the session")
	}
	if _, ok := m.Get("missing", 1); ok {
		t.Error("unknown session id should not resolve")
	}

	m.Delete(s.ID)
	if _, ok := m.Get(s.ID, 1); ok {
		t.Error("deleted session should not resolve")
	}
}

func TestSessionResponse_Shape(t *testing.T) {
	s := startTestSession(t)
	answerCategory(t, s, "a1")

	resp := SessionResponse(s, true)

	if resp.SessionID != s.ID {
		t.Errorf("session id mismatch: %s vs %s", resp.SessionID, s.ID)
	}
	if resp.AssessmentKey != models.AssessmentKey("test-assessment") {
		t.Errorf("unexpected assessment key %s", resp.AssessmentKey)
	}
	if resp.CategoryName != "Alpha" {
		t.Errorf("expected category name Alpha, got %q", resp.CategoryName)
	}
	if resp.CategoryReady {
		t.Error("category should not be ready with one of two questions answered")
	}
	if resp.RunningResult == nil {
		t.Error("expected running result when requested")
	}
}
