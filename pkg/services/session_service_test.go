package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/storage"
)

func newTestSessionService(t *testing.T) (*SessionService, *QuizService) {
	t.Helper()
	quizzes, store := newTestQuizService(t)
	sessions := NewSessionService(store, quizzes, time.Hour).WithShuffler(identity)
	return sessions, quizzes
}

func TestSessionServicePlayThrough(t *testing.T) {
	sessions, quizzes := newTestSessionService(t)
	quiz, err := quizzes.CreateQuiz(sampleQuiz("Math", sampleQuestion("Primera", 0), sampleQuestion("Segunda", 1)))
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	before, _ := quizzes.GetAllQuizzes()

	session, err := sessions.CreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := sessions.SelectQuiz(session.ID, quiz.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	started, err := sessions.StartSession(session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != models.SessionInProgress || started.CurrentQuestion.Title != "Primera" {
		t.Fatalf("unexpected started session: %+v", started)
	}

	_, outcome, err := sessions.SubmitAnswer(session.ID, 0)
	if err != nil || !outcome.Correct {
		t.Fatalf("expected correct answer, got %+v err=%v", outcome, err)
	}
	if _, advanced, err := sessions.NextQuestion(session.ID); err != nil || !advanced {
		t.Fatalf("expected advance, got %v err=%v", advanced, err)
	}
	final, outcome, err := sessions.SubmitAnswer(session.ID, 0)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !outcome.IsEnded || final.Score().Correct != 1 || final.Score().Total != 2 {
		t.Fatalf("expected ended with 1/2, got %+v score=%+v", outcome, final.Score())
	}

	stored, err := sessions.GetSession(session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.IsEnded || stored.CorrectAnswers != 1 {
		t.Fatalf("expected persisted progress, got %+v", stored)
	}

	ended, err := sessions.EndSession(session.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Status != models.SessionEnded {
		t.Fatalf("expected ended status, got %s", ended.Status)
	}

	after, _ := quizzes.GetAllQuizzes()
	if !reflect.DeepEqual(before, after) {
		t.Fatal("expected play path never to modify quizzes")
	}
}

func TestSessionServiceNotFound(t *testing.T) {
	sessions, _ := newTestSessionService(t)

	if _, err := sessions.GetSession("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found session, got %v", err)
	}

	session, _ := sessions.CreateSession()
	if _, err := sessions.SelectQuiz(session.ID, "missing-quiz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found quiz, got %v", err)
	}
}

func TestSessionServiceRejectedTransitionIsNotSaved(t *testing.T) {
	sessions, quizzes := newTestSessionService(t)
	quiz, _ := quizzes.CreateQuiz(sampleQuiz("Math"))
	session, _ := sessions.CreateSession()
	sessions.SelectQuiz(session.ID, quiz.ID)
	sessions.StartSession(session.ID)

	if _, _, err := sessions.SubmitAnswer(session.ID, 9); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	stored, _ := sessions.GetSession(session.ID)
	if stored.SelectedOption != nil {
		t.Fatal("expected failed answer not to be persisted")
	}

	if _, err := sessions.StartSession(session.ID); !errors.Is(err, ErrSessionStarted) {
		t.Fatalf("expected ErrSessionStarted, got %v", err)
	}
}

func TestStartSessionWithoutQuiz(t *testing.T) {
	sessions, _ := newTestSessionService(t)
	session, _ := sessions.CreateSession()

	started, err := sessions.StartSession(session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != models.SessionNotStarted {
		t.Fatalf("expected no-op start, got %s", started.Status)
	}
}

// ttlStore registra el TTL usado en cada escritura
type ttlStore struct {
	*storage.MemoryStore
	ttls map[string]time.Duration
}

func (s *ttlStore) Set(key string, value any, ttl time.Duration) error {
	s.ttls[key] = ttl
	return s.MemoryStore.Set(key, value, ttl)
}

func TestSessionsAreSavedWithTTL(t *testing.T) {
	store := &ttlStore{MemoryStore: storage.NewMemoryStore(storage.DefaultNamespace), ttls: map[string]time.Duration{}}
	quizzes := NewQuizService(store)
	sessions := NewSessionService(store, quizzes, 30*time.Minute)

	if _, err := quizzes.CreateQuiz(sampleQuiz("Math", sampleQuestion("Primera", 0))); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	session, err := sessions.CreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if ttl := store.ttls[sessionKey(session.ID)]; ttl != 30*time.Minute {
		t.Fatalf("expected session ttl 30m, got %s", ttl)
	}
	if ttl := store.ttls[quizKey]; ttl != 0 {
		t.Fatalf("expected quizzes without expiry, got %s", ttl)
	}
}
