package services

import (
	"log"
	"sync"
	"time"

	"github.com/backsoul/gogoquiz/pkg/storage"
	"github.com/google/uuid"
)

// SessionService maneja las sesiones de juego. Lee quizzes pero nunca los modifica.
type SessionService struct {
	store       storage.Store
	quizService *QuizService
	ttl         time.Duration
	shuffle     Shuffler
	newID       func() string

	mu sync.Mutex
}

// NewSessionService crea una nueva instancia del servicio de sesiones
func NewSessionService(store storage.Store, quizService *QuizService, ttl time.Duration) *SessionService {
	return &SessionService{
		store:       store,
		quizService: quizService,
		ttl:         ttl,
		shuffle:     DefaultShuffler,
		newID:       uuid.NewString,
	}
}

// WithShuffler reemplaza la fuente de aleatoriedad (tests)
func (s *SessionService) WithShuffler(shuffle Shuffler) *SessionService {
	s.shuffle = shuffle
	return s
}

// CreateSession crea una sesión nueva sin quiz elegido
func (s *SessionService) CreateSession() (*QuizSession, error) {
	session := NewQuizSession(s.newID())
	if err := s.saveSession(session); err != nil {
		return nil, err
	}

	log.Printf("✅ Nueva sesión creada (ID: %s)", session.ID)
	return session, nil
}

// GetSession obtiene una sesión por ID
func (s *SessionService) GetSession(sessionID string) (*QuizSession, error) {
	var session QuizSession
	found, err := s.store.Get(sessionKey(sessionID), &session)
	if err != nil {
		return nil, &PersistenceError{Op: "read session", Err: err}
	}
	if !found {
		return nil, &NotFoundError{Kind: "sesión", ID: sessionID}
	}
	return &session, nil
}

// SelectQuiz elige el quiz que se jugará en la sesión
func (s *SessionService) SelectQuiz(sessionID, quizID string) (*QuizSession, error) {
	quiz, err := s.quizService.GetQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	return s.update(sessionID, func(session *QuizSession) error {
		return session.Select(*quiz)
	})
}

// StartSession inicia la partida con el quiz elegido
func (s *SessionService) StartSession(sessionID string) (*QuizSession, error) {
	session, err := s.update(sessionID, func(session *QuizSession) error {
		return session.Start(s.shuffle)
	})
	if err != nil {
		return nil, err
	}

	if session.Quiz != nil {
		log.Printf("🎮 Sesión %s iniciada con el quiz %s (%d preguntas)", sessionID, session.Quiz.Title, session.TotalQuestions)
	}
	return session, nil
}

// SubmitAnswer responde la pregunta actual
func (s *SessionService) SubmitAnswer(sessionID string, optionIndex int) (*QuizSession, AnswerOutcome, error) {
	var outcome AnswerOutcome
	session, err := s.update(sessionID, func(session *QuizSession) error {
		var err error
		outcome, err = session.Answer(optionIndex)
		return err
	})
	if err != nil {
		return nil, AnswerOutcome{}, err
	}

	if outcome.IsEnded && outcome.Applied {
		score := session.Score()
		log.Printf("🏁 Sesión %s completada: %d de %d correctas", sessionID, score.Correct, score.Total)
	}
	return session, outcome, nil
}

// NextQuestion avanza a la siguiente pregunta
func (s *SessionService) NextQuestion(sessionID string) (*QuizSession, bool, error) {
	var advanced bool
	session, err := s.update(sessionID, func(session *QuizSession) error {
		var err error
		advanced, err = session.Advance()
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return session, advanced, nil
}

// EndSession termina la sesión y descarta sus datos
func (s *SessionService) EndSession(sessionID string) (*QuizSession, error) {
	session, err := s.update(sessionID, func(session *QuizSession) error {
		session.End()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🔴 Sesión %s terminada", sessionID)
	return session, nil
}

// update carga la sesión, aplica fn y la guarda solo si fn no falla
func (s *SessionService) update(sessionID string, fn func(*QuizSession) error) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) saveSession(session *QuizSession) error {
	if err := s.store.Set(sessionKey(session.ID), session, s.ttl); err != nil {
		return &PersistenceError{Op: "save session", Err: err}
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}
