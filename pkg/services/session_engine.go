package services

import (
	"math/rand/v2"

	"github.com/backsoul/gogoquiz/pkg/models"
)

// Shuffler permuta n elementos usando swap. Compatible con rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// DefaultShuffler Fisher-Yates uniforme de math/rand/v2
var DefaultShuffler Shuffler = rand.Shuffle

// QuizSession máquina de estados de una partida:
// not_started -> in_progress -> ended. ended es terminal.
type QuizSession struct {
	ID                 string               `json:"id"`
	Status             models.SessionStatus `json:"status"`
	Quiz               *models.Quiz         `json:"quiz,omitempty"`
	RemainingQuestions []models.Question    `json:"remainingQuestions"`
	CurrentQuestion    *models.Question     `json:"currentQuestion,omitempty"`
	SelectedOption     *models.Option       `json:"selectedOption,omitempty"`
	SelectedIndex      *int                 `json:"selectedIndex,omitempty"`
	TotalQuestions     int                  `json:"totalQuestions"`
	CorrectAnswers     int                  `json:"correctAnswers"`
	IsEnded            bool                 `json:"isEnded"`
}

// AnswerOutcome resultado de responder la pregunta actual
type AnswerOutcome struct {
	Applied bool `json:"applied"`
	Correct bool `json:"correct"`
	IsEnded bool `json:"isEnded"`
}

// NewQuizSession crea una sesión vacía sin quiz elegido
func NewQuizSession(id string) *QuizSession {
	return &QuizSession{
		ID:                 id,
		Status:             models.SessionNotStarted,
		RemainingQuestions: []models.Question{},
	}
}

// Select elige el quiz candidato. No inicia la partida.
func (s *QuizSession) Select(quiz models.Quiz) error {
	if err := s.requireNotStarted(); err != nil {
		return err
	}
	selected := quiz.Clone()
	s.Quiz = &selected
	return nil
}

// Start baraja las preguntas y presenta la primera.
// Sin quiz elegido no hace nada.
func (s *QuizSession) Start(shuffle Shuffler) error {
	if err := s.requireNotStarted(); err != nil {
		return err
	}
	if s.Quiz == nil {
		return nil
	}
	if shuffle == nil {
		shuffle = DefaultShuffler
	}

	questions := make([]models.Question, len(s.Quiz.Questions))
	for i, q := range s.Quiz.Questions {
		questions[i] = q.Clone()
	}
	shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	s.Status = models.SessionInProgress
	s.TotalQuestions = len(questions)
	s.CorrectAnswers = 0
	s.clearSelection()
	s.IsEnded = false

	if len(questions) == 0 {
		s.CurrentQuestion = nil
		s.RemainingQuestions = []models.Question{}
		s.IsEnded = true
		return nil
	}

	first := questions[0]
	s.CurrentQuestion = &first
	s.RemainingQuestions = questions[1:]
	return nil
}

// Answer registra la opción elegida para la pregunta actual.
// Solo se puede responder una vez por pregunta; los intentos siguientes se ignoran.
func (s *QuizSession) Answer(optionIndex int) (AnswerOutcome, error) {
	if s.Status == models.SessionEnded {
		return AnswerOutcome{}, ErrSessionEnded
	}
	if s.Status != models.SessionInProgress || s.CurrentQuestion == nil {
		return AnswerOutcome{IsEnded: s.IsEnded}, nil
	}
	if s.SelectedOption != nil {
		return AnswerOutcome{IsEnded: s.IsEnded}, nil
	}
	if optionIndex < 0 || optionIndex >= len(s.CurrentQuestion.Options) {
		return AnswerOutcome{}, ErrInvalidOption
	}

	option := s.CurrentQuestion.Options[optionIndex]
	idx := optionIndex
	s.SelectedOption = &option
	s.SelectedIndex = &idx

	correct := optionIndex == s.CurrentQuestion.CorrectOption
	if correct {
		s.CorrectAnswers++
	}
	if len(s.RemainingQuestions) == 0 {
		s.IsEnded = true
	}

	return AnswerOutcome{Applied: true, Correct: correct, IsEnded: s.IsEnded}, nil
}

// Advance pasa a la siguiente pregunta. Devuelve false si no quedan preguntas.
func (s *QuizSession) Advance() (bool, error) {
	if s.Status == models.SessionEnded {
		return false, ErrSessionEnded
	}
	if s.Status != models.SessionInProgress || len(s.RemainingQuestions) == 0 {
		return false, nil
	}

	next := s.RemainingQuestions[0]
	s.CurrentQuestion = &next
	s.RemainingQuestions = s.RemainingQuestions[1:]
	s.clearSelection()
	return true, nil
}

// End descarta todos los datos de la partida. Una sesión terminada no se reutiliza.
func (s *QuizSession) End() {
	s.Quiz = nil
	s.RemainingQuestions = []models.Question{}
	s.CurrentQuestion = nil
	s.clearSelection()
	s.TotalQuestions = 0
	s.CorrectAnswers = 0
	s.IsEnded = false
	s.Status = models.SessionEnded
}

// Score puntaje parcial o final
func (s *QuizSession) Score() models.Score {
	return models.Score{
		Correct: s.CorrectAnswers,
		Total:   s.TotalQuestions,
		Perfect: s.TotalQuestions > 0 && s.CorrectAnswers == s.TotalQuestions,
	}
}

func (s *QuizSession) requireNotStarted() error {
	switch s.Status {
	case models.SessionInProgress:
		return ErrSessionStarted
	case models.SessionEnded:
		return ErrSessionEnded
	}
	return nil
}

func (s *QuizSession) clearSelection() {
	s.SelectedOption = nil
	s.SelectedIndex = nil
}
