package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/storage"
	"github.com/google/uuid"
)

// quizKey clave que guarda la colección completa de quizzes
const quizKey = "quiz"

// QuizService maneja la lógica de negocio para los quizzes.
// Cada operación de escritura lee la colección completa, la modifica en
// memoria y la persiste con una única escritura.
type QuizService struct {
	store storage.Store
	newID func() string

	mu sync.Mutex
}

// NewQuizService crea una nueva instancia del servicio
func NewQuizService(store storage.Store) *QuizService {
	return &QuizService{
		store: store,
		newID: uuid.NewString,
	}
}

// WithIDGenerator reemplaza el generador de IDs (tests)
func (s *QuizService) WithIDGenerator(newID func() string) *QuizService {
	s.newID = newID
	return s
}

// GetAllQuizzes obtiene todos los quizzes, o una lista vacía si aún no hay ninguno
func (s *QuizService) GetAllQuizzes() ([]models.Quiz, error) {
	return s.load()
}

// GetQuizByID obtiene un quiz específico por ID
func (s *QuizService) GetQuizByID(id string) (*models.Quiz, error) {
	quizzes, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "quiz", ID: id}
}

// CreateQuiz valida y agrega un quiz nuevo. El ID recibido se descarta.
func (s *QuizService) CreateQuiz(draft models.Quiz) (*models.Quiz, error) {
	quiz := draft.Clone()
	quiz.ID = s.newID()

	if err := Validate(quiz, quiz.Questions); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.load()
	if err != nil {
		return nil, err
	}

	quizzes = append(quizzes, quiz)
	if err := s.save("create", quizzes); err != nil {
		return nil, err
	}

	log.Printf("✅ Quiz creado: %s (ID: %s)", quiz.Title, quiz.ID)
	return &quiz, nil
}

// EditQuiz reemplaza un quiz existente conservando su posición
func (s *QuizService) EditQuiz(quiz models.Quiz) (*models.Quiz, error) {
	updated := quiz.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := indexByID(quizzes, updated.ID)
	if idx < 0 {
		return nil, &NotFoundError{Kind: "quiz", ID: updated.ID}
	}

	if err := Validate(updated, updated.Questions); err != nil {
		return nil, err
	}

	quizzes[idx] = updated
	if err := s.save("edit", quizzes); err != nil {
		return nil, err
	}

	log.Printf("✏️ Quiz actualizado: %s (ID: %s)", updated.Title, updated.ID)
	return &updated, nil
}

// DeleteQuiz elimina un quiz. Eliminar un ID inexistente no es un error.
func (s *QuizService) DeleteQuiz(id string) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.load()
	if err != nil {
		return nil, err
	}

	remaining := make([]models.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.ID != id {
			remaining = append(remaining, q)
		}
	}

	if err := s.save("delete", remaining); err != nil {
		return nil, err
	}

	if len(remaining) < len(quizzes) {
		log.Printf("🗑️ Quiz eliminado (ID: %s)", id)
	}
	return remaining, nil
}

// GetQuizCount obtiene el número total de quizzes
func (s *QuizService) GetQuizCount() (int, error) {
	quizzes, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(quizzes), nil
}

// HealthCheck verifica que el almacenamiento esté funcionando
func (s *QuizService) HealthCheck() error {
	if err := s.store.Ping(); err != nil {
		return fmt.Errorf("error en health check del almacenamiento: %w", err)
	}
	return nil
}

func (s *QuizService) load() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	found, err := s.store.Get(quizKey, &quizzes)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	if !found || quizzes == nil {
		return []models.Quiz{}, nil
	}
	return quizzes, nil
}

func (s *QuizService) save(op string, quizzes []models.Quiz) error {
	if err := s.store.Set(quizKey, quizzes, 0); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func indexByID(quizzes []models.Quiz, id string) int {
	for i := range quizzes {
		if quizzes[i].ID == id {
			return i
		}
	}
	return -1
}
