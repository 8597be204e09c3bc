package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/storage"
)

func newTestQuizService(t *testing.T) (*QuizService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore(storage.DefaultNamespace)
	n := 0
	svc := NewQuizService(store).WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
	return svc, store
}

func boolPtr(v bool) *bool { return &v }

func sampleQuestion(title string, correct int) models.Question {
	return models.Question{
		ID:    "q-" + title,
		Title: title,
		Options: []models.Option{
			{Text: "A"}, {Text: "B"}, {Text: "C"}, {Text: "D"},
		},
		CorrectOption: correct,
	}
}

func sampleQuiz(title string, questions ...models.Question) models.Quiz {
	if len(questions) == 0 {
		questions = []models.Question{sampleQuestion("¿Cuánto es 2 + 2?", 0)}
	}
	return models.Quiz{
		Title:       title,
		Description: "Quiz de " + title,
		Questions:   questions,
	}
}

// failingStore simula un almacenamiento que rechaza las escrituras
type failingStore struct {
	*storage.MemoryStore
	err error
}

func (f *failingStore) Set(string, any, time.Duration) error {
	return f.err
}
