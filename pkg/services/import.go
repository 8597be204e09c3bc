package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
)

// exportLayout DDMMYYHHmm
const exportLayout = "0201061504"

// ImportQuizzes reconcilia una colección externa con la persistida.
//
// Un quiz cuyo ID ya existe se omite sin importar el modo. En modo overwrite
// un quiz con el mismo título se reemplaza en su posición; en modo merge
// siempre se agrega. Los quizzes importados no se validan.
func (s *QuizService) ImportQuizzes(incoming []models.Quiz, mode models.ImportMode) ([]models.Quiz, error) {
	if mode != models.ImportOverwrite && mode != models.ImportMerge {
		return nil, &ValidationError{Message: fmt.Sprintf("modo de importación desconocido: %q", mode)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.load()
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(quizzes))
	for _, q := range quizzes {
		existing[q.ID] = struct{}{}
	}

	skipped := 0
	for _, in := range incoming {
		if _, dup := existing[in.ID]; dup {
			skipped++
			continue
		}

		quiz := in.Clone()
		if quiz.ID == "" {
			quiz.ID = s.newID()
		}

		switch mode {
		case models.ImportOverwrite:
			if idx := indexByTitle(quizzes, quiz.Title); idx >= 0 {
				quizzes[idx] = quiz
			} else {
				quizzes = append(quizzes, quiz)
			}
		case models.ImportMerge:
			quizzes = append(quizzes, quiz)
		}
	}

	if err := s.save("import", quizzes); err != nil {
		return nil, err
	}

	log.Printf("📥 Importación (%s): %d recibidos, %d omitidos por ID duplicado, %d en total", mode, len(incoming), skipped, len(quizzes))
	return quizzes, nil
}

// ExportQuizzes serializa la colección completa para descarga.
// Devuelve el nombre de archivo DDMMYYHHmm_<appName>.json en hora local.
func (s *QuizService) ExportQuizzes(now time.Time, appName string) (string, []byte, error) {
	quizzes, err := s.load()
	if err != nil {
		return "", nil, err
	}

	data, err := json.MarshalIndent(quizzes, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("error serializando quizzes: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", now.Local().Format(exportLayout), appName)
	return filename, data, nil
}

func indexByTitle(quizzes []models.Quiz, title string) int {
	for i := range quizzes {
		if quizzes[i].Title == title {
			return i
		}
	}
	return -1
}
