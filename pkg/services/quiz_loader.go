package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/backsoul/gogoquiz/pkg/models"
	"gopkg.in/yaml.v3"
)

// LoadQuizzesFromFile lee un arreglo de quizzes desde un archivo JSON o YAML
func LoadQuizzesFromFile(path string) ([]models.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error leyendo archivo %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseQuizzesYAML(data)
	default:
		return ParseQuizzesJSON(data)
	}
}

// ParseQuizzesJSON decodifica un documento cuyo valor raíz es un arreglo de quizzes
func ParseQuizzesJSON(data []byte) ([]models.Quiz, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("parse json: se esperaba un arreglo de quizzes")
	}

	var quizzes []models.Quiz
	if err := json.Unmarshal(trimmed, &quizzes); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return quizzes, nil
}

// ParseQuizzesYAML decodifica un arreglo de quizzes en YAML
func ParseQuizzesYAML(data []byte) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := yaml.Unmarshal(data, &quizzes); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return quizzes, nil
}

// SeedQuizzes importa el archivo indicado solo si todavía no hay quizzes guardados
func (s *QuizService) SeedQuizzes(path string) (int, error) {
	count, err := s.GetQuizCount()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("✅ Ya hay %d quizzes guardados, no se cargan datos iniciales", count)
		return count, nil
	}

	log.Printf("📂 Cargando quizzes iniciales desde: %s", path)
	quizzes, err := LoadQuizzesFromFile(path)
	if err != nil {
		return 0, err
	}

	result, err := s.ImportQuizzes(quizzes, models.ImportMerge)
	if err != nil {
		return 0, fmt.Errorf("error cargando quizzes iniciales: %w", err)
	}
	return len(result), nil
}
