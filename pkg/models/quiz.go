package models

import (
	"fmt"
	"strings"
)

// Option representa una alternativa de respuesta
type Option struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect *bool  `json:"isCorrect,omitempty" yaml:"isCorrect,omitempty"`
	Image     string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Question representa una pregunta de opción múltiple dentro de un quiz
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Options       []Option `json:"options" yaml:"options"`
	CorrectOption int      `json:"correctOption" yaml:"correctOption"`
}

// Quiz colección de preguntas con título y descripción
type Quiz struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// ImportMode define cómo se reconcilian los quizzes importados
type ImportMode string

const (
	ImportOverwrite ImportMode = "overwrite"
	ImportMerge     ImportMode = "merge"
)

// ParseImportMode convierte el parámetro recibido en un ImportMode
func ParseImportMode(raw string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ImportOverwrite:
		return ImportOverwrite, nil
	case ImportMerge:
		return ImportMerge, nil
	default:
		return "", fmt.Errorf("modo de importación desconocido: %q", raw)
	}
}

// Clone devuelve una copia profunda del quiz
func (q Quiz) Clone() Quiz {
	out := q
	if q.Questions != nil {
		out.Questions = make([]Question, len(q.Questions))
		for i, question := range q.Questions {
			out.Questions[i] = question.Clone()
		}
	}
	return out
}

// Clone devuelve una copia profunda de la pregunta
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = make([]Option, len(q.Options))
		for i, option := range q.Options {
			out.Options[i] = option
			if option.IsCorrect != nil {
				flag := *option.IsCorrect
				out.Options[i].IsCorrect = &flag
			}
		}
	}
	return out
}
