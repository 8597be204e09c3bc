package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound se cumple (errors.Is) para cualquier NotFoundError
	ErrNotFound = errors.New("not found")

	ErrSessionStarted = errors.New("la sesión ya fue iniciada")
	ErrSessionEnded   = errors.New("la sesión ya terminó")
	ErrInvalidOption  = errors.New("opción inválida para la pregunta actual")
)

// ValidationError primera regla incumplida por un quiz en edición
type ValidationError struct {
	Rule    ValidationRule
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError entidad inexistente
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError falla del almacenamiento subyacente
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error de persistencia (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
