package models

// SessionStatus estado de una sesión de juego
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionEnded      SessionStatus = "ended"
)

// Score puntaje acumulado de una sesión
type Score struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Perfect bool `json:"perfect"`
}

// AnswerRequest request para responder la pregunta actual
type AnswerRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

// SelectQuizRequest request para elegir el quiz de una sesión
type SelectQuizRequest struct {
	QuizID string `json:"quizId"`
}

// SessionResponse respuesta de sesión
type SessionResponse struct {
	Session interface{} `json:"session,omitempty"`
	Score   Score       `json:"score"`
	Correct *bool       `json:"correct,omitempty"`
}
