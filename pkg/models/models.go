package models

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// QuizResponse respuesta específica para quizzes
type QuizResponse struct {
	Quiz    *Quiz  `json:"quiz,omitempty"`
	Quizzes []Quiz `json:"quizzes,omitempty"`
	Count   int    `json:"count"`
}

// CatalogEvent notificación enviada por websocket cuando cambia el catálogo
type CatalogEvent struct {
	Action    string `json:"action"` // "created", "updated", "deleted", "imported"
	QuizID    string `json:"quizId,omitempty"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}
