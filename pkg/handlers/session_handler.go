package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/services"
	"github.com/valyala/fasthttp"
)

// SessionHandler maneja las peticiones HTTP para sesiones de juego
type SessionHandler struct {
	sessionService *services.SessionService
}

// NewSessionHandler crea una nueva instancia del handler de sesiones
func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// CreateSession maneja POST /api/sessions
func (h *SessionHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	session, err := h.sessionService.CreateSession()
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithJSON(ctx, fasthttp.StatusCreated, models.APIResponse{
		Success: true,
		Message: "Sesión creada exitosamente",
		Data:    sessionResponse(session, nil),
	})
}

// GetSession maneja GET /api/sessions/{id}
func (h *SessionHandler) GetSession(ctx *fasthttp.RequestCtx) {
	session, err := h.sessionService.GetSession(ctx.UserValue("id").(string))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithSuccess(ctx, sessionResponse(session, nil), "Sesión obtenida exitosamente")
}

// SelectQuiz maneja POST /api/sessions/{id}/select
func (h *SessionHandler) SelectQuiz(ctx *fasthttp.RequestCtx) {
	var request models.SelectQuizRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}
	if request.QuizID == "" {
		respondWithError(ctx, fasthttp.StatusBadRequest, "quizId es requerido")
		return
	}

	session, err := h.sessionService.SelectQuiz(ctx.UserValue("id").(string), request.QuizID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithSuccess(ctx, sessionResponse(session, nil), "Quiz seleccionado")
}

// StartSession maneja POST /api/sessions/{id}/start
func (h *SessionHandler) StartSession(ctx *fasthttp.RequestCtx) {
	session, err := h.sessionService.StartSession(ctx.UserValue("id").(string))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	message := "Partida iniciada"
	if session.Status == models.SessionNotStarted {
		message = "No hay quiz seleccionado"
	}
	respondWithSuccess(ctx, sessionResponse(session, nil), message)
}

// SubmitAnswer maneja POST /api/sessions/{id}/answer
func (h *SessionHandler) SubmitAnswer(ctx *fasthttp.RequestCtx) {
	var request models.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}
	if request.OptionIndex == nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "optionIndex es requerido")
		return
	}

	session, outcome, err := h.sessionService.SubmitAnswer(ctx.UserValue("id").(string), *request.OptionIndex)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	var correct *bool
	message := "Respuesta ignorada"
	if outcome.Applied {
		correct = &outcome.Correct
		if outcome.Correct {
			message = "¡Correcto!"
		} else {
			message = "Respuesta incorrecta"
		}
	}
	if outcome.IsEnded {
		score := session.Score()
		message = fmt.Sprintf("%s. Puntaje: %d de %d correctas", message, score.Correct, score.Total)
	}

	respondWithSuccess(ctx, sessionResponse(session, correct), message)
}

// NextQuestion maneja POST /api/sessions/{id}/next
func (h *SessionHandler) NextQuestion(ctx *fasthttp.RequestCtx) {
	session, advanced, err := h.sessionService.NextQuestion(ctx.UserValue("id").(string))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	message := "Siguiente pregunta"
	if !advanced {
		message = "No quedan preguntas"
	}
	respondWithSuccess(ctx, sessionResponse(session, nil), message)
}

// EndSession maneja POST /api/sessions/{id}/end
func (h *SessionHandler) EndSession(ctx *fasthttp.RequestCtx) {
	session, err := h.sessionService.EndSession(ctx.UserValue("id").(string))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithSuccess(ctx, sessionResponse(session, nil), "Sesión terminada exitosamente")
}

func sessionResponse(session *services.QuizSession, correct *bool) models.SessionResponse {
	return models.SessionResponse{
		Session: session,
		Score:   session.Score(),
		Correct: correct,
	}
}
