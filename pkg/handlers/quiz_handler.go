package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/services"
	"github.com/valyala/fasthttp"
)

// QuizHandler maneja las peticiones HTTP para quizzes
type QuizHandler struct {
	quizService *services.QuizService
	notifier    Notifier
	appName     string
	now         func() time.Time
}

// NewQuizHandler crea una nueva instancia del handler. notifier puede ser nil.
func NewQuizHandler(quizService *services.QuizService, notifier Notifier, appName string) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		notifier:    notifier,
		appName:     appName,
		now:         time.Now,
	}
}

// GetAllQuizzes maneja GET /api/quizzes
func (h *QuizHandler) GetAllQuizzes(ctx *fasthttp.RequestCtx) {
	quizzes, err := h.quizService.GetAllQuizzes()
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithSuccess(ctx, models.QuizResponse{
		Quizzes: quizzes,
		Count:   len(quizzes),
	}, "Quizzes obtenidos exitosamente")
}

// GetQuiz maneja GET /api/quizzes/{id}
func (h *QuizHandler) GetQuiz(ctx *fasthttp.RequestCtx) {
	id := ctx.UserValue("id").(string)

	quiz, err := h.quizService.GetQuizByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	respondWithSuccess(ctx, models.QuizResponse{Quiz: quiz, Count: 1}, "Quiz obtenido exitosamente")
}

// CreateQuiz maneja POST /api/quizzes
func (h *QuizHandler) CreateQuiz(ctx *fasthttp.RequestCtx) {
	var draft models.Quiz
	if err := json.Unmarshal(ctx.PostBody(), &draft); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}

	quiz, err := h.quizService.CreateQuiz(draft)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.notify("created", quiz.ID)
	respondWithJSON(ctx, fasthttp.StatusCreated, models.APIResponse{
		Success: true,
		Message: "Quiz creado exitosamente",
		Data:    models.QuizResponse{Quiz: quiz, Count: 1},
	})
}

// EditQuiz maneja PUT /api/quizzes/{id}. El ID de la ruta reemplaza al del cuerpo.
func (h *QuizHandler) EditQuiz(ctx *fasthttp.RequestCtx) {
	var quiz models.Quiz
	if err := json.Unmarshal(ctx.PostBody(), &quiz); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}
	quiz.ID = ctx.UserValue("id").(string)

	updated, err := h.quizService.EditQuiz(quiz)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.notify("updated", updated.ID)
	respondWithSuccess(ctx, models.QuizResponse{Quiz: updated, Count: 1}, "Quiz actualizado exitosamente")
}

// DeleteQuiz maneja DELETE /api/quizzes/{id}
func (h *QuizHandler) DeleteQuiz(ctx *fasthttp.RequestCtx) {
	id := ctx.UserValue("id").(string)

	quizzes, err := h.quizService.DeleteQuiz(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.notify("deleted", id)
	respondWithSuccess(ctx, models.QuizResponse{
		Quizzes: quizzes,
		Count:   len(quizzes),
	}, "Quiz eliminado exitosamente")
}

// ImportQuizzes maneja POST /api/quizzes/import?mode=overwrite|merge
func (h *QuizHandler) ImportQuizzes(ctx *fasthttp.RequestCtx) {
	mode, err := models.ParseImportMode(string(ctx.QueryArgs().Peek("mode")))
	if err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Parámetro 'mode' debe ser 'overwrite' o 'merge'")
		return
	}

	incoming, err := services.ParseQuizzesJSON(ctx.PostBody())
	if err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Archivo inválido: %v", err))
		return
	}

	quizzes, err := h.quizService.ImportQuizzes(incoming, mode)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.notify("imported", "")
	respondWithSuccess(ctx, models.QuizResponse{
		Quizzes: quizzes,
		Count:   len(quizzes),
	}, fmt.Sprintf("%d quizzes importados", len(incoming)))
}

// ExportQuizzes maneja GET /api/quizzes/export
func (h *QuizHandler) ExportQuizzes(ctx *fasthttp.RequestCtx) {
	filename, data, err := h.quizService.ExportQuizzes(h.now(), h.appName)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)

	log.Printf("📤 Exportación generada: %s", filename)
}

// HealthCheck maneja GET /api/health
func (h *QuizHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	if err := h.quizService.HealthCheck(); err != nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("Servicio no disponible: %v", err))
		return
	}

	respondWithSuccess(ctx, map[string]interface{}{
		"status":  "healthy",
		"storage": "connected",
	}, "Servicio funcionando correctamente")
}

func (h *QuizHandler) notify(action, quizID string) {
	if h.notifier == nil {
		return
	}
	count, err := h.quizService.GetQuizCount()
	if err != nil {
		log.Printf("⚠️ Error obteniendo conteo para notificación: %v", err)
		return
	}
	h.notifier.BroadcastMessage("quizzesChanged", models.CatalogEvent{
		Action:    action,
		QuizID:    quizID,
		Count:     count,
		Timestamp: h.now().Format(time.RFC3339),
	})
}
