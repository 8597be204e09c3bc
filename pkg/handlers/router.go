package handlers

import (
	"log"
	"strings"

	"github.com/valyala/fasthttp"
)

// Router enruta las peticiones de la API
type Router struct {
	quizHandler      *QuizHandler
	sessionHandler   *SessionHandler
	websocketHandler *WebSocketHandler
}

// NewRouter crea el router. websocketHandler puede ser nil.
func NewRouter(quizHandler *QuizHandler, sessionHandler *SessionHandler, websocketHandler *WebSocketHandler) *Router {
	return &Router{
		quizHandler:      quizHandler,
		sessionHandler:   sessionHandler,
		websocketHandler: websocketHandler,
	}
}

// Handle punto de entrada para fasthttp.Server
func (r *Router) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	log.Printf("📡 %s %s", method, path)

	ctx.Response.Header.Set("Server", "GoGoQuiz-FastHTTP/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// Headers CORS para desarrollo
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	ctx.Response.Header.Set("Access-Control-Expose-Headers", "Content-Disposition")

	// Manejar preflight requests
	if method == fasthttp.MethodOptions {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	case path == "/api/health" && method == fasthttp.MethodGet:
		r.quizHandler.HealthCheck(ctx)

	// Quizzes
	case path == "/api/quizzes" && method == fasthttp.MethodGet:
		r.quizHandler.GetAllQuizzes(ctx)
	case path == "/api/quizzes" && method == fasthttp.MethodPost:
		r.quizHandler.CreateQuiz(ctx)
	case path == "/api/quizzes/import" && method == fasthttp.MethodPost:
		r.quizHandler.ImportQuizzes(ctx)
	case path == "/api/quizzes/export" && method == fasthttp.MethodGet:
		r.quizHandler.ExportQuizzes(ctx)
	case strings.HasPrefix(path, "/api/quizzes/"):
		r.handleQuizRoutes(ctx, path, method)

	// Sesiones
	case path == "/api/sessions" && method == fasthttp.MethodPost:
		r.sessionHandler.CreateSession(ctx)
	case strings.HasPrefix(path, "/api/sessions/"):
		r.handleSessionRoutes(ctx, path, method)

	case path == "/ws" && r.websocketHandler != nil:
		r.websocketHandler.HandleWebSocket(ctx)

	default:
		serve404(ctx)
	}
}

// handleQuizRoutes maneja /api/quizzes/{id}
func (r *Router) handleQuizRoutes(ctx *fasthttp.RequestCtx, path, method string) {
	parts := strings.Split(path, "/")
	if len(parts) != 4 || parts[3] == "" {
		serve404(ctx)
		return
	}
	ctx.SetUserValue("id", parts[3])

	switch method {
	case fasthttp.MethodGet:
		r.quizHandler.GetQuiz(ctx)
	case fasthttp.MethodPut:
		r.quizHandler.EditQuiz(ctx)
	case fasthttp.MethodDelete:
		r.quizHandler.DeleteQuiz(ctx)
	default:
		respondWithError(ctx, fasthttp.StatusMethodNotAllowed, "Método no permitido")
	}
}

// handleSessionRoutes maneja /api/sessions/{id} y /api/sessions/{id}/{acción}
func (r *Router) handleSessionRoutes(ctx *fasthttp.RequestCtx, path, method string) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 || parts[3] == "" {
		serve404(ctx)
		return
	}
	ctx.SetUserValue("id", parts[3])

	if len(parts) == 4 && method == fasthttp.MethodGet {
		r.sessionHandler.GetSession(ctx)
		return
	}
	if len(parts) != 5 || method != fasthttp.MethodPost {
		serve404(ctx)
		return
	}

	switch parts[4] {
	case "select":
		r.sessionHandler.SelectQuiz(ctx)
	case "start":
		r.sessionHandler.StartSession(ctx)
	case "answer":
		r.sessionHandler.SubmitAnswer(ctx)
	case "next":
		r.sessionHandler.NextQuestion(ctx)
	case "end":
		r.sessionHandler.EndSession(ctx)
	default:
		serve404(ctx)
	}
}

func serve404(ctx *fasthttp.RequestCtx) {
	respondWithError(ctx, fasthttp.StatusNotFound, "Ruta no encontrada: "+string(ctx.Path()))
}
