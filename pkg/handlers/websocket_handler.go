package handlers

import (
	"log"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/services"
	websocketHub "github.com/backsoul/gogoquiz/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// WebSocketHandler mantiene a los clientes informados de cambios en el catálogo
type WebSocketHandler struct {
	quizService *services.QuizService
	hub         *websocketHub.Hub
}

func NewWebSocketHandler(quizService *services.QuizService, hub *websocketHub.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		quizService: quizService,
		hub:         hub,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // Permitir conexiones desde cualquier origen en desarrollo
	},
}

// HandleWebSocket maneja GET /ws
func (h *WebSocketHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		defer ws.Close()

		// Enviar el estado actual del catálogo antes de registrar al cliente
		count, err := h.quizService.GetQuizCount()
		if err == nil {
			ws.WriteJSON(websocketHub.Message{
				Type: "catalog",
				Data: models.CatalogEvent{
					Action:    "snapshot",
					Count:     count,
					Timestamp: time.Now().Format(time.RFC3339),
				},
			})
		}

		h.hub.Register(ws)
		defer h.hub.Unregister(ws)

		// Escuchar mensajes del cliente hasta que cierre la conexión
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
	})

	if err != nil {
		log.Printf("⚠️ Error upgrading to WebSocket: %v", err)
	}
}
