package handlers

import (
	"encoding/json"
	"errors"

	"github.com/backsoul/gogoquiz/pkg/models"
	"github.com/backsoul/gogoquiz/pkg/services"
	"github.com/valyala/fasthttp"
)

// Notifier publica eventos a los clientes conectados
type Notifier interface {
	BroadcastMessage(msgType string, data interface{})
}

// respondWithJSON envía una respuesta JSON
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

// respondWithError envía una respuesta de error
func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithSuccess envía una respuesta exitosa
func respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondWithServiceError traduce los errores tipados del servicio a códigos HTTP
func respondWithServiceError(ctx *fasthttp.RequestCtx, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(ctx, fasthttp.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound):
		respondWithError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidOption):
		respondWithError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSessionStarted), errors.Is(err, services.ErrSessionEnded):
		respondWithError(ctx, fasthttp.StatusConflict, err.Error())
	default:
		respondWithError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}
