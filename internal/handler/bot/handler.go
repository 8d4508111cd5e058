// Package bot exposes the conversational engine over HTTP: a webhook
// endpoint for request/response transports and a websocket endpoint for
// live clients.
package bot

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/floralab/bloombot/internal/dispatch"
	"github.com/floralab/bloombot/pkg/utils"
)

// Handler serves inbound user events.
type Handler struct {
	dispatcher *dispatch.Dispatcher
}

// New creates the bot handler.
func New(dispatcher *dispatch.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RegisterRoutes mounts the webhook route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.handleWebhook)
}

// handleWebhook processes one user event and responds with the render
// instruction for the transport to present.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var ev dispatch.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	render, err := h.dispatcher.Dispatch(r.Context(), ev)
	if err != nil {
		if errors.Is(err, dispatch.ErrMissingUser) || errors.Is(err, dispatch.ErrUnknownAction) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[webhook] dispatch failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "dispatch failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, render)
}
