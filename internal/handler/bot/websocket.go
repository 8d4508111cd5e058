package bot

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/floralab/bloombot/internal/dispatch"
)

// WebSocketHandler keeps a live conversation open: the client sends events,
// the server answers with renders on the same connection.
type WebSocketHandler struct {
	dispatcher *dispatch.Dispatcher
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler creates the websocket handler.
func NewWebSocketHandler(dispatcher *dispatch.Dispatcher) *WebSocketHandler {
	return &WebSocketHandler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[websocket] conn=%s opened for user=%d", connID, userID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go h.pingLoop(ctx, conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var ev dispatch.Event
			if err := conn.ReadJSON(&ev); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[websocket] conn=%s read error: %v", connID, err)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			// The connection is bound to one user at upgrade time.
			ev.UserID = userID

			render, err := h.dispatcher.Dispatch(ctx, ev)
			if err != nil {
				h.sendError(conn, err)
				continue
			}
			h.sendRender(conn, render)
		}
	}
}

func (h *WebSocketHandler) sendRender(conn *websocket.Conn, render dispatch.Render) {
	msg := outgoingMessage{
		Type:      "render",
		Data:      render,
		Timestamp: time.Now().Unix(),
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[websocket] write render failed: %v", err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, err error) {
	message := "dispatch failed"
	if errors.Is(err, dispatch.ErrUnknownAction) || errors.Is(err, dispatch.ErrMissingUser) {
		message = err.Error()
	}
	msg := outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[websocket] write error failed: %v", err)
	}
}

func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
