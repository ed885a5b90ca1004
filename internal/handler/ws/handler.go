package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	sessionservice "github.com/havenlabs/haven/backend/internal/service/session"
)

// Handler runs a live conversation loop over a websocket: text frames in,
// analyzed user turn plus composed companion turn out.
type Handler struct {
	sessions *sessionservice.Manager
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(sessions *sessionservice.Manager) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for session=%s: %v", sessionID, err)
			}
			return
		}

		var inbound inboundMessage
		if err := json.Unmarshal(data, &inbound); err != nil {
			h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: "invalid message payload"})
			continue
		}
		if inbound.Type != "message" {
			h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: "unsupported message type"})
			continue
		}

		exchange, err := h.sessions.PostMessage(r.Context(), sessionID, inbound.Text)
		if err != nil {
			h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: err.Error()})
			if errors.Is(err, sessionservice.ErrSessionNotFound) || errors.Is(err, sessionservice.ErrSessionEnded) {
				return
			}
			continue
		}

		h.send(conn, outgoingMessage{Type: "user", SessionID: sessionID, Data: exchange.UserMessage})
		h.send(conn, outgoingMessage{Type: "companion", SessionID: sessionID, Data: exchange.CompanionMessage})
		if exchange.CrisisFlag {
			h.send(conn, outgoingMessage{Type: "crisis", SessionID: sessionID, Data: map[string]bool{"crisisFlag": true}})
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
