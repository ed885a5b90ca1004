package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	sessionservice "github.com/havenlabs/haven/backend/internal/service/session"
	"github.com/havenlabs/haven/backend/pkg/utils"
)

// Handler delivers companion replies over Server-Sent Events so the
// frontend can render the turn progressively.
type Handler struct {
	sessions *sessionservice.Manager
}

// New creates a new stream handler.
func New(sessions *sessionservice.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// HandleStreamRequest runs one user turn through the engine and emits the
// result as a sequence of SSE events: start, message, emotion, optionally
// crisis, then end.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	exchange, err := h.sessions.PostMessage(ctx, sessionID, userMessage)
	if err != nil {
		h.sendError(w, flusher, err)
		return err
	}

	utils.SendSSEEvent(w, flusher, "start", map[string]string{
		"sessionId": sessionID,
	})
	utils.SendSSEEvent(w, flusher, "message", exchange.CompanionMessage)
	utils.SendSSEEvent(w, flusher, "emotion", map[string]any{
		"score":            exchange.UserMessage.Tone.Score,
		"primaryEmotion":   exchange.UserMessage.Tone.PrimaryEmotion,
		"secondaryEmotion": exchange.UserMessage.Tone.SecondaryEmotion,
		"distressScore":    exchange.UserMessage.DistressScore,
	})
	if exchange.CrisisFlag {
		utils.SendSSEEvent(w, flusher, "crisis", map[string]any{
			"sessionId":  sessionID,
			"crisisFlag": true,
		})
	}
	utils.SendSSEEvent(w, flusher, "end", map[string]bool{"finished": true})

	log.Printf("[stream] completed reply for session=%s level=%d", sessionID, exchange.CompanionMessage.DistressScore)
	return nil
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		kind = "session_not_found"
	case errors.Is(err, sessionservice.ErrEmptyMessage):
		kind = "empty_message"
	case errors.Is(err, sessionservice.ErrSessionEnded):
		kind = "session_ended"
	}
	utils.SendSSEEvent(w, flusher, "error", map[string]string{
		"kind":  kind,
		"error": err.Error(),
	})
}
