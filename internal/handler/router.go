package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sessionHandler "github.com/havenlabs/haven/backend/internal/handler/session"
	"github.com/havenlabs/haven/backend/internal/handler/stream"
	"github.com/havenlabs/haven/backend/internal/handler/ws"
	middlewarePkg "github.com/havenlabs/haven/backend/internal/middleware"
	sessionservice "github.com/havenlabs/haven/backend/internal/service/session"
	"github.com/havenlabs/haven/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the session engine.
func NewRouter(sessions *sessionservice.Manager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sessionH := sessionHandler.New(sessions)
	streamH := stream.New(sessions)
	wsH := ws.New(sessions)

	r.Route("/api", func(api chi.Router) {
		sessionH.RegisterRoutes(api)
		wsH.RegisterRoutes(api)

		// Streaming variant of the message endpoint for SSE frontends.
		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamH.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
