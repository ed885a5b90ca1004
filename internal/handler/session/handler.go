package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/havenlabs/haven/backend/internal/model/chat"
	sessionservice "github.com/havenlabs/haven/backend/internal/service/session"
	"github.com/havenlabs/haven/backend/pkg/utils"
)

// Handler exposes the session engine over REST.
type Handler struct {
	sessions *sessionservice.Manager
}

// New creates the session handler.
func New(sessions *sessionservice.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.handleStart)
		r.Get("/{sessionID}", h.handleGet)
		r.Post("/{sessionID}/messages", h.handlePostMessage)
		r.Post("/{sessionID}/end", h.handleEnd)
		r.Get("/{sessionID}/trend", h.handleTrend)
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID               string            `json:"userId"`
		InitialDistressScore int               `json:"initialDistressScore"`
		Metadata             map[string]string `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.StartSession(r.Context(), payload.UserID, payload.InitialDistressScore, payload.Metadata)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	trend, err := h.sessions.DistressTrend(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionView{
		Session:         session,
		Trend:           trend,
		DurationSeconds: session.Duration(),
	})
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.sessions.PostMessage(r.Context(), sessionID, payload.Text)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		FinalDistressScore int `json:"finalDistressScore"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	session, err := h.sessions.EndSession(r.Context(), sessionID, payload.FinalDistressScore)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionView{
		Session:         session,
		Trend:           h.trendOrStable(r, sessionID),
		DurationSeconds: session.Duration(),
	})
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	trend, err := h.sessions.DistressTrend(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]sessionservice.Trend{"trend": trend})
}

// sessionView decorates a session snapshot with its derived fields.
type sessionView struct {
	chat.Session
	Trend           sessionservice.Trend `json:"trend"`
	DurationSeconds int                  `json:"durationSeconds"`
}

func (h *Handler) trendOrStable(r *http.Request, sessionID string) sessionservice.Trend {
	trend, err := h.sessions.DistressTrend(r.Context(), sessionID)
	if err != nil {
		return sessionservice.TrendStable
	}
	return trend
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessionservice.ErrUserRequired),
		errors.Is(err, sessionservice.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, sessionservice.ErrSessionEnded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
