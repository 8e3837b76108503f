package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"minitwit/dto"
	"minitwit/models"
	"minitwit/services"
	"minitwit/session"
	"minitwit/templates"

	"github.com/sirupsen/logrus"
)

type contextKey string

const userKey contextKey = "user"

// Handler serves both the HTML pages and the JSON API on top of the same
// services.
type Handler struct {
	auth     *services.AuthService
	timeline *services.TimelineService
	social   *services.SocialService
	messages *services.MessageService
	sessions *session.Store
	views    *templates.Renderer
}

func NewHandler(
	auth *services.AuthService,
	timeline *services.TimelineService,
	social *services.SocialService,
	messages *services.MessageService,
	sessions *session.Store,
	views *templates.Renderer,
) *Handler {
	return &Handler{
		auth:     auth,
		timeline: timeline,
		social:   social,
		messages: messages,
		sessions: sessions,
		views:    views,
	}
}

// LoadUser looks up the session user once per request and stores it in the
// request context.
func (h *Handler) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := h.sessions.UserID(r)
		if id == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.auth.CurrentUser(r.Context(), id)
		if err != nil {
			h.internalError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// page reads the ?p= page number; anything unparsable means the first page.
func page(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("p"))
	if err != nil || p < 0 {
		return 0
	}
	return p
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string, flash string) {
	if flash != "" {
		h.sessions.AddFlash(r, flash)
	}
	if err := h.sessions.Save(w, r); err != nil {
		logrus.WithError(err).Error("saving session")
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, view *templates.View) {
	view.User = currentUser(r)
	view.Flashes = h.sessions.Flashes(r)
	if err := h.sessions.Save(w, r); err != nil {
		logrus.WithError(err).Error("saving session")
	}
	if err := h.views.Render(w, status, name, view); err != nil {
		h.internalError(w, r, err)
	}
}

// fail reports a user-facing error as plain text and anything else as 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := services.AsError(err); ok {
		http.Error(w, e.Message, e.Status)
		return
	}
	h.internalError(w, r, err)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("encoding response")
	}
}

// failJSON is the JSON counterpart of fail.
func failJSON(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := services.AsError(err); ok {
		writeJSON(w, e.Status, dto.ErrorResponse{Error: e.Message})
		return
	}
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("api request failed")
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error"})
}
