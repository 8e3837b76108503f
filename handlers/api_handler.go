package handlers

import (
	"encoding/json"
	"net/http"

	"minitwit/dto"
	"minitwit/services"

	"github.com/gorilla/mux"
)

// APIRegister takes a form-encoded registration. Logged-in callers are
// rejected with 401.
func (h *Handler) APIRegister(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "You are already logged in"})
		return
	}

	if _, err := h.auth.Register(r.Context(), registerRequest(r)); err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.StatusResponse{Message: "You were successfully registered and can login now"})
}

func (h *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	if user := currentUser(r); user != nil {
		writeJSON(w, http.StatusOK, dto.StatusResponse{Message: "Already logged in", UserID: user.ID})
		return
	}

	user, err := h.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		failJSON(w, r, err)
		return
	}

	h.sessions.SetUserID(r, user.ID)
	if err := h.sessions.Save(w, r); err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Message: "You were logged in", UserID: user.ID})
}

func (h *Handler) APILogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearUserID(r)
	if err := h.sessions.Save(w, r); err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Message: "You were logged out"})
}

func (h *Handler) APIFollow(w http.ResponseWriter, r *http.Request) {
	whom, err := h.social.Follow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.StatusResponse{Message: "You are now following " + whom.Username})
}

func (h *Handler) APIUnfollow(w http.ResponseWriter, r *http.Request) {
	whom, err := h.social.Unfollow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Message: "You are no longer following " + whom.Username})
}

// APIAddMessage takes a JSON body {"text": ...}. A missing text key is a 400;
// an empty string is stored.
func (h *Handler) APIAddMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		failJSON(w, r, services.ErrUnauthorized)
		return
	}

	var body dto.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Missing 'text' field"})
		return
	}

	if _, err := h.messages.Post(r.Context(), user, *body.Text); err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.StatusResponse{Message: "Your message was recorded"})
}

func (h *Handler) APIPublicMessages(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.timeline.Public(r.Context(), page(r))
	if err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(timeline.Messages))
}

func (h *Handler) APIUserMessages(w http.ResponseWriter, r *http.Request) {
	_, timeline, err := h.timeline.ForUser(r.Context(), mux.Vars(r)["username"], page(r))
	if err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(timeline.Messages))
}

func (h *Handler) APITimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.timeline.Personal(r.Context(), currentUser(r), page(r))
	if err != nil {
		failJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(timeline.Messages))
}
