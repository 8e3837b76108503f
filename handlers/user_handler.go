package handlers

import (
	"fmt"
	"net/http"

	"minitwit/services"
	"minitwit/templates"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Login shows the sign-in form and handles its submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	view := &templates.View{}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "login", view)
		return
	}

	username := r.PostFormValue("username")
	view.Form.Username = username

	user, err := h.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		e, ok := services.AsError(err)
		if !ok {
			h.internalError(w, r, err)
			return
		}
		view.Error = e.Message
		h.render(w, r, e.Status, "login", view)
		return
	}

	h.sessions.SetUserID(r, user.ID)
	logrus.WithField("user_id", user.ID).Info("user logged in")
	h.redirect(w, r, "/", "You were logged in")
}

// Register shows the sign-up form and handles its submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	view := &templates.View{}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "register", view)
		return
	}

	req := registerRequest(r)
	view.Form.Username = req.Username
	view.Form.Email = req.Email

	if _, err := h.auth.Register(r.Context(), req); err != nil {
		e, ok := services.AsError(err)
		if !ok {
			h.internalError(w, r, err)
			return
		}
		view.Error = e.Message
		h.render(w, r, e.Status, "register", view)
		return
	}

	h.redirect(w, r, "/login", "You were successfully registered and can login now")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearUserID(r)
	h.redirect(w, r, "/public", "You were logged out")
}

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	whom, err := h.social.Follow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/"+whom.Username, fmt.Sprintf("You are now following \"%s\"", whom.Username))
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	whom, err := h.social.Unfollow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/"+whom.Username, fmt.Sprintf("You are no longer following \"%s\"", whom.Username))
}

func registerRequest(r *http.Request) services.RegisterRequest {
	return services.RegisterRequest{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}
}
