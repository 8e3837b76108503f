package handlers

import (
	"net/http"

	"minitwit/templates"

	"github.com/gorilla/mux"
)

// Timeline shows the viewer's own messages and those of the users they
// follow. Anonymous visitors are sent to the public timeline.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/public", http.StatusFound)
		return
	}

	timeline, err := h.timeline.Personal(r.Context(), user, page(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "timeline", &templates.View{
		Title:    "My Timeline",
		Endpoint: "timeline",
		Timeline: timeline,
	})
}

func (h *Handler) PublicTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.timeline.Public(r.Context(), page(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "timeline", &templates.View{
		Title:    "Public Timeline",
		Endpoint: "public",
		Timeline: timeline,
	})
}

func (h *Handler) UserTimeline(w http.ResponseWriter, r *http.Request) {
	profile, timeline, err := h.timeline.ForUser(r.Context(), mux.Vars(r)["username"], page(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	followed, err := h.social.IsFollowing(r.Context(), currentUser(r), profile)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "timeline", &templates.View{
		Title:    profile.Username + "'s Timeline",
		Endpoint: "user",
		Timeline: timeline,
		Profile:  profile,
		Followed: followed,
	})
}

// AddMessage stores the posted text. An empty text is dropped without
// feedback, matching the form's behavior.
func (h *Handler) AddMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	text := r.PostFormValue("text")
	if text == "" {
		h.redirect(w, r, "/", "")
		return
	}

	if _, err := h.messages.Post(r.Context(), user, text); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/", "Your message was recorded")
}
