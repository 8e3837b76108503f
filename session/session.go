package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "session-cookie"
	userIDKey  = "user_id"
)

// Store keeps the logged-in user id and pending flash messages in a signed
// cookie. Changes made during a request are written by Save.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secretKey []byte) *Store {
	cookies := sessions.NewCookieStore(secretKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cookies}
}

// get returns the session cached on r. A cookie that fails to decode yields
// a fresh, empty session.
func (s *Store) get(r *http.Request) *sessions.Session {
	sess, _ := s.cookies.Get(r, cookieName)
	return sess
}

// UserID returns the id stored at login, or 0 when nobody is logged in.
func (s *Store) UserID(r *http.Request) uint {
	id, _ := s.get(r).Values[userIDKey].(uint)
	return id
}

func (s *Store) SetUserID(r *http.Request, userID uint) {
	s.get(r).Values[userIDKey] = userID
}

func (s *Store) ClearUserID(r *http.Request) {
	delete(s.get(r).Values, userIDKey)
}

func (s *Store) AddFlash(r *http.Request, msg string) {
	s.get(r).AddFlash(msg)
}

// Flashes pops every pending flash message. The caller must Save for the
// pop to stick.
func (s *Store) Flashes(r *http.Request) []string {
	raw := s.get(r).Flashes()
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request) error {
	return s.get(r).Save(r, w)
}
