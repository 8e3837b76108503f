package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"minitwit/config"
	"minitwit/database"
	"minitwit/repositories"
	"minitwit/services"
	"minitwit/session"
	"minitwit/templates"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var secretKey = []byte("test-secret-key-0123456789abcdef")

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := database.New(config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "minitwit.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	views, err := templates.New()
	require.NoError(t, err)

	users := repositories.NewUserRepository(db.DB)
	msgs := repositories.NewMessageRepository(db.DB)
	return NewHandler(
		services.NewAuthService(users, services.BcryptHasher{Cost: bcrypt.MinCost}),
		services.NewTimelineService(users, msgs, 30),
		services.NewSocialService(users),
		services.NewMessageService(msgs),
		session.NewStore(secretKey),
		views,
	)
}

// Helper function to perform HTTP requests
func performRequest(h *Handler, req *http.Request, handlerFunc http.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.LoadUser(handlerFunc).ServeHTTP(rr, req)
	return rr
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func registerUser(h *Handler, username, password, password2, email string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)
	form.Add("password2", password2)
	form.Add("email", email)
	return performRequest(h, formRequest("/register", form), h.Register)
}

func loginUser(h *Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)
	return performRequest(h, formRequest("/login", form), h.Login)
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session-cookie" {
			return c
		}
	}
	t.Fatal("session cookie not found")
	return nil
}

func TestRegisterUser(t *testing.T) {
	h := newTestHandler(t)

	resp := registerUser(h, "user123", "password123", "password123", "user123@example.com")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/login", resp.Header().Get("Location"))

	tests := []struct {
		name                                  string
		username, password, password2, email string
		want                                  string
	}{
		{"duplicate username", "user123", "password123", "password123", "user123@example.com", "The username is already taken"},
		{"empty username", "", "password123", "password123", "user2@example.com", "You have to enter a username"},
		{"empty password", "user_empty_pw", "", "", "user_empty_pw@example.com", "You have to enter a password"},
		{"mismatching passwords", "user_pw_mismatch", "pass1", "pass2", "user_pw_mismatch@example.com", "The two passwords do not match"},
		{"invalid email", "user_invalid_email", "password123", "password123", "invalid-email", "You have to enter a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := registerUser(h, tt.username, tt.password, tt.password2, tt.email)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.want)
		})
	}
}

func TestLoginUser(t *testing.T) {
	h := newTestHandler(t)
	registerUser(h, "testuser", "password123", "password123", "testuser@example.com")

	resp := loginUser(h, "testuser", "password123")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	// the signed cookie carries the user id
	values := make(map[interface{}]interface{})
	require.NoError(t, securecookie.New(secretKey, nil).Decode("session-cookie", sessionCookie(t, resp).Value, &values))
	assert.NotZero(t, values["user_id"])

	resp = loginUser(h, "testuser", "wrongpassword")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid password")

	resp = loginUser(h, "nobody", "password123")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid username")

	resp = performRequest(h, httptest.NewRequest(http.MethodGet, "/logout", nil), h.Logout)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/public", resp.Header().Get("Location"))
}

func TestLoggedInUserIsRedirectedFromForms(t *testing.T) {
	h := newTestHandler(t)
	registerUser(h, "poster", "password123", "password123", "poster@example.com")
	cookie := sessionCookie(t, loginUser(h, "poster", "password123"))

	for _, fn := range []http.HandlerFunc{h.Login, h.Register} {
		resp := performRequest(h, httptest.NewRequest(http.MethodGet, "/", nil), fn, cookie)
		assert.Equal(t, http.StatusFound, resp.Code)
		assert.Equal(t, "/", resp.Header().Get("Location"))
	}
}

func TestAddMessage(t *testing.T) {
	h := newTestHandler(t)

	form := url.Values{"text": {"This is a test message"}}
	resp := performRequest(h, formRequest("/add_message", form), h.AddMessage)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	registerUser(h, "poster", "password123", "password123", "poster@example.com")
	cookie := sessionCookie(t, loginUser(h, "poster", "password123"))

	resp = performRequest(h, formRequest("/add_message", form), h.AddMessage, cookie)
	assert.Equal(t, http.StatusFound, resp.Code)

	// the form path drops an empty text
	resp = performRequest(h, formRequest("/add_message", url.Values{"text": {""}}), h.AddMessage, cookie)
	assert.Equal(t, http.StatusFound, resp.Code)

	resp = performRequest(h, httptest.NewRequest(http.MethodGet, "/", nil), h.Timeline, cookie)
	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "This is a test message")
	assert.Equal(t, 1, strings.Count(body, "<li><img"))
}

func TestTimelineRedirectsAnonymous(t *testing.T) {
	h := newTestHandler(t)
	resp := performRequest(h, httptest.NewRequest(http.MethodGet, "/", nil), h.Timeline)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/public", resp.Header().Get("Location"))
}

func TestFollowRequiresSessionAndKnownUser(t *testing.T) {
	h := newTestHandler(t)
	router := mux.NewRouter()
	router.Use(h.LoadUser)
	router.HandleFunc("/{username}", h.UserTimeline)
	router.HandleFunc("/{username}/follow", h.Follow)
	router.HandleFunc("/{username}/unfollow", h.Unfollow)

	serve := func(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	registerUser(h, "foo", "default", "default", "foo@example.com")
	registerUser(h, "bar", "default", "default", "bar@example.com")

	assert.Equal(t, http.StatusUnauthorized, serve("/foo/follow").Code)
	assert.Equal(t, http.StatusUnauthorized, serve("/foo/unfollow").Code)
	assert.Equal(t, http.StatusNotFound, serve("/ghost").Code)

	cookie := sessionCookie(t, loginUser(h, "bar", "default"))
	assert.Equal(t, http.StatusNotFound, serve("/ghost/follow", cookie).Code)

	resp := serve("/foo/follow", cookie)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/foo", resp.Header().Get("Location"))

	body := serve("/foo", cookie).Body.String()
	assert.Contains(t, body, "You are currently following this user")

	body = serve("/bar", cookie).Body.String()
	assert.Contains(t, body, "This is you!")

	resp = serve("/foo/unfollow", cookie)
	assert.Equal(t, http.StatusFound, resp.Code)
	body = serve("/foo", cookie).Body.String()
	assert.Contains(t, body, "You are not yet following this user")
}

func TestPageParam(t *testing.T) {
	for raw, want := range map[string]int{"": 0, "2": 2, "-1": 0, "abc": 0} {
		req := httptest.NewRequest(http.MethodGet, "/public?p="+raw, nil)
		assert.Equal(t, want, page(req), raw)
	}
}
