package templates

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"minitwit/models"
	"minitwit/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravatarURL(t *testing.T) {
	// md5("foo@example.com")
	want := "http://www.gravatar.com/avatar/b48def645758b95537d4424c84d1a9ff?d=identicon&s=48"
	assert.Equal(t, want, GravatarURL("  Foo@Example.com ", 48))
}

func TestFormatDatetime(t *testing.T) {
	assert.Equal(t, "2009-02-13 @ 23:31", FormatDatetime(1234567890))
}

func TestRenderTimelineEscapesText(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	foo := &models.User{ID: 1, Username: "foo", Email: "foo@example.com"}
	view := &View{
		Title:    "Public Timeline",
		Endpoint: "public",
		Flashes:  []string{"You were logged in"},
		Timeline: &services.Timeline{
			Messages: []models.Message{{Text: "<test message 2>", Author: *foo, PubDate: 0}},
			HasMore:  true,
		},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "timeline", view))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "&lt;test message 2&gt;")
	assert.Contains(t, body, "You were logged in")
	assert.Contains(t, body, `href="/foo"`)
	assert.Contains(t, body, "?p=1")
	assert.NotContains(t, body, "?p=-1")
}

func TestRenderLoginError(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusUnauthorized, "login", &View{Error: "Invalid password", Form: Form{Username: "foo"}}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
	assert.Contains(t, rec.Body.String(), `value="foo"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(httptest.NewRecorder(), http.StatusOK, "missing", &View{}))
}

func TestStaticHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "div.page")
}
