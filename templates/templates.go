package templates

import (
	"bytes"
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"minitwit/models"
	"minitwit/services"
)

//go:embed *.html
var pages embed.FS

//go:embed static
var static embed.FS

// View is the data every page template receives.
type View struct {
	Title    string
	User     *models.User
	Flashes  []string
	Error    string
	Form     Form
	Endpoint string

	Timeline *services.Timeline
	Profile  *models.User
	Followed bool
}

// Form echoes submitted values back into a re-rendered form.
type Form struct {
	Username string
	Email    string
}

var funcs = template.FuncMap{
	"gravatar":       GravatarURL,
	"datetimeformat": FormatDatetime,
	"inc":            func(i int) int { return i + 1 },
	"dec":            func(i int) int { return i - 1 },
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{"timeline", "login", "register"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(pages, "layout.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, view *View) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded stylesheet under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// GravatarURL returns the identicon avatar for email.
func GravatarURL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("http://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), size)
}

func FormatDatetime(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format("2006-01-02 @ 15:04")
}
