package handlers

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"stackit/internal/middleware"
	"stackit/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// pageTemplates stands in for the real views; each page prints its key data.
const pageTemplates = `
{{define "error.html"}}error {{.Status}}: {{.Error}}{{end}}
{{define "auth/login.html"}}login {{.Error}}{{end}}
{{define "auth/register.html"}}register {{.Error}}{{end}}
{{define "question/list.html"}}{{range .Questions}}[{{.Title}}]{{end}}{{end}}
{{define "question/detail.html"}}{{.Question.Title}} {{.Body}}{{range .Answers}}<{{.HTML}}>{{end}}{{end}}
{{define "question/ask.html"}}ask {{.Error}}{{range .Tags}}({{.Name}}){{end}}{{end}}
{{define "notification/list.html"}}{{range .Notifications}}{{.Message}};{{end}}{{end}}
`

var (
	alice = &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	admin = &models.User{ID: 2, Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	guest = &models.User{ID: 3, Name: "Guest", Email: "guest@example.com", Role: models.RoleGuest}
)

// newTestEngine returns an engine where every request runs as user (nil for anonymous).
func newTestEngine(user *models.User) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(pageTemplates)))
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CurrentUserKey, user)
			c.Set(middleware.UnreadCountKey, int64(0))
		}
		c.Next()
	})
	r.NoRoute(NotFound)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}
