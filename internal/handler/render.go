package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/forms"
	"github.com/GoArmGo/CafeApp/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// Имена страниц
const (
	pageHomepage    = "homepage.html"
	pageCafeList    = "cafe/list.html"
	pageCafeDetail  = "cafe/detail.html"
	pageCafeAdd     = "cafe/add-form.html"
	pageCafeEdit    = "cafe/edit-form.html"
	pageSignup      = "auth/signup-form.html"
	pageLogin       = "auth/login-form.html"
	pageProfile     = "profile/detail.html"
	pageProfileEdit = "profile/edit-form.html"
	pageNotFound    = "errors/404.html"
	pageTooMany     = "errors/429.html"
	pageServerError = "errors/500.html"
)

var pages = []string{
	pageHomepage,
	pageCafeList,
	pageCafeDetail,
	pageCafeAdd,
	pageCafeEdit,
	pageSignup,
	pageLogin,
	pageProfile,
	pageProfileEdit,
	pageNotFound,
	pageTooMany,
	pageServerError,
}

// Page — данные для шаблона. Общие поля заполняет Handler.page,
// остальные — конкретный обработчик.
type Page struct {
	User      *domain.User
	CSRFToken string
	Flashes   []session.Flash

	Form   any
	Errors forms.Errors
	Cities []domain.CityChoice

	Cafes      []domain.CafeDetails
	Cafe       *domain.CafeDetails
	Liked      bool
	LikedCafes []domain.Cafe
}

// Renderer отрисовывает страницу с заданным статусом.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page *Page) error
}

// TemplateRenderer рендерит встроенные html/template шаблоны.
// Каждая страница парсится вместе с layout.html и partials.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").ParseFS(templatesFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, page *Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	// рендерим в буфер, чтобы ошибка шаблона не оставила полстраницы с кодом 200
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
