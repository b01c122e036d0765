package handler

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFS embed.FS

// NewRouter собирает chi-роутер со всеми маршрутами приложения.
func NewRouter(deps Dependencies, requestTimeout time.Duration) http.Handler {
	h := NewHandler(deps)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// без middleware.RealIP: лимитер входа считает клиентов по RemoteAddr
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(Sessions(deps.Sessions, deps.Tokens, deps.Users, deps.Cookies, deps.Logger))

		r.Get("/", h.Homepage)

		r.Get("/cafes", h.ListCafes)
		r.Get("/cafes/add", h.AddCafeForm)
		r.Post("/cafes/add", h.AddCafe)
		r.Get("/cafes/{id}", h.CafeDetail)
		r.Get("/cafes/{id}/edit", h.EditCafeForm)
		r.Post("/cafes/{id}/edit", h.EditCafe)

		r.Get("/signup", h.SignupForm)
		r.Get("/login", h.LoginForm)
		r.Group(func(r chi.Router) {
			if deps.LoginLimiter != nil {
				r.Use(RateLimit(deps.LoginLimiter, h.TooManyRequests))
			}
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})
		r.Post("/logout", h.Logout)

		r.Get("/profile", h.Profile)
		r.Get("/profile/edit", h.EditProfileForm)
		r.Post("/profile/edit", h.EditProfile)

		r.Post("/api/like", h.Like)
		r.Post("/api/unlike", h.Unlike)
		r.Get("/api/likes", h.LikeStatus)

		r.NotFound(h.NotFound)
	})

	return r
}
