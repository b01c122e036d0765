package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/session"
	"github.com/GoArmGo/CafeApp/internal/usecase"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// CookieConfig — параметры cookie сессии
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// DefaultCookieName — имя cookie с токеном сессии
const DefaultCookieName = "cafe_session"

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func setSessionCookie(w http.ResponseWriter, cfg CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Sessions разрешает сессию и текущего пользователя один раз на запрос
// и кладёт их в контекст (CurrentSession, CurrentUser).
// Нет cookie, подпись не сошлась или сессия истекла — заводится новая анонимная сессия.
// ID пользователя, которого больше нет в бд, даёт анонимный запрос.
func Sessions(
	store ports.SessionStore,
	tokens *session.TokenCodec,
	users usecase.UserUseCase,
	cookies CookieConfig,
	logger *slog.Logger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess := loadSession(r, store, tokens, cookies, logger)
			if sess == nil {
				created, err := store.Create(ctx)
				if err != nil {
					logger.Error("failed to create session", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				token, err := tokens.Sign(created.ID)
				if err != nil {
					logger.Error("failed to sign session token", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				setSessionCookie(w, cookies, token)
				sess = created
			}

			ctx = withSession(ctx, sess)

			if sess.Authenticated() {
				user, err := users.GetUser(ctx, sess.UserID)
				switch {
				case err == nil:
					ctx = withUser(ctx, user)
				case errors.Is(err, domain.ErrUserNotFound):
					logger.Warn("session bound to missing user", "user_id", sess.UserID)
				default:
					logger.Error("failed to resolve session user", "user_id", sess.UserID, "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loadSession возвращает сессию из cookie или nil, если её нужно завести заново.
func loadSession(r *http.Request, store ports.SessionStore, tokens *session.TokenCodec, cookies CookieConfig, logger *slog.Logger) *session.Data {
	cookie, err := r.Cookie(cookies.name())
	if err != nil || cookie.Value == "" {
		return nil
	}

	id, err := tokens.Parse(cookie.Value)
	if err != nil {
		logger.Debug("rejected session token", "error", err)
		return nil
	}

	sess, err := store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			logger.Error("failed to load session", "error", err)
		}
		return nil
	}
	return sess
}
