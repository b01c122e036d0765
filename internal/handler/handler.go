package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/session"
	"github.com/GoArmGo/CafeApp/internal/usecase"
)

// HealthChecker проверяет доступность базы данных.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies — всё, что нужно обработчикам и роутеру.
type Dependencies struct {
	Cafes    usecase.CafeUseCase
	Users    usecase.UserUseCase
	Likes    usecase.LikeUseCase
	Sessions ports.SessionStore
	Tokens   *session.TokenCodec
	Renderer Renderer
	Health   HealthChecker
	Cookies  CookieConfig

	// LoginLimiter ограничивает POST /login и POST /signup; nil — без ограничения
	LoginLimiter *IPRateLimiter

	Logger *slog.Logger
}

// Handler — обработчик HTTP-запросов справочника кафе.
type Handler struct {
	cafes    usecase.CafeUseCase
	users    usecase.UserUseCase
	likes    usecase.LikeUseCase
	sessions ports.SessionStore
	tokens   *session.TokenCodec
	renderer Renderer
	health   HealthChecker
	cookies  CookieConfig
	logger   *slog.Logger
}

// NewHandler создаёт новый экземпляр Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		cafes:    deps.Cafes,
		users:    deps.Users,
		likes:    deps.Likes,
		sessions: deps.Sessions,
		tokens:   deps.Tokens,
		renderer: deps.Renderer,
		health:   deps.Health,
		cookies:  deps.Cookies,
		logger:   deps.Logger,
	}
}

// page собирает общие данные страницы и забирает накопленные flash-сообщения.
func (h *Handler) page(r *http.Request) *Page {
	p := &Page{User: CurrentUser(r.Context())}

	sess := CurrentSession(r.Context())
	if sess == nil {
		return p
	}
	p.CSRFToken = sess.CSRFToken

	flashes, err := h.sessions.PopFlashes(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("failed to pop flashes", "error", err)
	}
	p.Flashes = flashes
	return p
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p *Page) {
	if err := h.renderer.Render(w, status, name, p); err != nil {
		h.logger.Error("failed to render page", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// flash откладывает сообщение до следующей отрисованной страницы.
func (h *Handler) flash(r *http.Request, sessionID, category, message string) {
	if err := h.sessions.AddFlash(r.Context(), sessionID, session.Flash{Category: category, Message: message}); err != nil {
		h.logger.Error("failed to add flash", "error", err)
	}
}

func (h *Handler) flashCurrent(r *http.Request, category, message string) {
	if sess := CurrentSession(r.Context()); sess != nil {
		h.flash(r, sess.ID, category, message)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}

// NotFound отдаёт страницу 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageNotFound, h.page(r))
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	h.render(w, r, http.StatusInternalServerError, pageServerError, h.page(r))
}

// TooManyRequests отдаёт страницу 429.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusTooManyRequests, pageTooMany, h.page(r))
}

// validCSRF сверяет токен из формы или заголовка X-CSRF-Token с токеном сессии.
func validCSRF(r *http.Request) bool {
	sess := CurrentSession(r.Context())
	if sess == nil || sess.CSRFToken == "" {
		return false
	}

	token := r.Header.Get("X-CSRF-Token")
	if token == "" {
		token = r.PostFormValue("csrf_token")
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRFToken)) == 1
}

const csrfErrorMessage = "The CSRF token is missing or invalid."

// cafeID разбирает {id} из пути; нечисловой id — false.
func cafeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// Healthz проверяет соединение с базой.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Homepage — главная страница.
func (h *Handler) Homepage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageHomepage, h.page(r))
}
