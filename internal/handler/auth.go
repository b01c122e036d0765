package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/forms"
	"github.com/GoArmGo/CafeApp/internal/session"
)

// SignupForm показывает форму регистрации.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	p := h.page(r)
	p.Form = forms.SignupForm{}
	h.render(w, r, http.StatusOK, pageSignup, p)
}

// Signup регистрирует пользователя и сразу выполняет вход.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := forms.SignupFormFromValues(r.PostForm)
	errs := form.Validate()
	if !validCSRF(r) {
		errs["csrf_token"] = csrfErrorMessage
	}
	if !errs.Valid() {
		h.renderSignup(w, r, form, errs)
		return
	}

	user, err := h.users.SignUp(r.Context(), form.Params())
	if errors.Is(err, domain.ErrUsernameTaken) {
		h.flashCurrent(r, session.FlashWarning, "Username already taken.")
		h.renderSignup(w, r, form, nil)
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to sign up", err)
		return
	}

	sess, err := h.login(w, r, user)
	if err != nil {
		h.serverError(w, r, "failed to log in new user", err)
		return
	}

	h.flash(r, sess.ID, session.FlashSuccess, "You are signed up and logged in.")
	redirect(w, r, "/cafes")
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, form forms.SignupForm, errs forms.Errors) {
	form.Password = ""
	p := h.page(r)
	p.Form = form
	p.Errors = errs
	h.render(w, r, http.StatusOK, pageSignup, p)
}

// LoginForm показывает форму входа.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	p := h.page(r)
	p.Form = forms.LoginForm{}
	h.render(w, r, http.StatusOK, pageLogin, p)
}

// Login проверяет логин и пароль и привязывает пользователя к сессии.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := forms.LoginFormFromValues(r.PostForm)
	errs := form.Validate()
	if !validCSRF(r) {
		errs["csrf_token"] = csrfErrorMessage
	}
	if !errs.Valid() {
		h.renderLogin(w, r, form, errs)
		return
	}

	user, err := h.users.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		// сбой хранилища для пользователя выглядит как обычный неудачный вход
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Error("failed to authenticate", "username", form.Username, "error", err)
		} else {
			h.logger.Info("invalid credentials", "username", form.Username)
		}
		h.flashCurrent(r, session.FlashDanger, "Invalid credentials")
		h.renderLogin(w, r, form, nil)
		return
	}

	sess, err := h.login(w, r, user)
	if err != nil {
		h.serverError(w, r, "failed to log in", err)
		return
	}

	h.flash(r, sess.ID, session.FlashSuccess, fmt.Sprintf("Hello, %s!", user.Username))
	redirect(w, r, "/cafes")
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, form forms.LoginForm, errs forms.Errors) {
	form.Password = ""
	p := h.page(r)
	p.Form = form
	p.Errors = errs
	h.render(w, r, http.StatusOK, pageLogin, p)
}

// Logout отвязывает пользователя от сессии.
// Без вошедшего пользователя или с неверным CSRF-токеном сессия не меняется.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r.Context())
	if CurrentUser(r.Context()) == nil || !validCSRF(r) {
		h.logger.Warn("unauthorized logout attempt")
		h.flashCurrent(r, session.FlashDanger, "Access unauthorized.")
		redirect(w, r, "/")
		return
	}

	if err := h.sessions.UnbindUser(r.Context(), sess.ID); err != nil {
		h.serverError(w, r, "failed to log out", err)
		return
	}

	h.logger.Info("user logged out", "user_id", sess.UserID)
	h.flash(r, sess.ID, session.FlashSuccess, "You have successfully logged out")
	redirect(w, r, "/cafes")
}

// login заводит новую сессию с привязанным пользователем и выдаёт её cookie.
// Старая анонимная сессия больше не используется.
func (h *Handler) login(w http.ResponseWriter, r *http.Request, user *domain.User) (*session.Data, error) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := h.sessions.BindUser(r.Context(), sess.ID, user.ID); err != nil {
		return nil, fmt.Errorf("bind user to session: %w", err)
	}

	token, err := h.tokens.Sign(sess.ID)
	if err != nil {
		return nil, err
	}
	setSessionCookie(w, h.cookies, token)

	sess.UserID = user.ID
	h.logger.Info("user logged in", "user_id", user.ID)
	return sess, nil
}
