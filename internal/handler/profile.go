package handler

import (
	"net/http"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/forms"
	"github.com/GoArmGo/CafeApp/internal/session"
)

const notLoggedInMessage = "You are not logged in."

// requireUser возвращает текущего пользователя; без него отправляет на /login.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user := CurrentUser(r.Context())
	if user == nil {
		h.flashCurrent(r, session.FlashInfo, notLoggedInMessage)
		redirect(w, r, "/login")
		return nil, false
	}
	return user, true
}

// Profile — страница профиля с понравившимися кафе.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	liked, err := h.likes.LikedCafes(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, "failed to list liked cafes", err)
		return
	}

	p := h.page(r)
	p.LikedCafes = liked
	h.render(w, r, http.StatusOK, pageProfile, p)
}

// EditProfileForm показывает форму профиля с текущими данными.
func (h *Handler) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	p := h.page(r)
	p.Form = forms.ProfileFormFromUser(*user)
	h.render(w, r, http.StatusOK, pageProfileEdit, p)
}

// EditProfile сохраняет профиль и возвращает на /profile.
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := forms.ProfileFormFromValues(r.PostForm)
	errs := form.Validate()
	if !validCSRF(r) {
		errs["csrf_token"] = csrfErrorMessage
	}
	if !errs.Valid() {
		p := h.page(r)
		p.Form = form
		p.Errors = errs
		h.render(w, r, http.StatusOK, pageProfileEdit, p)
		return
	}

	if _, err := h.users.UpdateProfile(r.Context(), user.ID, form.Input()); err != nil {
		h.serverError(w, r, "failed to edit profile", err)
		return
	}

	h.flashCurrent(r, session.FlashSuccess, "Profile edited.")
	redirect(w, r, "/profile")
}
