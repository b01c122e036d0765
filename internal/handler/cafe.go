package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/forms"
	"github.com/GoArmGo/CafeApp/internal/session"
)

// ListCafes — все кафе по алфавиту.
func (h *Handler) ListCafes(w http.ResponseWriter, r *http.Request) {
	cafes, err := h.cafes.ListCafes(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list cafes", err)
		return
	}

	p := h.page(r)
	p.Cafes = cafes
	h.render(w, r, http.StatusOK, pageCafeList, p)
}

// CafeDetail — карточка кафе; для вошедшего пользователя ещё и отметка лайка.
func (h *Handler) CafeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := cafeID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	cafe, err := h.cafes.GetCafe(r.Context(), id)
	if errors.Is(err, domain.ErrCafeNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to get cafe", err)
		return
	}

	p := h.page(r)
	p.Cafe = cafe
	if p.User != nil {
		liked, err := h.likes.IsLiked(r.Context(), p.User.ID, cafe.ID)
		if err != nil {
			h.logger.Error("failed to check like", "cafe_id", cafe.ID, "user_id", p.User.ID, "error", err)
		}
		p.Liked = liked
	}
	h.render(w, r, http.StatusOK, pageCafeDetail, p)
}

// AddCafeForm показывает пустую форму добавления кафе.
func (h *Handler) AddCafeForm(w http.ResponseWriter, r *http.Request) {
	h.renderCafeForm(w, r, pageCafeAdd, nil, forms.CafeForm{}, nil)
}

// AddCafe создаёт кафе и переходит на его страницу.
func (h *Handler) AddCafe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := forms.CafeFormFromValues(r.PostForm)
	errs, ok := h.validateCafeForm(w, r, form)
	if !ok {
		return
	}
	if !errs.Valid() {
		h.renderCafeForm(w, r, pageCafeAdd, nil, form, errs)
		return
	}

	cafe, err := h.cafes.AddCafe(r.Context(), form.Input())
	if errors.Is(err, domain.ErrCityNotFound) {
		h.renderCafeForm(w, r, pageCafeAdd, nil, form, forms.Errors{"city": "Not a valid choice."})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to add cafe", err)
		return
	}

	h.flashCurrent(r, session.FlashSuccess, fmt.Sprintf("%s added.", cafe.Name))
	redirect(w, r, fmt.Sprintf("/cafes/%d", cafe.ID))
}

// EditCafeForm показывает форму, заполненную текущими значениями кафе.
func (h *Handler) EditCafeForm(w http.ResponseWriter, r *http.Request) {
	cafe, ok := h.loadCafe(w, r)
	if !ok {
		return
	}
	h.renderCafeForm(w, r, pageCafeEdit, cafe, forms.CafeFormFromCafe(cafe.Cafe), nil)
}

// EditCafe перезаписывает поля кафе и переходит на его страницу.
func (h *Handler) EditCafe(w http.ResponseWriter, r *http.Request) {
	cafe, ok := h.loadCafe(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := forms.CafeFormFromValues(r.PostForm)
	errs, ok := h.validateCafeForm(w, r, form)
	if !ok {
		return
	}
	if !errs.Valid() {
		h.renderCafeForm(w, r, pageCafeEdit, cafe, form, errs)
		return
	}

	edited, err := h.cafes.EditCafe(r.Context(), cafe.ID, form.Input())
	switch {
	case errors.Is(err, domain.ErrCafeNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, domain.ErrCityNotFound):
		h.renderCafeForm(w, r, pageCafeEdit, cafe, form, forms.Errors{"city": "Not a valid choice."})
		return
	case err != nil:
		h.serverError(w, r, "failed to edit cafe", err)
		return
	}

	h.flashCurrent(r, session.FlashSuccess, fmt.Sprintf("%s edited.", edited.Name))
	redirect(w, r, fmt.Sprintf("/cafes/%d", edited.ID))
}

// loadCafe достаёт кафе по {id}; при false ответ уже отправлен.
func (h *Handler) loadCafe(w http.ResponseWriter, r *http.Request) (*domain.CafeDetails, bool) {
	id, ok := cafeID(r)
	if !ok {
		h.NotFound(w, r)
		return nil, false
	}

	cafe, err := h.cafes.GetCafe(r.Context(), id)
	if errors.Is(err, domain.ErrCafeNotFound) {
		h.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, "failed to get cafe", err)
		return nil, false
	}
	return cafe, true
}

// validateCafeForm проверяет форму по актуальному списку городов и CSRF-токен.
func (h *Handler) validateCafeForm(w http.ResponseWriter, r *http.Request, form forms.CafeForm) (forms.Errors, bool) {
	choices, err := h.cafes.CityChoices(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load city choices", err)
		return nil, false
	}

	errs := form.Validate(choices)
	if !validCSRF(r) {
		errs["csrf_token"] = csrfErrorMessage
	}
	return errs, true
}

// renderCafeForm рисует форму кафе; города загружаются заново при каждой отрисовке.
func (h *Handler) renderCafeForm(w http.ResponseWriter, r *http.Request, name string, cafe *domain.CafeDetails, form forms.CafeForm, errs forms.Errors) {
	choices, err := h.cafes.CityChoices(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load city choices", err)
		return
	}

	p := h.page(r)
	p.Cafe = cafe
	p.Form = form
	p.Errors = errs
	p.Cities = choices
	h.render(w, r, http.StatusOK, name, p)
}
