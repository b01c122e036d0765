package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

type likeRequest struct {
	// принимает и число, и строку с числом
	CafeID json.Number `json:"cafe_id"`
}

type likeResponse struct {
	CafeID int64 `json:"cafe_id"`
	Liked  bool  `json:"liked"`
}

// Like ставит лайк кафе от текущего пользователя. POST /api/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, true)
}

// Unlike снимает лайк. POST /api/unlike
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, false)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request, like bool) {
	user := CurrentUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not logged in", h.logger)
		return
	}
	if !validCSRF(r) {
		h.logger.Warn("like request with invalid csrf token", "user_id", user.ID)
		respondWithError(w, http.StatusForbidden, "invalid csrf token", h.logger)
		return
	}

	var req likeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	cafeID, err := req.CafeID.Int64()
	if err != nil || cafeID <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid cafe_id", h.logger)
		return
	}

	if like {
		err = h.likes.Like(r.Context(), user.ID, cafeID)
	} else {
		err = h.likes.Unlike(r.Context(), user.ID, cafeID)
	}
	if errors.Is(err, domain.ErrCafeNotFound) {
		respondWithError(w, http.StatusNotFound, "cafe not found", h.logger)
		return
	}
	if err != nil {
		h.logger.Error("failed to update like", "cafe_id", cafeID, "user_id", user.ID, "like", like, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update like", h.logger)
		return
	}

	h.logger.Info("like updated", "cafe_id", cafeID, "user_id", user.ID, "liked", like)
	respondWithJSON(w, http.StatusOK, likeResponse{CafeID: cafeID, Liked: like}, h.logger)
}

// LikeStatus сообщает, лайкнул ли текущий пользователь кафе. GET /api/likes?cafe_id=N
func (h *Handler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not logged in", h.logger)
		return
	}

	cafeID, err := strconv.ParseInt(r.URL.Query().Get("cafe_id"), 10, 64)
	if err != nil || cafeID <= 0 {
		h.logger.Warn("missing required parameter", "param", "cafe_id")
		respondWithError(w, http.StatusBadRequest, "invalid cafe_id", h.logger)
		return
	}

	if _, err := h.cafes.GetCafe(r.Context(), cafeID); err != nil {
		if errors.Is(err, domain.ErrCafeNotFound) {
			respondWithError(w, http.StatusNotFound, "cafe not found", h.logger)
			return
		}
		h.logger.Error("failed to get cafe", "cafe_id", cafeID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get cafe", h.logger)
		return
	}

	liked, err := h.likes.IsLiked(r.Context(), user.ID, cafeID)
	if err != nil {
		h.logger.Error("failed to check like", "cafe_id", cafeID, "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to check like", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, likeResponse{CafeID: cafeID, Liked: liked}, h.logger)
}
