package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/http/response"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"github.com/platziflix/catalog-backend/internal/services"
)

type RatingHandler struct {
	log     *logger.Logger
	ratings services.RatingService
}

func NewRatingHandler(log *logger.Logger, ratings services.RatingService) *RatingHandler {
	return &RatingHandler{log: log.With("handler", "RatingHandler"), ratings: ratings}
}

type ratingRequest struct {
	UserID uint `json:"user_id" binding:"required,gt=0"`
	Rating int  `json:"rating" binding:"min=1,max=5"`
}

// POST /courses/:course/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	courseID, err := uintParam(c, "course")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	out, _, err := h.ratings.Submit(c.Request.Context(), courseID, req.UserID, req.Rating)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// GET /courses/:course/ratings
func (h *RatingHandler) List(c *gin.Context) {
	courseID, err := uintParam(c, "course")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := h.ratings.List(c.Request.Context(), courseID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /courses/:course/ratings/stats
func (h *RatingHandler) Stats(c *gin.Context) {
	courseID, err := uintParam(c, "course")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	stats, err := h.ratings.Stats(c.Request.Context(), courseID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// GET /courses/:course/ratings/user/:user_id
// 204 when the user has no active rating.
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	courseID, userID, ok := h.courseAndUser(c)
	if !ok {
		return
	}
	row, err := h.ratings.GetUserRating(c.Request.Context(), courseID, userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if row == nil {
		response.RespondNoContent(c)
		return
	}
	response.RespondOK(c, row)
}

// PUT /courses/:course/ratings/:user_id
func (h *RatingHandler) Update(c *gin.Context) {
	courseID, userID, ok := h.courseAndUser(c)
	if !ok {
		return
	}
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	if req.UserID != userID {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("user_id in body must match user_id in path"))
		return
	}
	out, err := h.ratings.Update(c.Request.Context(), courseID, userID, req.Rating)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /courses/:course/ratings/:user_id
func (h *RatingHandler) Delete(c *gin.Context) {
	courseID, userID, ok := h.courseAndUser(c)
	if !ok {
		return
	}
	deleted, err := h.ratings.Delete(c.Request.Context(), courseID, userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("No active rating found for user %d on course %d", userID, courseID))
		return
	}
	response.RespondNoContent(c)
}

func (h *RatingHandler) courseAndUser(c *gin.Context) (uint, uint, bool) {
	courseID, err := uintParam(c, "course")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return 0, 0, false
	}
	userID, err := uintParam(c, "user_id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return 0, 0, false
	}
	return courseID, userID, true
}
