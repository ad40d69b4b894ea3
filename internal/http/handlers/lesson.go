package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/http/response"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"github.com/platziflix/catalog-backend/internal/services"
)

type LessonHandler struct {
	log     *logger.Logger
	courses services.CourseService
}

func NewLessonHandler(log *logger.Logger, courses services.CourseService) *LessonHandler {
	return &LessonHandler{log: log.With("handler", "LessonHandler"), courses: courses}
}

type classResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Video       string `json:"video"`
	// Duration is not tracked yet.
	Duration int `json:"duration"`
}

// GET /classes/:id
func (h *LessonHandler) GetClass(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson, err := h.courses.LessonByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if lesson == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("Class with id %d not found", id))
		return
	}
	response.RespondOK(c, classResponse{
		ID:          lesson.ID,
		Title:       lesson.Name,
		Description: lesson.Description,
		Slug:        lesson.Slug,
		Video:       lesson.VideoURL,
	})
}
