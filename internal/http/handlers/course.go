package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/http/response"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"github.com/platziflix/catalog-backend/internal/services"
)

type CourseHandler struct {
	log     *logger.Logger
	courses services.CourseService
}

func NewCourseHandler(log *logger.Logger, courses services.CourseService) *CourseHandler {
	return &CourseHandler{log: log.With("handler", "CourseHandler"), courses: courses}
}

type courseListItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Thumbnail     string  `json:"thumbnail"`
	Slug          string  `json:"slug"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

type courseLessonItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type courseDetailResponse struct {
	ID                 uint               `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Thumbnail          string             `json:"thumbnail"`
	Slug               string             `json:"slug"`
	TeacherIDs         []uint             `json:"teacher_id"`
	Classes            []courseLessonItem `json:"classes"`
	AverageRating      float64            `json:"average_rating"`
	TotalRatings       int64              `json:"total_ratings"`
	RatingDistribution map[int]int64      `json:"rating_distribution"`
}

// GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	items, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	out := make([]courseListItem, 0, len(items))
	for _, it := range items {
		out = append(out, courseListItem{
			ID:            it.Course.ID,
			Name:          it.Course.Name,
			Description:   it.Course.Description,
			Thumbnail:     it.Course.Thumbnail,
			Slug:          it.Course.Slug,
			AverageRating: it.Stats.AverageRating,
			TotalRatings:  it.Stats.TotalRatings,
		})
	}
	response.RespondOK(c, out)
}

// GET /courses/:course
func (h *CourseHandler) GetCourseBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("course"))
	detail, err := h.courses.CourseBySlug(c.Request.Context(), slug)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if detail == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("Course with slug %q not found", slug))
		return
	}
	response.RespondOK(c, toCourseDetailResponse(detail))
}

func toCourseDetailResponse(d *catalog.CourseDetail) courseDetailResponse {
	teacherIDs := d.TeacherIDs
	if teacherIDs == nil {
		teacherIDs = []uint{}
	}
	classes := make([]courseLessonItem, 0, len(d.Lessons))
	for _, l := range d.Lessons {
		classes = append(classes, courseLessonItem{ID: l.ID, Name: l.Name, Description: l.Description, Slug: l.Slug})
	}
	return courseDetailResponse{
		ID:                 d.Course.ID,
		Name:               d.Course.Name,
		Description:        d.Course.Description,
		Thumbnail:          d.Course.Thumbnail,
		Slug:               d.Course.Slug,
		TeacherIDs:         teacherIDs,
		Classes:            classes,
		AverageRating:      d.Stats.AverageRating,
		TotalRatings:       d.Stats.TotalRatings,
		RatingDistribution: d.Stats.RatingDistribution,
	}
}
