package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/http/response"
)

type RootHandler struct {
	message string
}

func NewRootHandler(appName string) *RootHandler {
	if appName == "" {
		appName = "Platziflix"
	}
	return &RootHandler{message: "Bienvenido a " + appName + " API"}
}

// GET /
func (h *RootHandler) Welcome(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": h.message})
}
