package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/titanic/api/internal/model"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	predictor *model.Predictor
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictor *model.Predictor) *HealthHandler {
	return &HealthHandler{predictor: predictor}
}

// Health returns liveness plus whether the model artifact is loaded
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.predictor != nil,
	})
}
