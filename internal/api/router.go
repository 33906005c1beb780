// Package api serves the prediction endpoint.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/intelliallergen/intelliallergen/internal/middleware"
	"github.com/intelliallergen/intelliallergen/internal/model"
)

// NewRouter wires POST /predict and GET /health.
func NewRouter(predictor *model.Predictor, corsOrigin string, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.CORS(corsOrigin))

	h := NewHandler(predictor, log)
	r.POST("/predict", h.Predict)
	r.GET("/health", h.Health)
	return r
}
