package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intelliallergen/intelliallergen/internal/middleware"
	"github.com/intelliallergen/intelliallergen/internal/model"
	"github.com/intelliallergen/intelliallergen/internal/product"
)

// Input is the /predict request body. Pointers let binding tell a missing key
// from a zero value.
type Input struct {
	Price          *float64 `json:"Price ($)" binding:"required"`
	Rating         *float64 `json:"Customer rating" binding:"required"`
	FoodProduct    *string  `json:"Food Product" binding:"required"`
	MainIngredient *string  `json:"Main Ingredient" binding:"required"`
	Sweetener      *string  `json:"Sweetener" binding:"required"`
	FatOil         *string  `json:"Fat/Oil" binding:"required"`
	Seasoning      *string  `json:"Seasoning" binding:"required"`
	Allergens      *string  `json:"Allergens" binding:"required"`
}

// Record converts a bound Input.
func (in Input) Record() product.Record {
	return product.Record{
		FoodProduct:    *in.FoodProduct,
		MainIngredient: *in.MainIngredient,
		Sweetener:      *in.Sweetener,
		FatOil:         *in.FatOil,
		Seasoning:      *in.Seasoning,
		Allergens:      *in.Allergens,
		Price:          *in.Price,
		Rating:         *in.Rating,
	}
}

// Output is the /predict response body.
type Output struct {
	Prediction string `json:"Prediction"`
}

type Handler struct {
	predictor *model.Predictor
	log       *slog.Logger
}

func NewHandler(predictor *model.Predictor, log *slog.Logger) *Handler {
	return &Handler{predictor: predictor, log: log}
}

func (h *Handler) Predict(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warn("bad predict request", "error", err, "request_id", middleware.RequestIDFrom(c))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := input.Record().Clamp()
	if verr := product.Validate(rec); verr != nil {
		body := gin.H{"error": verr.Warning}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	label, err := h.predictor.Predict(rec)
	if err != nil {
		h.log.Error("prediction failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		msg := "prediction failed"
		if errors.Is(err, model.ErrSchemaMismatch) {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}

	h.log.Debug("prediction",
		"request_id", middleware.RequestIDFrom(c),
		"food_product", rec.FoodProduct,
		"label", int(label),
	)
	c.JSON(http.StatusOK, Output{Prediction: label.Message()})
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Features  []string  `json:"features"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Features:  h.predictor.Features(),
	})
}
