// Package ui serves the product form and renders predictions.
package ui

import (
	"embed"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intelliallergen/intelliallergen/internal/middleware"
	"github.com/intelliallergen/intelliallergen/internal/product"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page controls the look of the form.
type Page struct {
	Title         string
	Heading       string
	Subtitle      string
	Theme         string // "light" or "night"
	Button        string
	ShowAbout     bool
	Author        string // credited in the about panel and footer
	DefaultRating float64
}

// IntelliAllergen is the standalone predictor's page.
var IntelliAllergen = Page{
	Title:     "IntelliAllergen - Allergen Detection App",
	Heading:   "🍽️ IntelliAllergen - Allergen Detection App",
	Subtitle:  "Welcome to IntelliAllergen! 🌱 📋 Enter the Product Details & ensure you're Safe",
	Theme:     "light",
	Button:    "🔍 Predict Allergens 🚀",
	ShowAbout: true,
	Author:    "Sarvesh Kumar Roy",
}

// SafeBite is the page of the split client/server variant.
var SafeBite = Page{
	Title:         "IntelliAllergen - Allergen Detection",
	Heading:       "SafeBite AI",
	Subtitle:      "Predict if your food product is allergen-free and ensure safety with every bite.",
	Theme:         "night",
	Button:        "🔍 Predict",
	DefaultRating: 3.0,
}

// Form field names.
const (
	fieldPrice  = "price"
	fieldRating = "customer_rating"
)

type textInput struct {
	Column string
	Name   string
	Icon   string
}

var textInputs = []textInput{
	{product.ColFoodProduct, "food_product", "🥘"},
	{product.ColMainIngredient, "main_ingredient", "🌾"},
	{product.ColSweetener, "sweetener", "🍯"},
	{product.ColFatOil, "fat_oil", "🧈"},
	{product.ColSeasoning, "seasoning", "🧂"},
	{product.ColAllergens, "allergens", "⚠️"},
}

type fieldView struct {
	textInput
	Value string
	Error string
}

type view struct {
	Page
	Fields  []fieldView
	Price   string
	Rating  string
	Warning string
	Result  string
	Error   string
}

type Handler struct {
	backend Backend
	page    Page
	log     *slog.Logger
}

func NewHandler(backend Backend, page Page, log *slog.Logger) *Handler {
	return &Handler{backend: backend, page: page, log: log}
}

// NewRouter serves the form at "/".
func NewRouter(backend Backend, page Page, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	h := NewHandler(backend, page, log)
	r.GET("/", h.Form)
	r.POST("/", h.Submit)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (h *Handler) Form(c *gin.Context) {
	v := view{Page: h.page, Rating: formatFloat(h.page.DefaultRating), Price: formatFloat(0)}
	for _, in := range textInputs {
		v.Fields = append(v.Fields, fieldView{textInput: in})
	}
	c.HTML(http.StatusOK, "form.html", v)
}

func (h *Handler) Submit(c *gin.Context) {
	rec, numbersOK := parseForm(c)
	rec = rec.Clamp()

	v := view{Page: h.page, Price: c.PostForm(fieldPrice), Rating: c.PostForm(fieldRating)}
	if numbersOK {
		v.Price, v.Rating = formatFloat(rec.Price), formatFloat(rec.Rating)
	}
	values := rec.Categorical()
	for _, in := range textInputs {
		v.Fields = append(v.Fields, fieldView{textInput: in, Value: values[in.Column]})
	}

	verr := product.Validate(rec)
	if verr == nil && !numbersOK {
		verr = &product.ValidationError{Warning: product.WarnFillFields}
	}
	if verr != nil {
		v.Warning = verr.Warning
		for _, fe := range verr.Fields {
			for i := range v.Fields {
				if v.Fields[i].Column == fe.Field {
					v.Fields[i].Error = fe.Message
				}
			}
		}
		c.HTML(http.StatusOK, "form.html", v)
		return
	}

	result, err := h.backend.Predict(c.Request.Context(), rec)
	if err != nil {
		h.log.Error("prediction failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		v.Error = errorText(err)
		c.HTML(http.StatusOK, "form.html", v)
		return
	}
	v.Result = result
	c.HTML(http.StatusOK, "form.html", v)
}

// parseForm reads the posted form. The second result is false when a number
// is missing or unparsable.
func parseForm(c *gin.Context) (product.Record, bool) {
	price, priceOK := parseNumber(c.PostForm(fieldPrice))
	rating, ratingOK := parseNumber(c.PostForm(fieldRating))

	text := make(map[string]string, len(textInputs))
	for _, in := range textInputs {
		text[in.Column] = c.PostForm(in.Name)
	}

	return product.Record{
		FoodProduct:    text[product.ColFoodProduct],
		MainIngredient: text[product.ColMainIngredient],
		Sweetener:      text[product.ColSweetener],
		FatOil:         text[product.ColFatOil],
		Seasoning:      text[product.ColSeasoning],
		Allergens:      text[product.ColAllergens],
		Price:          price,
		Rating:         rating,
	}, priceOK && ratingOK
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
