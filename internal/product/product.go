package product

// Column names as the model artifacts know them.
const (
	ColFoodProduct    = "Food Product"
	ColMainIngredient = "Main Ingredient"
	ColSweetener      = "Sweetener"
	ColFatOil         = "Fat/Oil"
	ColSeasoning      = "Seasoning"
	ColAllergens      = "Allergens"
	ColPrice          = "Price ($)"
	ColRating         = "Customer rating"
)

// MaxRating is the top of the customer rating scale.
const MaxRating = 5.0

// TextColumns lists the categorical columns in form order.
var TextColumns = []string{
	ColFoodProduct,
	ColMainIngredient,
	ColSweetener,
	ColFatOil,
	ColSeasoning,
	ColAllergens,
}

// NumericColumns lists the columns that bypass the encoder.
var NumericColumns = []string{ColPrice, ColRating}

// Record is a single food product submitted for prediction.
type Record struct {
	FoodProduct    string  `json:"Food Product"`
	MainIngredient string  `json:"Main Ingredient"`
	Sweetener      string  `json:"Sweetener"`
	FatOil         string  `json:"Fat/Oil"`
	Seasoning      string  `json:"Seasoning"`
	Allergens      string  `json:"Allergens"`
	Price          float64 `json:"Price ($)"`
	Rating         float64 `json:"Customer rating"`
}

// Clamp returns a copy with price floored at zero and rating kept in [0, MaxRating].
func (r Record) Clamp() Record {
	if r.Price < 0 {
		r.Price = 0
	}
	switch {
	case r.Rating < 0:
		r.Rating = 0
	case r.Rating > MaxRating:
		r.Rating = MaxRating
	}
	return r
}

// Categorical returns the text columns keyed by column name.
func (r Record) Categorical() map[string]string {
	return map[string]string{
		ColFoodProduct:    r.FoodProduct,
		ColMainIngredient: r.MainIngredient,
		ColSweetener:      r.Sweetener,
		ColFatOil:         r.FatOil,
		ColSeasoning:      r.Seasoning,
		ColAllergens:      r.Allergens,
	}
}

// Numeric returns the numeric columns keyed by column name.
func (r Record) Numeric() map[string]float64 {
	return map[string]float64{
		ColPrice:  r.Price,
		ColRating: r.Rating,
	}
}
