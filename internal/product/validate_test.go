package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookie() Record {
	return Record{
		FoodProduct:    "Cookie",
		MainIngredient: "Wheat",
		Sweetener:      "Sugar",
		FatOil:         "Butter",
		Seasoning:      "Salt",
		Allergens:      "Gluten",
		Price:          3.50,
		Rating:         4.2,
	}
}

func setText(r *Record, col, v string) {
	switch col {
	case ColFoodProduct:
		r.FoodProduct = v
	case ColMainIngredient:
		r.MainIngredient = v
	case ColSweetener:
		r.Sweetener = v
	case ColFatOil:
		r.FatOil = v
	case ColSeasoning:
		r.Seasoning = v
	case ColAllergens:
		r.Allergens = v
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"12", true},
		{"007", true},
		{"½", true},
		{"٣", true},
		{"五", true},
		{"十二", true},
		{"百", true},
		{"壹佰", true},
		{"五香", false},
		{"豆腐", false},
		{"3.5", false},
		{"-1", false},
		{" 12", false},
		{"Salt", false},
		{"Salt2", false},
		{"None", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNumeric(tt.in), "IsNumeric(%q)", tt.in)
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(cookie()))

	r := cookie()
	r.Sweetener = "None"
	r.Seasoning = "None"
	assert.Nil(t, Validate(r))
}

func TestValidate_NumericText(t *testing.T) {
	for _, col := range TextColumns {
		t.Run(col, func(t *testing.T) {
			r := cookie()
			setText(&r, col, "42")

			verr := Validate(r)
			require.NotNil(t, verr)
			assert.Equal(t, WarnFixErrors, verr.Warning)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, col, verr.Fields[0].Field)
			assert.Equal(t, col+" should not contain numbers.", verr.Fields[0].Message)
		})
	}
}

func TestValidate_CJKNumeral(t *testing.T) {
	r := cookie()
	r.FoodProduct = "五"

	verr := Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, WarnFixErrors, verr.Warning)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, ColFoodProduct, verr.Fields[0].Field)
}

func TestValidate_NumericBeatsEmpty(t *testing.T) {
	r := cookie()
	r.FoodProduct = "123"
	r.Allergens = ""

	verr := Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, WarnFixErrors, verr.Warning)
	assert.Len(t, verr.Fields, 1)
}

func TestValidate_Empty(t *testing.T) {
	for _, col := range TextColumns {
		t.Run(col, func(t *testing.T) {
			r := cookie()
			setText(&r, col, "")

			verr := Validate(r)
			require.NotNil(t, verr)
			assert.Equal(t, WarnFillFields, verr.Warning)
			assert.Empty(t, verr.Fields)
			assert.Equal(t, WarnFillFields, verr.Error())
		})
	}
}

func TestValidate_MultipleNumeric(t *testing.T) {
	r := cookie()
	r.Sweetener = "1"
	r.FatOil = "2"

	verr := Validate(r)
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, ColSweetener, verr.Fields[0].Field)
	assert.Equal(t, ColFatOil, verr.Fields[1].Field)
	assert.Contains(t, verr.Error(), "Fat/Oil should not contain numbers.")
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name                  string
		price, rating         float64
		wantPrice, wantRating float64
	}{
		{"in range", 3.5, 4.2, 3.5, 4.2},
		{"negative price", -1, 2, 0, 2},
		{"negative rating", 1, -0.5, 1, 0},
		{"rating above max", 1, 7, 1, MaxRating},
		{"bounds", 0, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cookie()
			r.Price, r.Rating = tt.price, tt.rating
			got := r.Clamp()
			assert.Equal(t, tt.wantPrice, got.Price)
			assert.Equal(t, tt.wantRating, got.Rating)
		})
	}
}

func TestColumns(t *testing.T) {
	r := cookie()
	cat := r.Categorical()
	assert.Len(t, cat, len(TextColumns))
	assert.Equal(t, "Butter", cat[ColFatOil])

	num := r.Numeric()
	assert.Len(t, num, len(NumericColumns))
	assert.Equal(t, 3.50, num[ColPrice])
	assert.Equal(t, 4.2, num[ColRating])
}
