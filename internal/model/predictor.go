// Package model loads the allergen classifier and its categorical encoder and
// turns product records into predictions.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/intelliallergen/intelliallergen/internal/product"
)

var (
	ErrInvalidArtifact = errors.New("invalid model artifact")
	ErrSchemaMismatch  = errors.New("feature schema mismatch")
)

// Label is the classifier output. Zero means the product contains allergens.
type Label int

const ContainsAllergens Label = 0

func (l Label) ContainsAllergens() bool {
	return l == ContainsAllergens
}

// Message is the wording the API responds with.
func (l Label) Message() string {
	if l.ContainsAllergens() {
		return "This product contains allergens."
	}
	return "This product does not contain allergens."
}

// Banner is the wording the standalone form shows.
func (l Label) Banner() string {
	if l.ContainsAllergens() {
		return "❌ This product contains allergens. 🚨"
	}
	return "✅ This product does NOT contain allergens. 🎉"
}

// Predictor pairs a classifier with the encoder it was trained behind. It is
// immutable once built and safe for concurrent use.
type Predictor struct {
	classifier *Classifier
	encoder    *Encoder
}

// New checks that every classifier feature is either a numeric column or an
// encoder column.
func New(classifier *Classifier, encoder *Encoder) (*Predictor, error) {
	if err := classifier.validate(); err != nil {
		return nil, err
	}
	if err := encoder.validate(); err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, col := range product.NumericColumns {
		known[col] = true
	}
	for _, col := range encoder.Columns {
		known[col] = true
	}
	for _, f := range classifier.Features {
		if !known[f] {
			return nil, fmt.Errorf("%w: classifier feature %q is neither numeric nor encoded", ErrSchemaMismatch, f)
		}
	}

	return &Predictor{classifier: classifier, encoder: encoder}, nil
}

// Load reads both artifacts from disk.
func Load(classifierPath, encoderPath string) (*Predictor, error) {
	var clf Classifier
	if err := readJSON(classifierPath, &clf); err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	var enc Encoder
	if err := readJSON(encoderPath, &enc); err != nil {
		return nil, fmt.Errorf("load encoder: %w", err)
	}
	return New(&clf, &enc)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	return nil
}

// Features returns the feature names in model order.
func (p *Predictor) Features() []string {
	return append([]string(nil), p.classifier.Features...)
}

// Encode builds the classifier input for r: numeric columns as they are,
// text columns through the encoder.
func (p *Predictor) Encode(r product.Record) ([]float64, error) {
	encoded, err := p.encoder.Transform(r.Categorical())
	if err != nil {
		return nil, err
	}

	values := r.Numeric()
	for i, col := range p.encoder.Columns {
		values[col] = encoded[i]
	}

	x := make([]float64, len(p.classifier.Features))
	for i, f := range p.classifier.Features {
		v, ok := values[f]
		if !ok {
			return nil, fmt.Errorf("%w: no value for feature %q", ErrSchemaMismatch, f)
		}
		x[i] = v
	}
	return x, nil
}

// Predict encodes r and runs the classifier.
func (p *Predictor) Predict(r product.Record) (Label, error) {
	x, err := p.Encode(r)
	if err != nil {
		return 0, err
	}
	class, err := p.classifier.Predict(x)
	if err != nil {
		return 0, err
	}
	return Label(class), nil
}
