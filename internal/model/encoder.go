package model

import (
	"fmt"
)

// CategoryStat holds the target statistics a category was fitted with.
type CategoryStat struct {
	Sum   float64 `json:"sum"`
	Count float64 `json:"count"`
}

// Encoder is a fitted leave-one-out target encoder.
//
// At inference time there is no target to leave out, so a known category
// encodes to its fitted target mean and anything else encodes to the global
// mean.
type Encoder struct {
	Columns []string                           `json:"columns"`
	Mean    float64                            `json:"mean"`
	Stats   map[string]map[string]CategoryStat `json:"stats"`
}

func (e *Encoder) validate() error {
	if len(e.Columns) == 0 {
		return fmt.Errorf("%w: encoder has no columns", ErrInvalidArtifact)
	}
	seen := make(map[string]bool, len(e.Columns))
	for _, col := range e.Columns {
		if seen[col] {
			return fmt.Errorf("%w: encoder column %q listed twice", ErrInvalidArtifact, col)
		}
		seen[col] = true
	}
	for col, stats := range e.Stats {
		if !seen[col] {
			return fmt.Errorf("%w: encoder stats for unknown column %q", ErrInvalidArtifact, col)
		}
		for cat, s := range stats {
			if s.Count < 0 {
				return fmt.Errorf("%w: encoder column %q category %q has negative count", ErrInvalidArtifact, col, cat)
			}
		}
	}
	return nil
}

// Value encodes a single category of col.
func (e *Encoder) Value(col, category string) float64 {
	s, ok := e.Stats[col][category]
	if !ok || s.Count <= 0 {
		return e.Mean
	}
	return s.Sum / s.Count
}

// Transform encodes values in Columns order. Every column must be present.
func (e *Encoder) Transform(values map[string]string) ([]float64, error) {
	out := make([]float64, len(e.Columns))
	for i, col := range e.Columns {
		v, ok := values[col]
		if !ok {
			return nil, fmt.Errorf("%w: missing categorical column %q", ErrSchemaMismatch, col)
		}
		out[i] = e.Value(col, v)
	}
	return out, nil
}
