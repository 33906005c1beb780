package ui

import (
	"context"
	"errors"

	"github.com/intelliallergen/intelliallergen/internal/client"
	"github.com/intelliallergen/intelliallergen/internal/model"
	"github.com/intelliallergen/intelliallergen/internal/product"
)

// Backend turns a validated record into the text shown as the result.
type Backend interface {
	Predict(ctx context.Context, r product.Record) (string, error)
}

// Local predicts in-process.
type Local struct {
	Predictor *model.Predictor
}

func (l Local) Predict(_ context.Context, r product.Record) (string, error) {
	label, err := l.Predictor.Predict(r)
	if err != nil {
		return "", err
	}
	return label.Banner(), nil
}

// Remote predicts through the HTTP API.
type Remote struct {
	Client *client.Client
}

func (rm Remote) Predict(ctx context.Context, r product.Record) (string, error) {
	pred, err := rm.Client.Predict(ctx, r)
	if err != nil {
		return "", err
	}
	return "Prediction: " + pred, nil
}

// errorText is what the page shows when a backend fails.
func errorText(err error) string {
	if errors.Is(err, client.ErrPredictionFailed) {
		return "Failed to get prediction from API"
	}
	return "Error: " + err.Error()
}
