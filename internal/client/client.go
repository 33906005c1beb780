// Package client calls a remote prediction API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/intelliallergen/intelliallergen/internal/product"
)

// NoPrediction is returned when the API answers 200 without a Prediction key.
const NoPrediction = "No prediction available"

// ErrPredictionFailed means the API answered with a non-200 status.
var ErrPredictionFailed = errors.New("failed to get prediction from API")

type Client struct {
	url  string
	http *resty.Client
}

// New creates a client posting to predictURL. A zero timeout means none.
func New(predictURL string, timeout time.Duration) *Client {
	rc := resty.New()
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &Client{url: predictURL, http: rc}
}

type result struct {
	Prediction *string `json:"Prediction"`
}

// Predict posts r to the API and returns its Prediction string.
func (c *Client) Predict(ctx context.Context, r product.Record) (string, error) {
	var out result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(r).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", c.url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrPredictionFailed, resp.StatusCode())
	}
	if out.Prediction == nil {
		return NoPrediction, nil
	}
	return *out.Prediction, nil
}
