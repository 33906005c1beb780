package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelliallergen/intelliallergen/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// freePort returns a loopback port that was free a moment ago.
func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
}

func TestRun_FormReachesAPIThroughConfiguredURL(t *testing.T) {
	apiPort, uiPort := freePort(t), freePort(t)
	t.Setenv("PORT", "")
	t.Setenv("API_URL", "")
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("UI_HOST", "127.0.0.1")
	t.Setenv("API_PORT", apiPort)
	t.Setenv("UI_PORT", uiPort)
	t.Setenv("SHUTDOWN_TIMEOUT", "5")
	t.Setenv("MODEL_PATH", "../../models/allergen_detection.json")
	t.Setenv("ENCODER_PATH", "../../models/leave_one_out_encoder.json")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:"+apiPort+"/predict", cfg.Client.PredictURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	rc := resty.New().SetTimeout(5 * time.Second)
	uiURL := "http://" + cfg.UI.Addr() + "/"

	require.Eventually(t, func() bool {
		resp, err := rc.R().Get("http://" + cfg.UI.Addr() + "/health")
		return err == nil && resp.StatusCode() == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := rc.R().SetFormData(map[string]string{
		"food_product":    "Cookie",
		"main_ingredient": "Wheat",
		"sweetener":       "Sugar",
		"fat_oil":         "Butter",
		"seasoning":       "Salt",
		"allergens":       "Gluten",
		"price":           "3.50",
		"customer_rating": "4.2",
	}).Post(uiURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "Prediction: This product contains allergens.")
	assert.NotContains(t, resp.String(), "Error: ")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("servers did not shut down")
	}

	_, err = net.DialTimeout("tcp", cfg.API.Addr(), time.Second)
	assert.Error(t, err, "api listener should be closed")
	_, err = net.DialTimeout("tcp", cfg.UI.Addr(), time.Second)
	assert.Error(t, err, "ui listener should be closed")
}

func TestRun_MissingArtifacts(t *testing.T) {
	cfg := &config.Config{
		Model: config.ModelConfig{ClassifierPath: "missing.json", EncoderPath: "missing.json"},
	}
	err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "load model artifacts")
}
