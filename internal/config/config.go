package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
// Everything is read from environment variables.
type Config struct {
	API      ServerConfig
	UI       ServerConfig
	Model    ModelConfig
	Client   ClientConfig
	CORS     string
	LogLevel string
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type ModelConfig struct {
	ClassifierPath string
	EncoderPath    string
}

type ClientConfig struct {
	PredictURL string
	Timeout    time.Duration // zero means no timeout
}

// Load reads configuration from environment variables.
// When API_URL is unset the split UI posts to the API's own listen address.
func Load() (*Config, error) {
	var errs []error
	duration := func(key string, defaultSeconds int) time.Duration {
		d, err := getEnvAsDuration(key, time.Duration(defaultSeconds)*time.Second)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}

	readTimeout := duration("READ_TIMEOUT", 15)
	writeTimeout := duration("WRITE_TIMEOUT", 15)
	shutdownTimeout := duration("SHUTDOWN_TIMEOUT", 30)

	cfg := &Config{
		API: ServerConfig{
			Host:            getEnv("API_HOST", "127.0.0.1"),
			Port:            getEnv("PORT", getEnv("API_PORT", "5000")),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		UI: ServerConfig{
			Host:            getEnv("UI_HOST", "127.0.0.1"),
			Port:            getEnv("UI_PORT", "8501"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Model: ModelConfig{
			ClassifierPath: getEnv("MODEL_PATH", "models/allergen_detection.json"),
			EncoderPath:    getEnv("ENCODER_PATH", "models/leave_one_out_encoder.json"),
		},
		Client: ClientConfig{
			Timeout: duration("PREDICT_TIMEOUT", 0),
		},
		CORS:     getEnv("CORS_ORIGIN", "*"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	cfg.Client.PredictURL = getEnv("API_URL", PredictURL(cfg.API))

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// PredictURL is the /predict endpoint of an API listening per s. A wildcard
// host is reached through loopback.
func PredictURL(s ServerConfig) string {
	host := s.Host
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, s.Port) + "/predict"
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.Port == "" {
		return fmt.Errorf("API_PORT is required")
	}
	if c.UI.Port == "" {
		return fmt.Errorf("UI_PORT is required")
	}
	if c.Model.ClassifierPath == "" || c.Model.EncoderPath == "" {
		return fmt.Errorf("MODEL_PATH and ENCODER_PATH are required")
	}
	if c.Client.PredictURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.Client.Timeout < 0 || c.API.ReadTimeout < 0 || c.API.WriteTimeout < 0 || c.API.ShutdownTimeout < 0 ||
		c.UI.ReadTimeout < 0 || c.UI.WriteTimeout < 0 || c.UI.ShutdownTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts a bare number of seconds ("15") or a Go
// duration ("1m30s").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is neither seconds nor a duration", key, valueStr)
	}
	return d, nil
}
