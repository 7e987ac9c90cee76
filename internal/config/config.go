package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Event   EventConfig
	Booking BookingConfig
	Payment PaymentConfig
	Log     LogConfig
}

type EventConfig struct {
	Name string `validate:"required"`
	Rows int    `validate:"min=1,max=26"`
	Cols int    `validate:"min=1,max=99"`
}

type BookingConfig struct {
	MaxSeats int `validate:"min=1"`
}

type PaymentConfig struct {
	Steps             int           `validate:"min=0"`
	StepDelay         time.Duration `validate:"min=0"`
	SuccessRate       float64       `validate:"gte=0,lte=1"`
	RefundFailureRate float64       `validate:"gte=0,lte=1"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

const (
	defaultEventName = "College Cultural Night YAGVIK"
	defaultRows      = 4
	defaultCols      = 10
)

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	eventName := os.Getenv("EVENT_NAME")
	if eventName == "" {
		eventName = defaultEventName
	}

	rows, err := intEnv("EVENT_ROWS", defaultRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cols, err := intEnv("EVENT_COLS", defaultCols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	maxSeats, err := intEnv("MAX_SEATS_PER_BOOKING", 200)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	steps, err := intEnv("PROCESSING_STEPS", 3)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stepDelay := time.Second
	if v := os.Getenv("PROCESSING_STEP_DELAY"); v != "" {
		stepDelay, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid PROCESSING_STEP_DELAY: %w", op, err)
		}
	}

	successRate, err := floatEnv("PAYMENT_SUCCESS_RATE", 0.90)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refundFailureRate, err := floatEnv("REFUND_FAILURE_RATE", 0.05)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "warn"
	}

	cfg := &Config{
		Event: EventConfig{
			Name: eventName,
			Rows: rows,
			Cols: cols,
		},
		Booking: BookingConfig{
			MaxSeats: maxSeats,
		},
		Payment: PaymentConfig{
			Steps:             steps,
			StepDelay:         stepDelay,
			SuccessRate:       successRate,
			RefundFailureRate: refundFailureRate,
		},
		Log: LogConfig{
			Level: logLevel,
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// SlogLevel maps Log.Level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return f, nil
}
