package config

import (
	"os"
	"strconv"
)

// Mode is the payment provisioning mode, resolved exactly once at startup.
type Mode string

const (
	// ModeLive calls the configured payment backend for deposit addresses.
	ModeLive Mode = "live"
	// ModeDemo serves a fixed placeholder address. Entered only when
	// PAYMENT_API_KEY is unset, and reported on /admin/payment so an
	// operator can always tell which branch is running.
	ModeDemo Mode = "demo"
)

type Config struct {
	Port          string
	AppEnv        string
	PublicBaseURL string
	DatabaseURL   string
	JWTSecret     string

	Network           string
	PaymentAPIURL     string
	PaymentAPIKey     string
	PaymentMode       Mode
	PayTimeoutSeconds int
	StrictAmount      bool
}

func New() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PaymentAPIURL: getEnv("PAYMENT_API_URL", "https://api.payserv.dev/v1"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),
	}

	// Testnet unless the deployment explicitly opts into mainnet.
	if getEnv("APP_NETWORK", "testnet") == "mainnet" {
		cfg.Network = "base"
	} else {
		cfg.Network = "base-sepolia"
	}

	if cfg.PaymentAPIKey == "" {
		cfg.PaymentMode = ModeDemo
	} else {
		cfg.PaymentMode = ModeLive
	}

	cfg.PayTimeoutSeconds = getEnvInt("PAYMENT_TIMEOUT_SECONDS", 300)
	cfg.StrictAmount = getEnv("PAYMENT_STRICT_AMOUNT", "false") == "true"

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
