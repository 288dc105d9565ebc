package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds everything the API server needs, populated from the
// environment. A .env file is loaded by main before parsing.
type Config struct {
	Address     string        `env:"APP_ADDRESS" envDefault:":8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Midtrans Snap credentials. The client key is served to dashboards via
	// the app-settings endpoint; only the server key stays server-side.
	MidtransBaseURL   string `env:"MIDTRANS_BASE_URL" envDefault:"https://app.sandbox.midtrans.com"`
	MidtransAPIURL    string `env:"MIDTRANS_API_URL" envDefault:"https://api.sandbox.midtrans.com"`
	MidtransServerKey string `env:"MIDTRANS_SERVER_KEY"`
	MidtransClientKey string `env:"MIDTRANS_CLIENT_KEY"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
