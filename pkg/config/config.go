package config

import (
	"time"
)

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02T15:04:05.000Z07:00"`
	Prefix     string `envconfig:"PREFIX" default:"[payment]"`
}

// Payout configures the provider the payout gateway talks to.
//
//revive:disable
type Payout struct {
	Provider    string        `envconfig:"PROVIDER" default:"paystack"`
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:4010"`
	ApiKey      string        `envconfig:"API_KEY"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

//revive:enable

// Breaker configures the circuit breaker wrapped around provider calls.
type Breaker struct {
	MaxRequests         uint32        `envconfig:"MAX_REQUESTS" default:"1"`
	Interval            time.Duration `envconfig:"INTERVAL" default:"60s"`
	Timeout             time.Duration `envconfig:"TIMEOUT" default:"30s"`
	ConsecutiveFailures uint32        `envconfig:"CONSECUTIVE_FAILURES" default:"5"`
}

type Metrics struct {
	Enabled   bool   `envconfig:"ENABLED" default:"true"`
	Namespace string `envconfig:"NAMESPACE" default:"paycore"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	Payout    *Payout    `envconfig:"PAYOUT"`
	Breaker   *Breaker   `envconfig:"BREAKER"`
	Metrics   *Metrics   `envconfig:"METRICS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
