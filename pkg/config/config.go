// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"time"
)

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds token signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Log holds logger settings.
type Log struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[yieldvault]"`
}

// Server holds HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Scheduler holds the batch job cadence. AccrualAt is the UTC wall-clock
// time the daily accrual fires; the referral processor runs every
// ReferralInterval.
type Scheduler struct {
	Enabled          bool          `envconfig:"ENABLED" default:"true"`
	AccrualAt        string        `envconfig:"ACCRUAL_AT" default:"00:10"`
	ReferralInterval time.Duration `envconfig:"REFERRAL_INTERVAL" default:"24h"`
}

// Referral holds referral bonus policy settings.
type Referral struct {
	BonusPercent float64 `envconfig:"BONUS_PERCENT" default:"2.0"`
	MaturityDays int     `envconfig:"MATURITY_DAYS" default:"90"`
}

// RateLimit holds API throttling settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// App is the root configuration.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	Scheduler *Scheduler `envconfig:"SCHEDULER"`
	Referral  *Referral  `envconfig:"REFERRAL"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
