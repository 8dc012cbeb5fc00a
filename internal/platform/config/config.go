package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration

	// The single staff identity. There is exactly one; no staff
	// registration exists. Externalized here instead of compiled in, but
	// the access model stays one static pair.
	StaffUsername string
	StaffPassword string

	// RedisURL selects the shared persistence medium. Empty means
	// in-memory stores (single-process, volatile).
	RedisURL string

	// PaymentDelay is the simulated card processing time.
	PaymentDelay time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          getenv("PETHEAVEN_ADDR", ":8080"),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		StaffUsername: getenv("STAFF_USERNAME", "staff"),
		StaffPassword: getenv("STAFF_PASSWORD", "staff123"),
		RedisURL:      os.Getenv("REDIS_URL"),
		PaymentDelay:  getDuration("PAYMENT_DELAY", time.Second),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
