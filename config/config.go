// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the finlog server.
type Config struct {
	// Addr is the HTTP bind address.
	Addr string

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string

	// JWTSecret is the HMAC key for signing tokens. Required.
	JWTSecret string

	// TokenTTL is the token lifetime.
	TokenTTL time.Duration

	// TokenIssuer / TokenAudience are stamped into issued tokens when set.
	TokenIssuer   string
	TokenAudience string

	// StrictTokenClaims makes verification reject tokens whose iss/aud do
	// not match TokenIssuer/TokenAudience.
	StrictTokenClaims bool

	// OpenListing allows unauthenticated callers to list all transactions
	// on GET /transactions. Deployment policy, off by default.
	OpenListing bool

	// BcryptCost is the password hashing cost. 0 means the bcrypt default.
	BcryptCost int
}

// ErrMissingSecret is returned when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("JWT_SECRET is required")

// Load builds a Config from environment variables. A .env file in the
// working directory is read first if present; real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              envOr("ADDR", ":8080"),
		DatabaseDSN:       os.Getenv("POSTGRES_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(envInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		TokenIssuer:       os.Getenv("TOKEN_ISSUER"),
		TokenAudience:     os.Getenv("TOKEN_AUDIENCE"),
		StrictTokenClaims: envBool("TOKEN_STRICT_CLAIMS"),
		OpenListing:       envBool("OPEN_LISTING"),
		BcryptCost:        envInt("BCRYPT_COST", 0),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
