package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External FX quote endpoint and refresh cadence.
	FXAPIURL          string
	FXRefreshInterval time.Duration
	FXFetchTimeout    time.Duration

	// FXFallbackRate is used when no live rate has ever been fetched. When nil,
	// financial writes fail hard with apperrors.ErrRateUnavailable instead of
	// converting at a stale constant.
	FXFallbackRate *decimal.Decimal

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "comerzia-backend")
	viper.SetDefault("FX_API_URL", "https://ve.dolarapi.com/v1/dolares")
	viper.SetDefault("FX_REFRESH_INTERVAL", "5m")
	viper.SetDefault("FX_FETCH_TIMEOUT", "10s")
	viper.SetDefault("FX_FALLBACK_RATE", "298.14")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.FXAPIURL = viper.GetString("FX_API_URL")

	refreshStr := viper.GetString("FX_REFRESH_INTERVAL")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		refresh = 5 * time.Minute
		log.Printf("Warning: Invalid value for FX_REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshStr, refresh)
	}
	cfg.FXRefreshInterval = refresh

	timeoutStr := viper.GetString("FX_FETCH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for FX_FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.FXFetchTimeout = timeout

	// An empty FX_FALLBACK_RATE disables the fallback: writes then require a
	// live rate. The shipped default preserves the historical constant.
	fallbackStr := viper.GetString("FX_FALLBACK_RATE")
	if fallbackStr != "" {
		fallback, err := decimal.NewFromString(fallbackStr)
		if err != nil || !fallback.IsPositive() {
			log.Printf("Warning: Invalid value for FX_FALLBACK_RATE ('%s'). Fallback disabled.\n", fallbackStr)
		} else {
			cfg.FXFallbackRate = &fallback
		}
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
