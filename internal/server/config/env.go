package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Variables are
// typically provided via a .env file loaded with godotenv in main. Malformed
// duration values are ignored in favor of the current value.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ENDPOINT_ADDR_HTTP"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("SESSION_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("REMEMBER_TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RememberTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitOrigins(v)
	}
}
