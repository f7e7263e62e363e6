package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/jdgomezdev/declaratax/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   remember-token HMAC secret key
//	-t int      session validity, minutes
//	-r int      remember-token validity, minutes
//	-o string   comma-separated CORS origins
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with flags defined elsewhere.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")
	rememberValidityDuration := fs.Int("r", int(config.RememberTokenValidityDuration.Minutes()), "remember_token_validity_duration (in minutes)")

	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "comma-separated CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Minute
	config.RememberTokenValidityDuration = time.Duration(*rememberValidityDuration) * time.Minute
	config.CORSAllowedOrigins = splitOrigins(*origins)
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
