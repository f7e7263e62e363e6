package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jdgomezdev/declaratax/internal/flagx"
	"github.com/jdgomezdev/declaratax/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP              string         `json:"endpoint_addr_http"`
	DatabaseDSN                   string         `json:"database_dsn"`
	SecretKey                     string         `json:"secret_key"`
	SessionValidityDuration       timex.Duration `json:"session_validity_duration"`
	RememberTokenValidityDuration timex.Duration `json:"remember_token_validity_duration"`
	CORSAllowedOrigins            []string       `json:"cors_allowed_origins"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no flag is set, nothing is
// loaded. If the file cannot be read or contains invalid JSON, the function
// panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.RememberTokenValidityDuration = time.Duration(c.RememberTokenValidityDuration.Duration)
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
}
