package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the broker credentials
const (
	EnvNangoClientID    = "NANGO_CLIENT_ID"
	EnvNangoSecretKey   = "NANGO_SECRET_KEY"
	EnvNangoCallbackURL = "NANGO_CALLBACK_URL"
)

// Broker defaults
const (
	DefaultNangoBaseURL      = "https://api.nango.dev"
	DefaultProviderConfigKey = "twitter-v2"
	DefaultTimeoutSeconds    = 30
)

// ErrMissingVariable matches any *ConfigError via errors.Is
var ErrMissingVariable = errors.New("missing environment variable")

// ConfigError is returned when a required environment variable is absent
type ConfigError struct {
	Variable string
}

func (e *ConfigError) Error() string {
	return "missing environment variable: " + e.Variable
}

// Is reports whether target is ErrMissingVariable
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingVariable
}

// NangoConfig holds the credentials of an established Nango connection.
// The caller owns it and passes it by pointer to the token client.
type NangoConfig struct {
	ClientID    string
	SecretKey   string
	CallbackURL string
}

// LoadNangoConfig reads NANGO_CLIENT_ID, NANGO_SECRET_KEY and NANGO_CALLBACK_URL
// in that order and stops at the first one that is not set. Values are trimmed;
// an empty value is accepted as long as the variable exists.
func LoadNangoConfig() (*NangoConfig, error) {
	clientID, err := lookupTrimmed(EnvNangoClientID)
	if err != nil {
		return nil, err
	}
	secretKey, err := lookupTrimmed(EnvNangoSecretKey)
	if err != nil {
		return nil, err
	}
	callbackURL, err := lookupTrimmed(EnvNangoCallbackURL)
	if err != nil {
		return nil, err
	}
	return &NangoConfig{
		ClientID:    clientID,
		SecretKey:   secretKey,
		CallbackURL: callbackURL,
	}, nil
}

func lookupTrimmed(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", &ConfigError{Variable: name}
	}
	return strings.TrimSpace(value), nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already present in the process environment. A missing file is not an error
// when optional is true.
func LoadEnvFile(path string, optional bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil && optional && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
