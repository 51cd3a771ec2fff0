package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	// APIURL overrides the upstream API root; empty means the live default
	APIURL string
	// APIKey is the literal bearer credential
	APIKey string
	// APIKeyID is a secret reference resolved through a SecretStore when no
	// literal credential is configured
	APIKeyID     string
	DebugEnabled bool
}

// SecretStore resolves secret references (api_key_id) to credential values.
// The second return value reports whether the reference was found.
type SecretStore interface {
	Get(id string) (string, bool)
}

// EnvSecretStore resolves secret references against environment variables
type EnvSecretStore struct{}

// Get looks up a secret reference as an environment variable
func (EnvSecretStore) Get(id string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(id))
	return value, value != ""
}

// LoadConfig loads configuration from environment variables
// .env file is automatically loaded via autoload import
func LoadConfig() *Config {
	config := &Config{
		APIURL:       getEnvWithDefault("STRIPETABLE_API_URL", ""),
		APIKey:       strings.TrimSpace(os.Getenv("STRIPETABLE_API_KEY")),
		APIKeyID:     getEnvWithDefault("STRIPETABLE_API_KEY_ID", ""),
		DebugEnabled: getBoolEnvWithDefault("DEBUG", false),
	}

	if config.DebugEnabled {
		fmt.Printf("🐛 DEBUG: request debug logging enabled\n")
	}

	return config
}

// ResolveAPIKey returns the bearer credential, preferring a literal api_key
// over an api_key_id resolved through the secret store
func (c *Config) ResolveAPIKey(secrets SecretStore) (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.APIKeyID != "" {
		if key, ok := secrets.Get(c.APIKeyID); ok {
			return key, nil
		}
		return "", fmt.Errorf("secret reference %q could not be resolved", c.APIKeyID)
	}
	return "", fmt.Errorf("no api_key or api_key_id configured")
}

// getEnvWithDefault gets an environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnvWithDefault gets a boolean environment variable with a default fallback
func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		fmt.Printf("🐛 DEBUG: Invalid boolean value for %s='%s', using default %t\n", key, value, defaultValue)
	}
	return defaultValue
}
