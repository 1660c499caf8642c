package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads and parses a .env file into a map of environment variables
func LoadEnvFile(filePath string) (map[string]string, error) {
	envVars, err := godotenv.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", filePath, err)
	}
	return envVars, nil
}

// ParseEnvOverrides merges an optional env file with KEY=VALUE pairs.
// Pairs are applied after the file so they win on conflicts.
func ParseEnvOverrides(envFile string, pairs []string) (map[string]string, error) {
	envVars := make(map[string]string)

	if envFile != "" {
		fileVars, err := LoadEnvFile(envFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileVars {
			envVars[k] = v
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid environment variable format: %s (expected KEY=VALUE)", pair)
		}
		envVars[key] = value
	}

	return envVars, nil
}
