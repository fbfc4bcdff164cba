// Package config supplies default values for the command-line flags from
// the environment. Nothing is persisted; flags always win over the
// environment, and the environment wins over the built-in defaults.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Method    string
	Quality   int
	OutputDir string
	Jobs      int
}

func Load() Config {
	return Config{
		Method:    env("WIDESCREEN_METHOD", "crop"),
		Quality:   envInt("WIDESCREEN_QUALITY", 95),
		OutputDir: env("WIDESCREEN_OUTPUT_DIR", "output_16_9"),
		Jobs:      envInt("WIDESCREEN_JOBS", 1),
	}
}

func env(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
