package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted by the CLI.
const (
	EnvSSHAddr     = "SPACEDASH_SSH_ADDR"
	EnvGestureAddr = "SPACEDASH_GESTURE_ADDR"
	EnvDB          = "SPACEDASH_DB"
	EnvStore       = "SPACEDASH_STORE"
)

// LoadEnv loads variables from the given .env files (default ".env").
// A missing file is not an error; variables already set are kept.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
