package appconf

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = 4000
	DefaultRateLimit    = 10
	DefaultSourceURL    = "https://api.worldbank.org/v2"
	DefaultFetchTimeout = 60 * time.Second
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
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

// StringEnv returns the value of key, or fallback when unset or empty.
func StringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IntEnv returns the integer value of key, or fallback when unset or unparsable.
func IntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// BoolEnv returns the boolean value of key ("true", "1", ...), or fallback.
func BoolEnv(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// DurationEnv returns the duration value of key (e.g. "30s"), or fallback.
func DurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
