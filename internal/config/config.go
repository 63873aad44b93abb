// Package config loads runtime settings from the environment. A .env file
// in the working directory is read first if present; real environment
// variables win over it. Command-line flags override both.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Env var names.
const (
	EnvLogFile   = "BIDCALC_LOG_FILE"
	EnvLogLevel  = "BIDCALC_LOG_LEVEL"
	EnvClipboard = "BIDCALC_CLIPBOARD"
)

// Defaults.
const (
	DefaultLogFile   = ".bidcalc-logs/bidcalc.log"
	DefaultLogLevel  = "normal"
	DefaultClipboard = "auto"
)

// Config holds the settings read from .env and the environment.
type Config struct {
	// LogFile is a path, or "stderr" to log to the console.
	LogFile   string
	LogLevel  string
	Clipboard string
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are skipped.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return Config{
		LogFile:   env(EnvLogFile, DefaultLogFile),
		LogLevel:  env(EnvLogLevel, DefaultLogLevel),
		Clipboard: env(EnvClipboard, DefaultClipboard),
	}, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
