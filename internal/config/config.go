// Package config loads server settings from the environment.
//
// Precedence: command-line flags bound by the CLI, then environment
// variables (a .env file in the working directory is loaded first and never
// overrides variables already set), then the defaults below.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Keys, also the environment variable names.
const (
	KeyHost            = "HOST"
	KeyPort            = "PORT"
	KeyBasePath        = "BASE_PATH"
	KeyClientOrigin    = "CLIENT_ORIGIN"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	KeyCatalogFile     = "CATALOG_FILE"
	KeyCatalogDB       = "CATALOG_DB"
	KeyAssetsDir       = "ASSETS_DIR"
	KeyRequestTimeout  = "REQUEST_TIMEOUT"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
	KeyTTSVoice        = "TTS_VOICE"
)

// Config holds all server settings.
type Config struct {
	Host            string
	Port            string
	BasePath        string // always begins and ends with "/"
	ClientOrigin    string
	LogLevel        string
	LogFormat       string // "json" or "console"
	CatalogFile     string
	CatalogDB       string
	AssetsDir       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	TTSVoice        string
}

// Addr is the listen address.
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// LoadDotEnv loads .env from the working directory into the process
// environment. Variables already set win; a missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// New returns a viper instance with defaults and environment binding.
// Environment lookups happen on each Get, so variables loaded later by
// LoadDotEnv are still seen.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyPort, "5173")
	v.SetDefault(KeyBasePath, "/pinyin-game/")
	v.SetDefault(KeyClientOrigin, "http://localhost:5173")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyCatalogFile, "")
	v.SetDefault(KeyCatalogDB, "")
	v.SetDefault(KeyAssetsDir, "")
	v.SetDefault(KeyRequestTimeout, 10*time.Second)
	v.SetDefault(KeyShutdownTimeout, 5*time.Second)
	v.SetDefault(KeyTTSVoice, "cmn-CN-Wavenet-C")
	v.AutomaticEnv()
	return v
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		Host:            v.GetString(KeyHost),
		Port:            v.GetString(KeyPort),
		BasePath:        NormalizeBasePath(v.GetString(KeyBasePath)),
		ClientOrigin:    v.GetString(KeyClientOrigin),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		CatalogFile:     v.GetString(KeyCatalogFile),
		CatalogDB:       v.GetString(KeyCatalogDB),
		AssetsDir:       v.GetString(KeyAssetsDir),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		TTSVoice:        v.GetString(KeyTTSVoice),
	}
}

// NormalizeBasePath forces a leading and trailing slash: "app" -> "/app/".
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// SetupLogging applies the level and format to the global zerolog logger.
// Unknown levels leave the current level untouched.
func SetupLogging(c Config) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(c.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
