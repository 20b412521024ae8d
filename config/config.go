// Package config reads the runtime configuration of the site from the
// environment, optionally seeded from a .env file.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 3000
	defaultSessionSecret = "secret_passcode"
	defaultJWTSecret     = "secret_encoding_passphrase"
	defaultSessionMaxAge = 66 // minutes
	defaultLinkCron      = "@every 5m"
	defaultLoginRate     = 20
)

// LoadEnvFile loads variables from the given .env files (or ./.env) into the
// process environment. Variables already set are left untouched.
func LoadEnvFile(files ...string) error {
	return godotenv.Load(files...)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("CC_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("CC_DEBUG") == "true"
}

func GetLogFolder() string {
	if folder := os.Getenv("CC_LOG_FOLDER"); folder != "" {
		return folder
	}
	if IsDebug() {
		return "log"
	}
	return "/var/log/" + GetName()
}

// GetListen returns the IP the web server binds to; empty means all interfaces.
func GetListen() string {
	return os.Getenv("CC_LISTEN")
}

func GetPort() int {
	return getInt("PORT", defaultPort)
}

func GetSessionSecret() string {
	return getString("CC_SESSION_SECRET", defaultSessionSecret)
}

// GetSessionMaxAge returns the session cookie lifetime in minutes.
func GetSessionMaxAge() int {
	return getInt("CC_SESSION_MAX_AGE", defaultSessionMaxAge)
}

func GetJWTSecret() string {
	return getString("CC_JWT_SECRET", defaultJWTSecret)
}

// DefaultSecrets lists the secret variables still running on their built-in
// values.
func DefaultSecrets() []string {
	var names []string
	if GetSessionSecret() == defaultSessionSecret {
		names = append(names, "CC_SESSION_SECRET")
	}
	if GetJWTSecret() == defaultJWTSecret {
		names = append(names, "CC_JWT_SECRET")
	}
	return names
}

// GetRedisAddr returns the Redis address for the session store. Empty keeps
// sessions in signed cookies, "embedded" starts an in-process server.
func GetRedisAddr() string {
	return os.Getenv("CC_REDIS_ADDR")
}

func GetLinkCron() string {
	return getString("CC_LINK_CRON", defaultLinkCron)
}

// GetLoginRateLimit returns the allowed login attempts per client and minute.
// It only applies when redis is configured; zero disables it.
func GetLoginRateLimit() int {
	return getInt("CC_LOGIN_RATE", defaultLoginRate)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
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
