package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

var ErrInvalidDatabaseConfig = errors.New("invalid database config")

// DatabaseConfig selects the store for users, subscribers and courses.
type DatabaseConfig struct {
	Type     DatabaseType   `json:"type"`
	SQLite   SQLiteConfig   `json:"sqlite"`
	Postgres PostgresConfig `json:"postgres"`
}

type SQLiteConfig struct {
	Path string `json:"path"`
}

// DSN opens the file in WAL mode with a shared cache.
func (c SQLiteConfig) DSN() string {
	return c.Path + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
	TimeZone string `json:"timeZone"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.SSLMode, c.TimeZone)
}

func (c PostgresConfig) validate() error {
	var errs []error
	required := map[string]string{"host": c.Host, "database": c.Database, "username": c.Username}
	for _, field := range []string{"host", "database", "username"} {
		if required[field] == "" {
			errs = append(errs, fmt.Errorf("%w: postgres %s is empty", ErrInvalidDatabaseConfig, field))
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: postgres port %d out of range", ErrInvalidDatabaseConfig, c.Port))
	}
	return errors.Join(errs...)
}

// GetDatabaseConfig reads CC_DB_* and CC_PG_* from the environment. Without
// them the site runs on a local SQLite file.
func GetDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type:   DatabaseType(getString("CC_DB_TYPE", string(DatabaseTypeSQLite))),
		SQLite: SQLiteConfig{Path: getString("CC_DB_PATH", defaultSQLitePath())},
		Postgres: PostgresConfig{
			Host:     getString("CC_PG_HOST", "localhost"),
			Port:     getInt("CC_PG_PORT", 5432),
			Database: getString("CC_PG_NAME", "recipe_db"),
			Username: getString("CC_PG_USER", "recipe"),
			Password: os.Getenv("CC_PG_PASSWORD"),
			SSLMode:  getString("CC_PG_SSLMODE", "disable"),
			TimeZone: getString("CC_PG_TIMEZONE", "UTC"),
		},
	}
}

func defaultSQLitePath() string {
	file := GetName() + ".db"
	if IsDebug() {
		return filepath.Join("db", file)
	}
	return filepath.Join("/etc", GetName(), file)
}

func (c *DatabaseConfig) GetDSN() string {
	if c.IsPostgreSQL() {
		return c.Postgres.DSN()
	}
	return c.SQLite.DSN()
}

func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite path is empty", ErrInvalidDatabaseConfig)
		}
		return nil
	case DatabaseTypePostgreSQL:
		return c.Postgres.validate()
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidDatabaseConfig, c.Type)
	}
}

func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

// EnsureDirectoryExists creates the folder of the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.IsPostgreSQL() {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
}
