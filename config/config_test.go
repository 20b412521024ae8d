package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CC_SESSION_SECRET", "CC_JWT_SECRET", "CC_LINK_CRON", "CC_DEBUG", "CC_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	assert.Equal(t, 3000, GetPort())
	assert.Equal(t, "secret_passcode", GetSessionSecret())
	assert.Equal(t, "secret_encoding_passphrase", GetJWTSecret())
	assert.Equal(t, "@every 5m", GetLinkCron())
	assert.Equal(t, Info, GetLogLevel())
	assert.Equal(t, "confetti", GetName())
	assert.NotEmpty(t, GetVersion())
}

func TestDefaultSecrets(t *testing.T) {
	t.Setenv("CC_SESSION_SECRET", "")
	t.Setenv("CC_JWT_SECRET", "")
	assert.Equal(t, []string{"CC_SESSION_SECRET", "CC_JWT_SECRET"}, DefaultSecrets())

	t.Setenv("CC_SESSION_SECRET", "changed")
	assert.Equal(t, []string{"CC_JWT_SECRET"}, DefaultSecrets())

	t.Setenv("CC_JWT_SECRET", "changed too")
	assert.Empty(t, DefaultSecrets())
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CC_SESSION_MAX_AGE", "10")
	t.Setenv("CC_DEBUG", "true")

	assert.Equal(t, 8080, GetPort())
	assert.Equal(t, 10, GetSessionMaxAge())
	assert.Equal(t, Debug, GetLogLevel())
	assert.Equal(t, "log", GetLogFolder())

	t.Setenv("PORT", "not-a-number")
	assert.Equal(t, 3000, GetPort())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CC_LINK_CRON=@hourly\n"), 0o600))
	t.Setenv("CC_LINK_CRON", "")
	require.NoError(t, os.Unsetenv("CC_LINK_CRON"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "@hourly", GetLinkCron())
}

func TestDatabaseConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatabaseConfig
		wantErr bool
	}{
		{"sqlite", DatabaseConfig{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: "db/x.db"}}, false},
		{"sqlite without path", DatabaseConfig{Type: DatabaseTypeSQLite}, true},
		{"postgres", DatabaseConfig{Type: DatabaseTypePostgreSQL, Postgres: PostgresConfig{Host: "h", Database: "d", Username: "u", Port: 5432}}, false},
		{"postgres bad port", DatabaseConfig{Type: DatabaseTypePostgreSQL, Postgres: PostgresConfig{Host: "h", Database: "d", Username: "u", Port: 70000}}, true},
		{"unknown type", DatabaseConfig{Type: "oracle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateConfig()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDatabaseConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: "db/x.db"}}
	assert.Equal(t, "db/x.db?cache=shared&_journal_mode=WAL&_synchronous=NORMAL", c.GetDSN())

	c = DatabaseConfig{Type: DatabaseTypePostgreSQL, Postgres: PostgresConfig{
		Host: "localhost", Port: 5432, Database: "recipe_db", Username: "recipe", Password: "pw", SSLMode: "disable", TimeZone: "UTC",
	}}
	assert.Equal(t, "host=localhost user=recipe password=pw dbname=recipe_db port=5432 sslmode=disable TimeZone=UTC", c.GetDSN())
	assert.True(t, c.IsPostgreSQL())
}
