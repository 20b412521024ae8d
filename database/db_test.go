package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "db", "test.db")},
	}
	require.NoError(t, InitDB(cfg))
	t.Cleanup(func() { _ = CloseDB() })
}

func TestInitDB(t *testing.T) {
	setupTestDB(t)

	require.NotNil(t, GetDB())
	for _, table := range []string{"users", "subscribers", "courses", "user_courses", "subscriber_courses"} {
		assert.True(t, GetDB().Migrator().HasTable(table), table)
	}
}

func TestInitDBRejectsBadConfig(t *testing.T) {
	err := InitDB(&config.DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)
}

func TestErrorHelpers(t *testing.T) {
	setupTestDB(t)
	db := GetDB()

	var u model.User
	err := db.First(&u, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsDuplicate(err))

	require.NoError(t, db.Create(&model.Subscriber{Name: "a", Email: "a@example.com"}).Error)
	err = db.Create(&model.Subscriber{Name: "b", Email: "a@example.com"}).Error
	assert.True(t, IsDuplicate(err))

	err = db.Create(&model.Subscriber{Email: "c@example.com"}).Error
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Subscriber", ve.Model)

	_, ok = IsValidation(errors.New("other"))
	assert.False(t, ok)
	assert.False(t, IsDuplicate(nil))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
}
