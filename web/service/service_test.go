package service

import (
	"path/filepath"
	"testing"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })
}

func createUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	u := &model.User{
		Name:    model.Name{First: "Jon", Last: "Wexler"},
		Email:   email,
		ZipCode: 12345,
	}
	require.NoError(t, (&UserService{}).Create(u, password))
	return u
}

func createCourse(t *testing.T, title string, maxStudents int) *model.Course {
	t.Helper()
	c, err := (&CourseService{}).Create(CourseParams{
		Title:       title,
		Description: "A course about " + title,
		MaxStudents: maxStudents,
	})
	require.NoError(t, err)
	return c
}
