// Package database owns the gorm connection shared by the services.
package database

import (
	"errors"
	"strings"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db       *gorm.DB
	dbConfig *config.DatabaseConfig
)

func initModels() error {
	models := []any{
		&model.Subscriber{},
		&model.Course{},
		&model.User{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func openDialector(cfg *config.DatabaseConfig) gorm.Dialector {
	if cfg.IsPostgreSQL() {
		return postgres.Open(cfg.GetDSN())
	}
	return sqlite.Open(cfg.GetDSN())
}

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                                   gormLogger,
		SkipDefaultTransaction:                   true,
		PrepareStmt:                              true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var err error
	db, err = gorm.Open(openDialector(cfg), c)
	if err != nil {
		return err
	}
	dbConfig = cfg

	if !cfg.IsPostgreSQL() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		for _, pragma := range []string{
			"PRAGMA cache_size = -64000;",
			"PRAGMA temp_store = MEMORY;",
		} {
			if _, err := sqlDB.Exec(pragma); err != nil {
				return err
			}
		}
	}

	return initModels()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if dbConfig != nil && !dbConfig.IsPostgreSQL() {
		if err := Checkpoint(); err != nil {
			logger.Warningf("error executing checkpoint: %v", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err comes from a unique index violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// IsValidation reports whether err is a model validation failure and returns it.
func IsValidation(err error) (*model.ValidationError, bool) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
