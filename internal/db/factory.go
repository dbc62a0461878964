package db

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/smartlink/internal/models"
	"gorm.io/gorm"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
)

type FactoryConfig struct {
	StorageType StorageType
	PostgresDSN string
	SQLitePath  string
}

// NewConnectionFactory создает подключение к базе данных и прогоняет миграции.
func NewConnectionFactory(config FactoryConfig) (*gorm.DB, error) {
	var conn *gorm.DB
	var connErr error

	switch config.StorageType {
	case StorageTypePostgres:
		if config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		conn, connErr = newPostgresConnection(config.PostgresDSN)
	case StorageTypeSQLite:
		if config.SQLitePath == "" {
			return nil, errors.New("sqlite path is empty")
		}
		conn, connErr = newSQLiteConnection(config.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}

	if connErr != nil {
		return nil, connErr
	}

	if migrateErr := migrateSchema(conn); migrateErr != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
	}
	return conn, nil
}

// migrateSchema выполняет авто-миграцию. Полноценные миграции тут не нужны,
// схема маленькая и обратной совместимости от нее никто не требует.
func migrateSchema(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Mapping{},
		&models.Rule{},
		&models.Visit{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
