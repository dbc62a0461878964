package sql

import (
	"testing"

	"github.com/fsdevblog/smartlink/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB поднимает чистую SQLite базу в памяти с миграциями.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.NewConnectionFactory(db.FactoryConfig{
		StorageType: db.StorageTypeSQLite,
		SQLitePath:  ":memory:",
	})
	require.NoError(t, err)
	return conn
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
