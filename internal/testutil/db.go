// Package testutil opens throwaway migrated databases for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/devtrack/engine/internal/migrations"
	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/pkg/database"
	"github.com/devtrack/engine/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var loggerOnce sync.Once

// InitLogger installs an error-level logger so services can log during tests.
func InitLogger() {
	loggerOnce.Do(func() {
		if _, err := logger.Init("error", "json"); err != nil {
			panic("failed to init logger: " + err.Error())
		}
	})
}

// NewDB returns a migrated sqlite database in t's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	InitLogger()

	dsn := filepath.Join(t.TempDir(), "devtrack.db") + "?_pragma=busy_timeout(5000)"
	db, err := database.Open(context.Background(), database.Options{Driver: database.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: email, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}
