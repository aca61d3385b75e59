package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/devtrack/engine/internal/migrations"
	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSQLiteProjectDeleteCascadesWithPlainDSN(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "dev.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, migrations.Run(db))

	u := &models.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	p := &models.Project{UserID: u.ID, Name: "Demo"}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Create(&models.Feature{WorkItem: models.WorkItem{ProjectID: p.ID, Description: "Login", Status: models.StatusPending}}).Error)
	require.NoError(t, db.Create(&models.Bug{WorkItem: models.WorkItem{ProjectID: p.ID, Description: "Crash", Status: models.StatusOpen}}).Error)
	require.NoError(t, db.Create(&models.Improvement{WorkItem: models.WorkItem{ProjectID: p.ID, Description: "Faster", Status: models.StatusPending}}).Error)
	require.NoError(t, db.Create(&models.Activity{ProjectID: p.ID, Type: models.ActivityCreate, Entity: models.EntityProject, Description: "Project 'Demo' created", Changes: []byte("[]")}).Error)

	require.NoError(t, db.Where("id = ?", p.ID).Delete(&models.Project{}).Error)

	require.Zero(t, count(t, db, &models.Feature{}))
	require.Zero(t, count(t, db, &models.Bug{}))
	require.Zero(t, count(t, db, &models.Improvement{}))
	require.Zero(t, count(t, db, &models.Activity{}))

	// Deleting the owner removes the rest of the tree.
	p2 := &models.Project{UserID: u.ID, Name: "Second"}
	require.NoError(t, db.Create(p2).Error)
	require.NoError(t, db.Where("id = ?", u.ID).Delete(&models.User{}).Error)
	require.Zero(t, count(t, db, &models.Project{}))
}
