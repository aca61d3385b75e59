package tracking_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/internal/testutil"
	"github.com/devtrack/engine/internal/tracking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()
	u := testutil.CreateUser(t, db, "rec@example.com")
	p := &models.Project{UserID: u.ID, Name: "Demo"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestRecordAppendsOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProject(t, db)
	ctx := context.Background()

	changes := []tracking.Change{{Field: "name", Old: "Demo", New: "Demo2"}}
	a, err := tracking.NewRecorder().Record(ctx, db, tracking.Updated(models.EntityProject, p.ID, p.ID, "Demo", changes))
	require.NoError(t, err)

	got, err := repository.NewActivityRepository(db).ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, models.ActivityUpdate, got[0].Type)
	assert.Equal(t, models.EntityProject, got[0].Entity)
	require.NotNil(t, got[0].EntityID)
	assert.Equal(t, p.ID, *got[0].EntityID)
	assert.Equal(t, "Project 'Demo' updated with Field 'name' changed from 'Demo' to 'Demo2'", got[0].Description)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(got[0].Changes, &stored))
	assert.Equal(t, []map[string]any{{"field": "name", "old": "Demo", "new": "Demo2"}}, stored)
}

func TestRecordWithoutEntityID(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProject(t, db)

	a, err := tracking.NewRecorder().Record(context.Background(), db, tracking.Entry{
		ProjectID:   p.ID,
		Kind:        models.ActivityCreate,
		Entity:      models.EntityProject,
		Description: "Project 'Demo' created",
	})
	require.NoError(t, err)

	var stored models.Activity
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	assert.Nil(t, stored.EntityID)
	assert.JSONEq(t, `[]`, string(stored.Changes))
}

func TestRecordRollsBackWithTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProject(t, db)
	boom := errors.New("boom")

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := tracking.NewRecorder().Record(context.Background(), tx, tracking.Created(models.EntityProject, p.ID, p.ID, "Demo")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecordPropagatesStoreFailure(t *testing.T) {
	db := testutil.NewDB(t)

	// No such project: the foreign key rejects the row.
	_, err := tracking.NewRecorder().Record(context.Background(), db, tracking.Created(models.EntityProject, uuid.New(), uuid.New(), "Ghost"))
	require.Error(t, err)
}

func TestActivitiesAreImmutable(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProject(t, db)
	a, err := tracking.NewRecorder().Record(context.Background(), db, tracking.Created(models.EntityProject, p.ID, p.ID, "Demo"))
	require.NoError(t, err)

	a.Description = "rewritten"
	require.ErrorIs(t, db.Save(a).Error, models.ErrActivityImmutable)
	require.ErrorIs(t, db.Delete(a).Error, models.ErrActivityImmutable)
}

func TestStatusChangedEntry(t *testing.T) {
	id := uuid.New()
	e := tracking.StatusChanged(models.EntityFeature, uuid.New(), id, "Login", "pending", "completed")

	assert.Equal(t, models.ActivityStatusChange, e.Kind)
	assert.Equal(t, "Feature 'Login' status updated to 'completed'", e.Description)
	assert.Equal(t, []tracking.Change{{Field: "status", Old: "pending", New: "completed"}}, e.Changes)
	assert.Equal(t, id, *e.EntityID)
}
