package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/internal/testutil"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	alice    *models.User
	bob      *models.User
	project  *models.Project
	feature  *models.Feature
	activity *models.Activity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{db: db}
	f.alice = testutil.CreateUser(t, db, "alice@example.com")
	f.bob = testutil.CreateUser(t, db, "bob@example.com")

	f.project = &models.Project{UserID: f.alice.ID, Name: "Demo", SetupSteps: models.StringList{"clone"}}
	require.NoError(t, db.Create(f.project).Error)

	f.feature = &models.Feature{WorkItem: models.WorkItem{ProjectID: f.project.ID, Description: "Login", Status: models.StatusPending}}
	require.NoError(t, db.Create(f.feature).Error)

	f.activity = &models.Activity{ProjectID: f.project.ID, Type: models.ActivityCreate, Entity: models.EntityProject, Description: "Project 'Demo' created", Changes: []byte("[]")}
	require.NoError(t, db.Create(f.activity).Error)
	return f
}

func TestProjectOwnershipScope(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewProjectRepository(f.db)
	ctx := context.Background()

	var p models.Project
	require.NoError(t, repo.GetOwned(ctx, f.project.ID, f.alice.ID, &p))
	assert.Equal(t, models.StringList{"clone"}, p.SetupSteps)

	err := repo.GetOwned(ctx, f.project.ID, f.bob.ID, &p)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = repo.DeleteOwned(ctx, f.project.ID, f.bob.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	list, err := repo.ListByUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectWithItems(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewProjectRepository(f.db)

	second := &models.Feature{WorkItem: models.WorkItem{ProjectID: f.project.ID, Description: "Signup", Status: models.StatusPending, Rank: -1}}
	require.NoError(t, f.db.Create(second).Error)

	var p models.Project
	require.NoError(t, repo.GetOwnedWithItems(context.Background(), f.project.ID, f.alice.ID, &p))
	require.Len(t, p.Features, 2)
	assert.Equal(t, "Signup", p.Features[0].Description)
	assert.Equal(t, "Login", p.Features[1].Description)
	assert.Empty(t, p.Bugs)
}

func TestDeleteProjectCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, repository.NewProjectRepository(f.db).DeleteOwned(ctx, f.project.ID, f.alice.ID))

	var n int64
	require.NoError(t, f.db.Model(&models.Feature{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.Activity{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestWorkItemOwnershipIsTransitive(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewFeatureRepository(f.db)
	ctx := context.Background()

	var got models.Feature
	require.NoError(t, repo.GetOwned(ctx, f.feature.ID, f.alice.ID, &got))
	assert.Equal(t, "Login", got.Description)
	assert.Equal(t, models.StringList{}, got.Tags)

	err := repo.GetOwned(ctx, f.feature.ID, f.bob.ID, &got)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	mine, err := repo.ListByUser(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := repo.ListByUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	// Other tables are isolated from features.
	var bug models.Bug
	err = repository.NewBugRepository(f.db).GetOwned(ctx, f.feature.ID, f.alice.ID, &bug)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestWorkItemUpdateStatusTouchesOnlyStatus(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewFeatureRepository(f.db)
	ctx := context.Background()

	// A stale in-memory edit must not leak through a status-only write.
	f.feature.Description = "not saved"
	require.NoError(t, repo.UpdateStatus(ctx, f.feature.ID, models.StatusCompleted))

	var got models.Feature
	require.NoError(t, repo.GetByID(ctx, f.feature.ID, &got))
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "Login", got.Description)

	err := repo.UpdateStatus(ctx, uuid.New(), models.StatusCompleted)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestActivityListingIsNewestFirstAndScoped(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewActivityRepository(f.db)
	ctx := context.Background()

	later := &models.Activity{ProjectID: f.project.ID, Type: models.ActivityUpdate, Entity: models.EntityProject, Description: "later", Changes: []byte("[]"), CreatedAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Append(ctx, later))

	list, err := repo.ListByUser(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "later", list[0].Description)

	list, err = repo.ListByUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	var a models.Activity
	err = repo.GetOwned(ctx, later.ID, f.bob.ID, &a)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	n, err := repo.CountByEntity(ctx, models.EntityProject, f.project.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserEmailIsUnique(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewUserRepository(f.db)

	err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", Name: "Alice", PasswordHash: "x"})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

	var u models.User
	require.NoError(t, repo.GetByEmail(context.Background(), "bob@example.com", &u))
	assert.Equal(t, f.bob.ID, u.ID)
}
