//go:build integration

package services_test

import (
	"context"
	"testing"

	"github.com/devtrack/engine/internal/migrations"
	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/internal/services"
	"github.com/devtrack/engine/internal/testutil"
	"github.com/devtrack/engine/internal/tracking"
	"github.com/devtrack/engine/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestLifecycleOnPostgres(t *testing.T) {
	testutil.InitLogger()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("devtrack"),
		tcpostgres.WithUsername("devtrack"),
		tcpostgres.WithPassword("devtrack"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, database.Options{Driver: database.DriverPostgres, DSN: dsn, MaxRetries: 5})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	alice := testutil.CreateUser(t, db, "alice@example.com")
	rec := tracking.NewRecorder()
	projects := services.NewProjectService(db, repository.NewProjectRepository(db), rec)
	features := services.NewFeatureService(db, rec)

	p, err := projects.CreateProject(ctx, alice.ID, &services.CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)
	_, err = projects.UpdateProject(ctx, p.ID, alice.ID, tracking.NewPatch().Set("name", "Demo2"))
	require.NoError(t, err)
	f, err := features.Create(ctx, alice.ID, &services.CreateWorkItemInput{ProjectID: p.ID, Description: "Login", Rank: 2})
	require.NoError(t, err)
	_, err = features.UpdateStatus(ctx, f.ID, alice.ID, models.StatusCompleted)
	require.NoError(t, err)

	acts, err := projects.ListProjectActivities(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Feature 'Login' status updated to 'completed'",
		"Feature 'Login' created",
		"Project 'Demo' updated with Field 'name' changed from 'Demo' to 'Demo2'",
		"Project 'Demo' created",
	}, descriptions(t, acts))

	// Ordering by the quoted rank column must work on a real server.
	got, err := projects.GetProject(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got.Features, 1)

	require.NoError(t, projects.DeleteProject(ctx, p.ID, alice.ID))
	assert.Zero(t, countRows(t, db, &models.Activity{}))
}
