package tracking

import (
	"context"
	"encoding/json"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/devtrack/engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is a single loggable event.
type Entry struct {
	ProjectID   uuid.UUID
	Kind        models.ActivityKind
	Entity      models.EntityKind
	EntityID    *uuid.UUID
	Description string
	Changes     []Change
}

// Recorder appends activity rows. Record must be given the transaction that
// carries the mutation; an error from it has to abort that transaction.
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, e Entry) (*models.Activity, error)
}

type recorder struct{}

func NewRecorder() Recorder { return recorder{} }

func (recorder) Record(ctx context.Context, tx *gorm.DB, e Entry) (*models.Activity, error) {
	a := &models.Activity{
		ProjectID:   e.ProjectID,
		Type:        e.Kind,
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		Description: e.Description,
	}
	changes := e.Changes
	if changes == nil {
		changes = []Change{}
	}
	b, err := json.Marshal(changes)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "encode activity changes failed")
	}
	a.Changes = datatypes.JSON(b)

	if err := repository.NewActivityRepository(tx).Append(ctx, a); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("activity recorded",
		zap.String("activity_id", a.ID.String()),
		zap.String("project_id", a.ProjectID.String()),
		zap.String("type", string(a.Type)),
		zap.String("entity", string(a.Entity)),
	)
	return a, nil
}

func Created(entity models.EntityKind, projectID, entityID uuid.UUID, label string) Entry {
	return Entry{
		ProjectID:   projectID,
		Kind:        models.ActivityCreate,
		Entity:      entity,
		EntityID:    &entityID,
		Description: DescribeCreate(entity, label),
	}
}

func Updated(entity models.EntityKind, projectID, entityID uuid.UUID, label string, changes []Change) Entry {
	return Entry{
		ProjectID:   projectID,
		Kind:        models.ActivityUpdate,
		Entity:      entity,
		EntityID:    &entityID,
		Description: DescribeUpdate(entity, label, changes),
		Changes:     changes,
	}
}

// StatusChanged carries the status transition as its only change; no
// clause list is rendered for it.
func StatusChanged(entity models.EntityKind, projectID, entityID uuid.UUID, label, oldStatus, newStatus string) Entry {
	return Entry{
		ProjectID:   projectID,
		Kind:        models.ActivityStatusChange,
		Entity:      entity,
		EntityID:    &entityID,
		Description: DescribeStatus(entity, label, newStatus),
		Changes:     []Change{{Field: "status", Old: oldStatus, New: newStatus}},
	}
}

func Deleted(entity models.EntityKind, projectID, entityID uuid.UUID, label string) Entry {
	return Entry{
		ProjectID:   projectID,
		Kind:        models.ActivityDelete,
		Entity:      entity,
		EntityID:    &entityID,
		Description: DescribeDelete(entity, label),
	}
}
