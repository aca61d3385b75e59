package repository

import (
	"context"

	"github.com/devtrack/engine/internal/models"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository is append-only: there is no update or delete.
type ActivityRepository interface {
	Append(ctx context.Context, a *models.Activity) error
	GetOwned(ctx context.Context, id, userID uuid.UUID, dest *models.Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Activity, error)
	CountByEntity(ctx context.Context, entity models.EntityKind, entityID uuid.UUID) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Append returns datastore errors wrapped but never swallowed, so the
// surrounding transaction rolls back the mutation it describes.
func (r *activityRepository) Append(ctx context.Context, a *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "append activity failed")
	}
	return nil
}

func (r *activityRepository) owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Select("activities.*").
		Joins("JOIN projects ON projects.id = activities.project_id").
		Where("projects.user_id = ?", userID)
}

func (r *activityRepository) GetOwned(ctx context.Context, id, userID uuid.UUID, dest *models.Activity) error {
	if err := r.owned(ctx, userID).Where("activities.id = ?", id).Take(dest).Error; err != nil {
		return notFoundOr(err, "activity not found", "get activity failed")
	}
	return nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	var out []models.Activity
	if err := r.owned(ctx, userID).Order("activities.created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list activities failed")
	}
	return out, nil
}

func (r *activityRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Activity, error) {
	var out []models.Activity
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list project activities failed")
	}
	return out, nil
}

func (r *activityRepository) CountByEntity(ctx context.Context, entity models.EntityKind, entityID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Where("entity = ? AND entity_id = ?", entity, entityID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count activities failed")
	}
	return n, nil
}
