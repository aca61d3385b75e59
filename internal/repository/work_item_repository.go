package repository

import (
	"context"
	"fmt"

	"github.com/devtrack/engine/internal/models"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkItemRepository serves the features, bugs and improvements tables.
// Ownership is transitive: rows are visible only through a project the user owns.
type WorkItemRepository[T any] interface {
	BaseRepository[T]
	GetOwned(ctx context.Context, id, userID uuid.UUID, dest *T) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]T, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type workItemRepository[T any, PT models.TrackablePtr[T]] struct {
	BaseRepository[T]
	db    *gorm.DB
	table string
	kind  models.EntityKind
}

func NewWorkItemRepository[T any, PT models.TrackablePtr[T]](db *gorm.DB) WorkItemRepository[T] {
	var zero T
	return &workItemRepository[T, PT]{
		BaseRepository: NewBaseRepository[T](db),
		db:             db,
		table:          PT(&zero).TableName(),
		kind:           PT(&zero).Kind(),
	}
}

func NewFeatureRepository(db *gorm.DB) WorkItemRepository[models.Feature] {
	return NewWorkItemRepository[models.Feature](db)
}

func NewBugRepository(db *gorm.DB) WorkItemRepository[models.Bug] {
	return NewWorkItemRepository[models.Bug](db)
}

func NewImprovementRepository(db *gorm.DB) WorkItemRepository[models.Improvement] {
	return NewWorkItemRepository[models.Improvement](db)
}

func (r *workItemRepository[T, PT]) owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(r.table).
		Select(r.table+".*").
		Joins(fmt.Sprintf("JOIN projects ON projects.id = %s.project_id", r.table)).
		Where("projects.user_id = ?", userID)
}

func (r *workItemRepository[T, PT]) GetOwned(ctx context.Context, id, userID uuid.UUID, dest *T) error {
	if err := r.owned(ctx, userID).Where(r.table+".id = ?", id).Take(dest).Error; err != nil {
		return notFoundOr(err, string(r.kind)+" not found", "get "+string(r.kind)+" failed")
	}
	return nil
}

func (r *workItemRepository[T, PT]) ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error) {
	var out []T
	if err := r.owned(ctx, userID).Order(r.table + ".created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+r.table+" failed")
	}
	return out, nil
}

// ListByProject does not check ownership; callers resolve the project first.
func (r *workItemRepository[T, PT]) ListByProject(ctx context.Context, projectID uuid.UUID) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order(rankOrder).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+r.table+" by project failed")
	}
	return out, nil
}

// UpdateStatus writes only the status column.
func (r *workItemRepository[T, PT]) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	var zero T
	res := r.db.WithContext(ctx).Model(PT(&zero)).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update "+string(r.kind)+" status failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, string(r.kind)+" not found")
	}
	return nil
}
