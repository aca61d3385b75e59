package repository

import (
	"context"

	"github.com/devtrack/engine/internal/models"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rank is reserved in MySQL 8, so it is always emitted quoted.
var rankOrder = clause.OrderByColumn{Column: clause.Column{Name: "rank"}}

// ProjectRepository scopes every lookup to the owning user.
type ProjectRepository interface {
	BaseRepository[models.Project]
	GetOwned(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error
	GetOwnedWithItems(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	DeleteOwned(ctx context.Context, projectID, userID uuid.UUID) error
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) GetOwned(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error {
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", projectID, userID).First(dest).Error; err != nil {
		return notFoundOr(err, "project not found", "get project failed")
	}
	return nil
}

func (r *projectRepository) GetOwnedWithItems(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error {
	if err := withItems(r.db.WithContext(ctx)).Where("id = ? AND user_id = ?", projectID, userID).First(dest).Error; err != nil {
		return notFoundOr(err, "project not found", "get project failed")
	}
	return nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	if err := withItems(r.db.WithContext(ctx)).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by user failed")
	}
	return out, nil
}

// DeleteOwned removes the project; children and activities go with it via ON DELETE CASCADE.
func (r *projectRepository) DeleteOwned(ctx context.Context, projectID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", projectID, userID).Delete(&models.Project{})
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete project failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "project not found")
	}
	return nil
}

func withItems(db *gorm.DB) *gorm.DB {
	byRank := func(db *gorm.DB) *gorm.DB { return db.Order(rankOrder).Order("created_at ASC") }
	return db.Preload("Features", byRank).Preload("Bugs", byRank).Preload("Improvements", byRank)
}
