package services

import (
	"context"
	"strings"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/internal/tracking"
	"github.com/devtrack/engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkItemService orchestrates writes to one work item table.
type WorkItemService[T any] interface {
	Kind() models.EntityKind
	Create(ctx context.Context, userID uuid.UUID, input *CreateWorkItemInput) (*T, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*T, error)
	// List returns the user's items, limited to one project when projectID is set.
	List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]T, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch *tracking.Patch) (*T, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*T, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type (
	FeatureService     = WorkItemService[models.Feature]
	BugService         = WorkItemService[models.Bug]
	ImprovementService = WorkItemService[models.Improvement]
)

type CreateWorkItemInput struct {
	ProjectID   uuid.UUID `json:"projectId" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Status      string    `json:"status"`
	Rank        int       `json:"rank"`
	Tags        []string  `json:"tags"`
}

type workItemService[T any, PT models.TrackablePtr[T]] struct {
	db          *gorm.DB
	kind        models.EntityKind
	items       repository.WorkItemRepository[T]
	projectRepo repository.ProjectRepository
	recorder    tracking.Recorder
}

func NewWorkItemService[T any, PT models.TrackablePtr[T]](db *gorm.DB, recorder tracking.Recorder) WorkItemService[T] {
	var zero T
	return &workItemService[T, PT]{
		db:          db,
		kind:        PT(&zero).Kind(),
		items:       repository.NewWorkItemRepository[T, PT](db),
		projectRepo: repository.NewProjectRepository(db),
		recorder:    recorder,
	}
}

func NewFeatureService(db *gorm.DB, recorder tracking.Recorder) FeatureService {
	return NewWorkItemService[models.Feature](db, recorder)
}

func NewBugService(db *gorm.DB, recorder tracking.Recorder) BugService {
	return NewWorkItemService[models.Bug](db, recorder)
}

func NewImprovementService(db *gorm.DB, recorder tracking.Recorder) ImprovementService {
	return NewWorkItemService[models.Improvement](db, recorder)
}

func (s *workItemService[T, PT]) Kind() models.EntityKind { return s.kind }

func (s *workItemService[T, PT]) fields(id, userID uuid.UUID) []zap.Field {
	return []zap.Field{
		zap.String("entity", string(s.kind)),
		zap.String("id", id.String()),
		zap.String("user_id", userID.String()),
	}
}

// Create inserts an item under a project the user owns and logs a create activity.
func (s *workItemService[T, PT]) Create(ctx context.Context, userID uuid.UUID, input *CreateWorkItemInput) (*T, error) {
	log := logger.FromContext(ctx)
	log.Info("create "+string(s.kind), zap.String("project_id", input.ProjectID.String()), zap.String("user_id", userID.String()))

	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = s.kind.DefaultStatus()
	}
	if err := checkStatus(s.kind, input.Status); err != nil {
		return nil, err
	}

	var e T
	item := PT(&e).Item()
	item.ProjectID = input.ProjectID
	item.Description = input.Description
	item.Status = input.Status
	item.Rank = input.Rank
	item.Tags = append(models.StringList{}, input.Tags...)

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		var p models.Project
		if err := repository.NewProjectRepository(tx).GetOwned(ctx, input.ProjectID, userID, &p); err != nil {
			return err
		}
		if err := repository.NewWorkItemRepository[T, PT](tx).Create(ctx, &e); err != nil {
			return err
		}
		_, err := s.recorder.Record(ctx, tx, tracking.Created(s.kind, p.ID, item.ID, item.Description))
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(string(s.kind)+" created", s.fields(item.ID, userID)...)
	return &e, nil
}

func (s *workItemService[T, PT]) Get(ctx context.Context, id, userID uuid.UUID) (*T, error) {
	logger.FromContext(ctx).Debug("get "+string(s.kind), s.fields(id, userID)...)
	var e T
	if err := s.items.GetOwned(ctx, id, userID, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *workItemService[T, PT]) List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]T, error) {
	logger.FromContext(ctx).Debug("list "+PT(new(T)).TableName(), zap.String("user_id", userID.String()))
	if projectID == nil {
		return s.items.ListByUser(ctx, userID)
	}
	var p models.Project
	if err := s.projectRepo.GetOwned(ctx, *projectID, userID, &p); err != nil {
		return nil, err
	}
	return s.items.ListByProject(ctx, p.ID)
}

// Update diffs patch against the stored row, writes the full row and logs an
// update activity even when the diff is empty.
func (s *workItemService[T, PT]) Update(ctx context.Context, id, userID uuid.UUID, patch *tracking.Patch) (*T, error) {
	log := logger.FromContext(ctx)
	log.Info("update "+string(s.kind), s.fields(id, userID)...)

	patch, err := WorkItemFields.Normalize(patch)
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(patch, "description"); err != nil {
		return nil, err
	}
	if v, ok := patch.Get("status"); ok {
		if err := checkStatus(s.kind, v.(string)); err != nil {
			return nil, err
		}
	}

	var e T
	var changes []tracking.Change
	err = inTx(ctx, s.db, func(tx *gorm.DB) error {
		items := repository.NewWorkItemRepository[T, PT](tx)
		if err := items.GetOwned(ctx, id, userID, &e); err != nil {
			return err
		}
		item := PT(&e).Item()
		label := item.Description
		changes = tracking.Diff(item, WorkItemFields, patch)
		WorkItemFields.Apply(item, changes)
		if err := items.Update(ctx, &e); err != nil {
			return err
		}
		_, err := s.recorder.Record(ctx, tx, tracking.Updated(s.kind, item.ProjectID, item.ID, label, changes))
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(string(s.kind)+" updated", append(s.fields(id, userID), zap.Int("changes", len(changes)))...)
	return &e, nil
}

// UpdateStatus writes only the status column. The status is checked against
// the kind's enumeration before anything is read or written.
func (s *workItemService[T, PT]) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*T, error) {
	log := logger.FromContext(ctx)
	log.Info("update "+string(s.kind)+" status", append(s.fields(id, userID), zap.String("status", status))...)

	if err := checkStatus(s.kind, status); err != nil {
		return nil, err
	}

	var e T
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		items := repository.NewWorkItemRepository[T, PT](tx)
		if err := items.GetOwned(ctx, id, userID, &e); err != nil {
			return err
		}
		item := PT(&e).Item()
		old := item.Status
		if err := items.UpdateStatus(ctx, item.ID, status); err != nil {
			return err
		}
		item.Status = status
		_, err := s.recorder.Record(ctx, tx, tracking.StatusChanged(s.kind, item.ProjectID, item.ID, item.Description, old, status))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the item and logs a delete activity that keeps its id.
func (s *workItemService[T, PT]) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info("delete "+string(s.kind), s.fields(id, userID)...)

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		items := repository.NewWorkItemRepository[T, PT](tx)
		var e T
		if err := items.GetOwned(ctx, id, userID, &e); err != nil {
			return err
		}
		item := PT(&e).Item()
		if err := items.Delete(ctx, item.ID); err != nil {
			return err
		}
		_, err := s.recorder.Record(ctx, tx, tracking.Deleted(s.kind, item.ProjectID, item.ID, item.Description))
		return err
	})
	if err != nil {
		return err
	}

	log.Info(string(s.kind)+" deleted", s.fields(id, userID)...)
	return nil
}
