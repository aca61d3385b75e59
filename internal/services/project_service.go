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

// Service interface and related DTOs
type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	UpdateProject(ctx context.Context, projectID, userID uuid.UUID, patch *tracking.Patch) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error

	ListProjectActivities(ctx context.Context, projectID, userID uuid.UUID) ([]models.Activity, error)
}

type CreateProjectInput struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	ProductionLink  string   `json:"productionLink"`
	RepoLink        string   `json:"repoLink"`
	FrontendLink    string   `json:"frontendLink"`
	BackendLink     string   `json:"backendLink"`
	FrontendDetails string   `json:"frontendDetails"`
	BackendDetails  string   `json:"backendDetails"`
	EnvDetails      string   `json:"envDetails"`
	TestUserDetails string   `json:"testUserDetails"`
	AuthDetails     string   `json:"authDetails"`
	SetupSteps      []string `json:"setupSteps"`
}

type projectService struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	recorder    tracking.Recorder
}

func NewProjectService(db *gorm.DB, projectRepo repository.ProjectRepository, recorder tracking.Recorder) ProjectService {
	return &projectService{db: db, projectRepo: projectRepo, recorder: recorder}
}

// Ensure interfaces are satisfied at compile time
var _ ProjectService = (*projectService)(nil)

// CreateProject creates a new project for the given user and logs a create activity.
func (s *projectService) CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error) {
	log := logger.FromContext(ctx)
	log.Info("create project called", zap.String("user_id", userID.String()), zap.String("name", input.Name))

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p := &models.Project{
		UserID:          userID,
		Name:            input.Name,
		Description:     input.Description,
		ProductionLink:  input.ProductionLink,
		RepoLink:        input.RepoLink,
		FrontendLink:    input.FrontendLink,
		BackendLink:     input.BackendLink,
		FrontendDetails: input.FrontendDetails,
		BackendDetails:  input.BackendDetails,
		EnvDetails:      input.EnvDetails,
		TestUserDetails: input.TestUserDetails,
		AuthDetails:     input.AuthDetails,
		SetupSteps:      append(models.StringList{}, input.SetupSteps...),
	}

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := repository.NewProjectRepository(tx).Create(ctx, p); err != nil {
			return err
		}
		_, err := s.recorder.Record(ctx, tx, tracking.Created(models.EntityProject, p.ID, p.ID, p.Name))
		return err
	})
	if err != nil {
		return nil, err
	}

	p.Features, p.Bugs, p.Improvements = []models.Feature{}, []models.Bug{}, []models.Improvement{}
	log.Info("project created", zap.String("project_id", p.ID.String()), zap.String("user_id", userID.String()))
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	logger.FromContext(ctx).Info("get project", zap.String("project_id", projectID.String()), zap.String("user_id", userID.String()))
	var p models.Project
	if err := s.projectRepo.GetOwnedWithItems(ctx, projectID, userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	logger.FromContext(ctx).Info("list projects", zap.String("user_id", userID.String()))
	return s.projectRepo.ListByUser(ctx, userID)
}

// UpdateProject applies patch to the stored project. Every call writes the full
// row and logs an update activity, including when nothing changed.
func (s *projectService) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, patch *tracking.Patch) (*models.Project, error) {
	log := logger.FromContext(ctx)
	log.Info("update project", zap.String("project_id", projectID.String()), zap.String("user_id", userID.String()))

	patch, err := ProjectFields.Normalize(patch)
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(patch, "name"); err != nil {
		return nil, err
	}

	var p models.Project
	var changes []tracking.Change
	err = inTx(ctx, s.db, func(tx *gorm.DB) error {
		projects := repository.NewProjectRepository(tx)
		if err := projects.GetOwned(ctx, projectID, userID, &p); err != nil {
			return err
		}
		label := p.Name
		changes = tracking.Diff(&p, ProjectFields, patch)
		ProjectFields.Apply(&p, changes)
		if err := projects.Update(ctx, &p); err != nil {
			return err
		}
		_, err := s.recorder.Record(ctx, tx, tracking.Updated(models.EntityProject, p.ID, p.ID, label, changes))
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("project updated",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("changes", len(changes)),
	)
	return s.GetProject(ctx, projectID, userID)
}

// DeleteProject removes the project with its work items and activity log.
func (s *projectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info("delete project", zap.String("project_id", projectID.String()), zap.String("user_id", userID.String()))
	if err := s.projectRepo.DeleteOwned(ctx, projectID, userID); err != nil {
		return err
	}
	log.Info("project deleted", zap.String("project_id", projectID.String()), zap.String("user_id", userID.String()))
	return nil
}

func (s *projectService) ListProjectActivities(ctx context.Context, projectID, userID uuid.UUID) ([]models.Activity, error) {
	logger.FromContext(ctx).Info("list project activities", zap.String("project_id", projectID.String()), zap.String("user_id", userID.String()))
	var p models.Project
	if err := s.projectRepo.GetOwned(ctx, projectID, userID, &p); err != nil {
		return nil, err
	}
	return repository.NewActivityRepository(s.db).ListByProject(ctx, projectID)
}
