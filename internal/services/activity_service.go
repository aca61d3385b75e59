package services

import (
	"context"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityService reads the activity log. Writes only happen through Recorder.
type ActivityService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Activity, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// List returns every activity of the user's projects, newest first.
func (s *activityService) List(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	logger.FromContext(ctx).Debug("list activities", zap.String("user_id", userID.String()))
	return s.activityRepo.ListByUser(ctx, userID)
}

func (s *activityService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Activity, error) {
	logger.FromContext(ctx).Debug("get activity", zap.String("activity_id", id.String()), zap.String("user_id", userID.String()))
	var a models.Activity
	if err := s.activityRepo.GetOwned(ctx, id, userID, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
