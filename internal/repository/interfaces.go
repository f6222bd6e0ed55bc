package repository

import (
	"context"

	"github.com/wellspringapp/wellspring/backend/internal/models"
)

// WellnessRecordRepository defines storage operations for wellness records
type WellnessRecordRepository interface {
	Create(ctx context.Context, record *models.WellnessRecord) (*models.WellnessRecord, error)
	GetByID(ctx context.Context, id string) (*models.WellnessRecord, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.WellnessRecord, error)
	Update(ctx context.Context, id string, record *models.WellnessRecord) (*models.WellnessRecord, error)
	Delete(ctx context.Context, id string) error
}

// GoalRepository defines storage operations for goals
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetByID(ctx context.Context, id string) (*models.Goal, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Goal, error)
	Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// ProgressRepository defines storage operations for goal progress samples
type ProgressRepository interface {
	Create(ctx context.Context, sample *models.ProgressSample) (*models.ProgressSample, error)
	GetByGoalID(ctx context.Context, goalID string) ([]models.ProgressSample, error)
	DeleteByGoalID(ctx context.Context, goalID string) error
}
