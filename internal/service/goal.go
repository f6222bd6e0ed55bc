package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/repository"
)

type goalService struct {
	goalRepo     repository.GoalRepository
	progressRepo repository.ProgressRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repository.GoalRepository, progressRepo repository.ProgressRepository) GoalService {
	return &goalService{goalRepo: goalRepo, progressRepo: progressRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error) {
	goal := &models.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Deadline:    req.Deadline,
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return created, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, id string) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil || goal.UserID != userID {
		return nil, nil
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, id string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	existing, err := s.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.TargetValue != nil {
		existing.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		existing.CurrentValue = *req.CurrentValue
	}
	if req.Unit != nil {
		existing.Unit = *req.Unit
	}
	if req.Deadline.Set && req.Deadline.Valid {
		existing.Deadline = req.Deadline.Value
	}
	existing.UpdatedAt = time.Now()

	updated, err := s.goalRepo.Update(ctx, id, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return updated, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, id string) error {
	existing, err := s.GetGoal(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	// Progress samples belong to the goal; remove them with it.
	if err := s.progressRepo.DeleteByGoalID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal progress: %w", err)
	}
	return nil
}

// AddProgress logs a progress sample and rolls the goal's current value
// forward when the sample moves it.
func (s *goalService) AddProgress(ctx context.Context, userID, goalID string, req *models.AddProgressRequest) (*models.ProgressSample, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	sample := &models.ProgressSample{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Timestamp: req.Timestamp,
		Value:     req.Value,
		Mood:      req.Mood,
		Notes:     req.Notes,
	}

	created, err := s.progressRepo.Create(ctx, sample)
	if err != nil {
		return nil, fmt.Errorf("failed to add progress: %w", err)
	}

	if req.Value > goal.CurrentValue {
		goal.CurrentValue = req.Value
		goal.UpdatedAt = time.Now()
		if _, err := s.goalRepo.Update(ctx, goalID, goal); err != nil {
			return nil, fmt.Errorf("failed to update goal progress: %w", err)
		}
	}

	return created, nil
}

func (s *goalService) ListProgress(ctx context.Context, userID, goalID string) ([]models.ProgressSample, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return []models.ProgressSample{}, nil
	}

	samples, err := s.progressRepo.GetByGoalID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return samples, nil
}
