package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/pkg/postgrest"
)

const (
	goalsTable    = "goals"
	progressTable = "goal_progress"
)

type goalRepository struct {
	client *postgrest.Client
}

// NewGoalRepository creates a PostgREST-backed goal repository
func NewGoalRepository(client *postgrest.Client) GoalRepository {
	return &goalRepository{client: client}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	body, err := r.client.Insert(ctx, goalsTable, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return decodeOneGoal(body)
}

func (r *goalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	body, err := r.client.Select(ctx, goalsTable, postgrest.Filters{"id": "eq." + id})
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal: %w", err)
	}
	if len(goals) == 0 {
		return nil, nil
	}
	return &goals[0], nil
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	body, err := r.client.Select(ctx, goalsTable, postgrest.Filters{
		"user_id": "eq." + userID,
		"order":   "created_at.asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error) {
	body, err := r.client.Update(ctx, goalsTable, postgrest.Filters{"id": "eq." + id}, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return decodeOneGoal(body)
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, goalsTable, postgrest.Filters{"id": "eq." + id}); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func decodeOneGoal(body []byte) (*models.Goal, error) {
	var goals []models.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal: %w", err)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("no goal returned")
	}
	return &goals[0], nil
}

type progressRepository struct {
	client *postgrest.Client
}

// NewProgressRepository creates a PostgREST-backed progress repository
func NewProgressRepository(client *postgrest.Client) ProgressRepository {
	return &progressRepository{client: client}
}

func (r *progressRepository) Create(ctx context.Context, sample *models.ProgressSample) (*models.ProgressSample, error) {
	body, err := r.client.Insert(ctx, progressTable, sample)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress sample: %w", err)
	}

	var samples []models.ProgressSample
	if err := json.Unmarshal(body, &samples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress sample: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no progress sample returned")
	}
	return &samples[0], nil
}

func (r *progressRepository) GetByGoalID(ctx context.Context, goalID string) ([]models.ProgressSample, error) {
	body, err := r.client.Select(ctx, progressTable, postgrest.Filters{
		"goal_id": "eq." + goalID,
		"order":   "timestamp.asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list progress samples: %w", err)
	}

	var samples []models.ProgressSample
	if err := json.Unmarshal(body, &samples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress samples: %w", err)
	}
	return samples, nil
}

func (r *progressRepository) DeleteByGoalID(ctx context.Context, goalID string) error {
	if err := r.client.Delete(ctx, progressTable, postgrest.Filters{"goal_id": "eq." + goalID}); err != nil {
		return fmt.Errorf("failed to delete progress samples: %w", err)
	}
	return nil
}
