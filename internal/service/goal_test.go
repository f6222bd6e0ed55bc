package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/wellspringapp/wellspring/backend/internal/models"
)

// mockGoalRepository is an in-memory GoalRepository for testing
type mockGoalRepository struct {
	goals map[string]*models.Goal
}

func newMockGoalRepository() *mockGoalRepository {
	return &mockGoalRepository{goals: make(map[string]*models.Goal)}
}

func (m *mockGoalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()
	m.goals[goal.ID] = goal
	return goal, nil
}

func (m *mockGoalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	if goal, ok := m.goals[id]; ok {
		copied := *goal
		return &copied, nil
	}
	return nil, nil
}

func (m *mockGoalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	var result []models.Goal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			result = append(result, *goal)
		}
	}
	return result, nil
}

func (m *mockGoalRepository) Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error) {
	if _, ok := m.goals[id]; !ok {
		return nil, fmt.Errorf("goal %s not found", id)
	}
	m.goals[id] = goal
	return goal, nil
}

func (m *mockGoalRepository) Delete(ctx context.Context, id string) error {
	delete(m.goals, id)
	return nil
}

// mockProgressRepository is an in-memory ProgressRepository for testing
type mockProgressRepository struct {
	samples map[string][]models.ProgressSample
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{samples: make(map[string][]models.ProgressSample)}
}

func (m *mockProgressRepository) Create(ctx context.Context, s *models.ProgressSample) (*models.ProgressSample, error) {
	s.CreatedAt = time.Now()
	m.samples[s.GoalID] = append(m.samples[s.GoalID], *s)
	return s, nil
}

func (m *mockProgressRepository) GetByGoalID(ctx context.Context, goalID string) ([]models.ProgressSample, error) {
	return m.samples[goalID], nil
}

func (m *mockProgressRepository) DeleteByGoalID(ctx context.Context, goalID string) error {
	delete(m.samples, goalID)
	return nil
}

func TestAddProgressRollsCurrentValueForward(t *testing.T) {
	goalRepo := newMockGoalRepository()
	progressRepo := newMockProgressRepository()
	svc := NewGoalService(goalRepo, progressRepo)

	goal, err := svc.CreateGoal(context.Background(), "user-1", &models.CreateGoalRequest{
		Title:       "Read 12 books",
		TargetValue: 12,
		Unit:        "books",
		Deadline:    time.Now().AddDate(0, 6, 0),
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	sample, err := svc.AddProgress(context.Background(), "user-1", goal.ID, &models.AddProgressRequest{
		Timestamp: time.Now(),
		Value:     3,
	})
	if err != nil {
		t.Fatalf("AddProgress failed: %v", err)
	}
	if sample == nil {
		t.Fatal("Expected a created sample")
	}

	stored, _ := goalRepo.GetByID(context.Background(), goal.ID)
	if stored.CurrentValue != 3 {
		t.Errorf("Expected current value rolled to 3, got %f", stored.CurrentValue)
	}

	// A lower-valued sample records history but does not move the goal back
	if _, err := svc.AddProgress(context.Background(), "user-1", goal.ID, &models.AddProgressRequest{
		Timestamp: time.Now(),
		Value:     2,
	}); err != nil {
		t.Fatalf("AddProgress failed: %v", err)
	}
	stored, _ = goalRepo.GetByID(context.Background(), goal.ID)
	if stored.CurrentValue != 3 {
		t.Errorf("Expected current value to stay at 3, got %f", stored.CurrentValue)
	}

	samples, err := svc.ListProgress(context.Background(), "user-1", goal.ID)
	if err != nil {
		t.Fatalf("ListProgress failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("Expected 2 samples logged, got %d", len(samples))
	}
}

func TestDeleteGoalRemovesProgress(t *testing.T) {
	goalRepo := newMockGoalRepository()
	progressRepo := newMockProgressRepository()
	svc := NewGoalService(goalRepo, progressRepo)

	goal, err := svc.CreateGoal(context.Background(), "user-1", &models.CreateGoalRequest{
		Title:       "Run 100km",
		TargetValue: 100,
		Unit:        "km",
		Deadline:    time.Now().AddDate(0, 3, 0),
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	if _, err := svc.AddProgress(context.Background(), "user-1", goal.ID, &models.AddProgressRequest{
		Timestamp: time.Now(),
		Value:     10,
	}); err != nil {
		t.Fatalf("AddProgress failed: %v", err)
	}

	if err := svc.DeleteGoal(context.Background(), "user-1", goal.ID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}

	if _, ok := goalRepo.goals[goal.ID]; ok {
		t.Error("Expected goal removed from storage")
	}
	remaining, err := progressRepo.GetByGoalID(context.Background(), goal.ID)
	if err != nil {
		t.Fatalf("GetByGoalID failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected no progress samples after goal deletion, got %d", len(remaining))
	}
}

func TestAddProgressUnknownGoal(t *testing.T) {
	svc := NewGoalService(newMockGoalRepository(), newMockProgressRepository())

	sample, err := svc.AddProgress(context.Background(), "user-1", "missing", &models.AddProgressRequest{
		Timestamp: time.Now(),
		Value:     1,
	})
	if err != nil {
		t.Fatalf("AddProgress failed: %v", err)
	}
	if sample != nil {
		t.Errorf("Expected nil sample for unknown goal, got %+v", sample)
	}
}

func TestListProgressMissingGoalReturnsEmpty(t *testing.T) {
	svc := NewGoalService(newMockGoalRepository(), newMockProgressRepository())

	samples, err := svc.ListProgress(context.Background(), "user-1", "missing")
	if err != nil {
		t.Fatalf("ListProgress failed: %v", err)
	}
	if samples == nil || len(samples) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", samples)
	}
}

func TestUpdateGoalPartial(t *testing.T) {
	goalRepo := newMockGoalRepository()
	svc := NewGoalService(goalRepo, newMockProgressRepository())

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	goal, err := svc.CreateGoal(context.Background(), "user-1", &models.CreateGoalRequest{
		Title:       "Meditate daily",
		TargetValue: 365,
		Unit:        "sessions",
		Deadline:    deadline,
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	newTitle := "Meditate every morning"
	updated, err := svc.UpdateGoal(context.Background(), "user-1", goal.ID, &models.UpdateGoalRequest{
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}
	if !updated.Deadline.Equal(deadline) {
		t.Errorf("Expected deadline untouched, got %v", updated.Deadline)
	}
}
