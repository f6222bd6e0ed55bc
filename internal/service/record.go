package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/repository"
)

type recordService struct {
	recordRepo repository.WellnessRecordRepository
}

// NewRecordService creates a new wellness record service
func NewRecordService(recordRepo repository.WellnessRecordRepository) RecordService {
	return &recordService{recordRepo: recordRepo}
}

func (s *recordService) CreateRecord(ctx context.Context, userID string, req *models.CreateRecordRequest) (*models.WellnessRecord, error) {
	record := &models.WellnessRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		Date:         req.Date,
		Mood:         req.Mood,
		Energy:       req.Energy,
		Stress:       req.Stress,
		SleepHours:   req.SleepHours,
		Hydration:    req.Hydration,
		ExerciseMins: req.ExerciseMins,
		Nutrition:    req.Nutrition,
		Notes:        req.Notes,
		Factors:      req.Factors,
	}

	created, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return created, nil
}

func (s *recordService) GetRecord(ctx context.Context, userID, id string) (*models.WellnessRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if record == nil || record.UserID != userID {
		return nil, nil
	}
	return record, nil
}

func (s *recordService) ListRecords(ctx context.Context, userID string, limit, offset int) ([]models.WellnessRecord, error) {
	records, err := s.recordRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, userID, id string, req *models.UpdateRecordRequest) (*models.WellnessRecord, error) {
	existing, err := s.GetRecord(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if req.Date != nil {
		existing.Date = *req.Date
	}
	if req.Mood != nil {
		existing.Mood = *req.Mood
	}
	if req.Energy != nil {
		existing.Energy = *req.Energy
	}
	if req.Stress != nil {
		existing.Stress = *req.Stress
	}
	if req.SleepHours != nil {
		existing.SleepHours = *req.SleepHours
	}
	if req.Hydration != nil {
		existing.Hydration = *req.Hydration
	}
	if req.ExerciseMins != nil {
		existing.ExerciseMins = *req.ExerciseMins
	}
	if req.Nutrition != nil {
		existing.Nutrition = *req.Nutrition
	}
	if req.Notes.Set {
		existing.Notes = req.Notes.ToPtr()
	}
	if req.Factors != nil {
		existing.Factors = req.Factors
	}
	existing.UpdatedAt = time.Now()

	updated, err := s.recordRepo.Update(ctx, id, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return updated, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, userID, id string) error {
	existing, err := s.GetRecord(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
