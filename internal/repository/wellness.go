package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/pkg/postgrest"
)

const recordsTable = "wellness_records"

type wellnessRecordRepository struct {
	client *postgrest.Client
}

// NewWellnessRecordRepository creates a PostgREST-backed record repository
func NewWellnessRecordRepository(client *postgrest.Client) WellnessRecordRepository {
	return &wellnessRecordRepository{client: client}
}

func (r *wellnessRecordRepository) Create(ctx context.Context, record *models.WellnessRecord) (*models.WellnessRecord, error) {
	body, err := r.client.Insert(ctx, recordsTable, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create wellness record: %w", err)
	}
	return decodeOneRecord(body)
}

func (r *wellnessRecordRepository) GetByID(ctx context.Context, id string) (*models.WellnessRecord, error) {
	body, err := r.client.Select(ctx, recordsTable, postgrest.Filters{"id": "eq." + id})
	if err != nil {
		return nil, fmt.Errorf("failed to get wellness record: %w", err)
	}

	var records []models.WellnessRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wellness record: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *wellnessRecordRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.WellnessRecord, error) {
	filters := postgrest.Filters{
		"user_id": "eq." + userID,
		"order":   "date.asc",
	}
	if limit > 0 {
		filters["limit"] = strconv.Itoa(limit)
	}
	if offset > 0 {
		filters["offset"] = strconv.Itoa(offset)
	}

	body, err := r.client.Select(ctx, recordsTable, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list wellness records: %w", err)
	}

	var records []models.WellnessRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wellness records: %w", err)
	}
	return records, nil
}

func (r *wellnessRecordRepository) Update(ctx context.Context, id string, record *models.WellnessRecord) (*models.WellnessRecord, error) {
	body, err := r.client.Update(ctx, recordsTable, postgrest.Filters{"id": "eq." + id}, record)
	if err != nil {
		return nil, fmt.Errorf("failed to update wellness record: %w", err)
	}
	return decodeOneRecord(body)
}

func (r *wellnessRecordRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, recordsTable, postgrest.Filters{"id": "eq." + id}); err != nil {
		return fmt.Errorf("failed to delete wellness record: %w", err)
	}
	return nil
}

func decodeOneRecord(body []byte) (*models.WellnessRecord, error) {
	var records []models.WellnessRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wellness record: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no wellness record returned")
	}
	return &records[0], nil
}
