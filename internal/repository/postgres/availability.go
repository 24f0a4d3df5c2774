package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

type availabilityRepository struct {
	BaseRepository
}

func NewAvailabilityRepository(base BaseRepository) repository.AvailabilityRepository {
	return &availabilityRepository{base}
}

func (r *availabilityRepository) List(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error) {
	query := `
		SELECT id, caregiver_id, day_of_week, start_time, end_time
		FROM caregiver_availability
		WHERE caregiver_id = $1
		ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day_of_week), start_time
	`

	entries := []*model.Availability{}
	if err := r.db.SelectContext(ctx, &entries, query, caregiverID); err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return entries, nil
}

// Add inserts the entry only when its caregiver exists.
func (r *availabilityRepository) Add(ctx context.Context, entry *model.Availability) (int64, error) {
	query := `
		INSERT INTO caregiver_availability (id, caregiver_id, day_of_week, start_time, end_time)
		SELECT $1::uuid, $2::uuid, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM caregivers WHERE id = $2)
	`

	entry.ID = uuid.New()
	return r.exec(ctx, "add availability", query,
		entry.ID,
		entry.CaregiverID,
		entry.DayOfWeek,
		entry.StartTime,
		entry.EndTime,
	)
}

func (r *availabilityRepository) Replace(ctx context.Context, entry *model.Availability) (int64, error) {
	query := `
		UPDATE caregiver_availability
		SET day_of_week = $1, start_time = $2, end_time = $3
		WHERE id = $4 AND caregiver_id = $5
	`
	return r.exec(ctx, "update availability", query,
		entry.DayOfWeek,
		entry.StartTime,
		entry.EndTime,
		entry.ID,
		entry.CaregiverID,
	)
}

func (r *availabilityRepository) Remove(ctx context.Context, caregiverID, id uuid.UUID) (int64, error) {
	query := `DELETE FROM caregiver_availability WHERE id = $1 AND caregiver_id = $2`
	return r.exec(ctx, "remove availability", query, id, caregiverID)
}
