package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const appointmentColumns = `id, caregiver_id, patient_id, date, notes, status, created_at, updated_at`

var appointmentSortColumns = map[string]string{
	"date":      "date",
	"createdAt": "created_at",
	"status":    "status",
}

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, caregiver_id, patient_id, date, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now().UTC()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.CaregiverID,
		appointment.PatientID,
		appointment.Date,
		appointment.Notes,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create appointment")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, translate(err, "get appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	var c conditions
	if filter.PatientID != nil {
		c.and("patient_id = %s", *filter.PatientID)
	}
	if filter.CaregiverID != nil {
		c.and("caregiver_id = %s", *filter.CaregiverID)
	}
	if filter.Status != nil {
		c.and("status = %s", *filter.Status)
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointments` + c.where() +
		orderBy(filter.Sort, appointmentSortColumns, "date DESC")

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, c.values...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id uuid.UUID, patch model.AppointmentPatch) (int64, error) {
	u := newUpdate("appointments")
	if patch.Date != nil {
		u.set("date", *patch.Date)
	}
	if patch.Notes != nil {
		u.set("notes", *patch.Notes)
	}
	if patch.Status != nil {
		u.set("status", *patch.Status)
		u.and("status = ANY(%s)", statusArray(model.AppointmentSourcesFor(*patch.Status)))
	}

	query, args := u.build(id)
	return r.exec(ctx, "update appointment", query, args...)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete appointment", `DELETE FROM appointments WHERE id = $1`, id)
}
