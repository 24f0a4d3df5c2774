package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const medicalNoteColumns = `id, caregiver_id, patient_id, notes, medications, issued_at, created_at, updated_at`

var medicalNoteSortColumns = map[string]string{
	"issuedAt":  "issued_at",
	"createdAt": "created_at",
}

type medicalNoteRepository struct {
	BaseRepository
}

func NewMedicalNoteRepository(base BaseRepository) repository.MedicalNoteRepository {
	return &medicalNoteRepository{base}
}

func (r *medicalNoteRepository) Create(ctx context.Context, note *model.MedicalNote) error {
	query := `
		INSERT INTO medical_notes (
			id, caregiver_id, patient_id, notes, medications, issued_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	note.ID = uuid.New()
	note.CreatedAt = time.Now().UTC()
	note.UpdatedAt = note.CreatedAt
	if note.IssuedAt.IsZero() {
		note.IssuedAt = note.CreatedAt
	}
	if note.Medications == nil {
		note.Medications = model.Medications{}
	}

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.CaregiverID,
		note.PatientID,
		note.Notes,
		note.Medications,
		note.IssuedAt,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create medical note")
	}
	return nil
}

func (r *medicalNoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalNote, error) {
	query := `SELECT ` + medicalNoteColumns + ` FROM medical_notes WHERE id = $1`

	var note model.MedicalNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, translate(err, "get medical note")
	}
	return &note, nil
}

func (r *medicalNoteRepository) List(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNote, error) {
	var c conditions
	if filter.PatientID != nil {
		c.and("patient_id = %s", *filter.PatientID)
	}
	if filter.CaregiverID != nil {
		c.and("caregiver_id = %s", *filter.CaregiverID)
	}
	query := `SELECT ` + medicalNoteColumns + ` FROM medical_notes` + c.where() +
		orderBy(filter.Sort, medicalNoteSortColumns, "issued_at DESC")

	notes := []*model.MedicalNote{}
	if err := r.db.SelectContext(ctx, &notes, query, c.values...); err != nil {
		return nil, fmt.Errorf("failed to list medical notes: %w", err)
	}
	return notes, nil
}

func (r *medicalNoteRepository) Update(ctx context.Context, id uuid.UUID, patch model.MedicalNotePatch) (int64, error) {
	u := newUpdate("medical_notes")
	if patch.Notes != nil {
		u.set("notes", *patch.Notes)
	}
	if patch.Medications != nil {
		u.set("medications", *patch.Medications)
	}
	if patch.IssuedAt != nil {
		u.set("issued_at", *patch.IssuedAt)
	}

	query, args := u.build(id)
	return r.exec(ctx, "update medical note", query, args...)
}

func (r *medicalNoteRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete medical note", `DELETE FROM medical_notes WHERE id = $1`, id)
}
