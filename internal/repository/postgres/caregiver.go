package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const caregiverColumns = `id, username, email, password_hash, specialization, phone, is_admin, created_at, updated_at`

var (
	caregiverSortColumns = map[string]string{
		"createdAt":      "created_at",
		"username":       "username",
		"specialization": "specialization",
	}
	caregiverProjection = map[string]string{
		"username":       "username",
		"email":          "email",
		"specialization": "specialization",
		"phone":          "phone",
	}
)

type caregiverRepository struct {
	BaseRepository
}

func NewCaregiverRepository(base BaseRepository) repository.CaregiverRepository {
	return &caregiverRepository{base}
}

func (r *caregiverRepository) Create(ctx context.Context, caregiver *model.Caregiver) error {
	query := `
		INSERT INTO caregivers (
			id, username, email, password_hash, specialization, phone, is_admin,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	caregiver.ID = uuid.New()
	caregiver.CreatedAt = time.Now().UTC()
	caregiver.UpdatedAt = caregiver.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		caregiver.ID,
		caregiver.Username,
		caregiver.Email,
		caregiver.PasswordHash,
		caregiver.Specialization,
		caregiver.Phone,
		caregiver.IsAdmin,
		caregiver.CreatedAt,
		caregiver.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create caregiver")
	}
	return nil
}

func (r *caregiverRepository) Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE id = $1`

	var caregiver model.Caregiver
	if err := r.db.GetContext(ctx, &caregiver, query, id); err != nil {
		return nil, translate(err, "get caregiver")
	}
	return &caregiver, nil
}

func (r *caregiverRepository) GetByEmail(ctx context.Context, email string) (*model.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE email = $1`

	var caregiver model.Caregiver
	if err := r.db.GetContext(ctx, &caregiver, query, email); err != nil {
		return nil, translate(err, "get caregiver by email")
	}
	return &caregiver, nil
}

func (r *caregiverRepository) List(ctx context.Context, sort model.Sort) ([]*model.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers` +
		orderBy(sort, caregiverSortColumns, "created_at DESC")

	caregivers := []*model.Caregiver{}
	if err := r.db.SelectContext(ctx, &caregivers, query); err != nil {
		return nil, fmt.Errorf("failed to list caregivers: %w", err)
	}
	return caregivers, nil
}

func (r *caregiverRepository) Update(ctx context.Context, id uuid.UUID, patch model.CaregiverPatch) (int64, error) {
	u := newUpdate("caregivers")
	if patch.Username != nil {
		u.set("username", *patch.Username)
	}
	if patch.Email != nil {
		u.set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		u.set("password_hash", *patch.PasswordHash)
	}
	if patch.Specialization != nil {
		u.set("specialization", *patch.Specialization)
	}
	if patch.Phone != nil {
		u.set("phone", *patch.Phone)
	}
	if patch.IsAdmin != nil {
		u.set("is_admin", *patch.IsAdmin)
	}

	query, args := u.build(id)
	return r.exec(ctx, "update caregiver", query, args...)
}

// Delete removes the caregiver together with its availability and messages.
func (r *caregiverRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete caregiver", `DELETE FROM caregivers WHERE id = $1`, id)
}

func (r *caregiverRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "caregivers", id)
}

func (r *caregiverRepository) Project(ctx context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	return r.project(ctx, "caregivers", caregiverProjection, ids, fields)
}
