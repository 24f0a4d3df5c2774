package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const serviceRequestColumns = `id, patient_id, caregiver_id, category, description, status, created_at, updated_at`

var serviceRequestSortColumns = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
	"category":  "category",
}

type serviceRequestRepository struct {
	BaseRepository
}

func NewServiceRequestRepository(base BaseRepository) repository.ServiceRequestRepository {
	return &serviceRequestRepository{base}
}

func (r *serviceRequestRepository) Create(ctx context.Context, req *model.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (
			id, patient_id, caregiver_id, category, description, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	req.ID = uuid.New()
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.PatientID,
		req.CaregiverID,
		req.Category,
		req.Description,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create service request")
	}
	return nil
}

func (r *serviceRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests WHERE id = $1`

	var req model.ServiceRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, translate(err, "get service request")
	}
	return &req, nil
}

func (r *serviceRequestRepository) List(ctx context.Context, filter model.ServiceRequestFilter) ([]*model.ServiceRequest, error) {
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
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests` + c.where() +
		orderBy(filter.Sort, serviceRequestSortColumns, "created_at DESC")

	requests := []*model.ServiceRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, c.values...); err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	return requests, nil
}

func (r *serviceRequestRepository) Update(ctx context.Context, id uuid.UUID, patch model.ServiceRequestPatch) (int64, error) {
	u := newUpdate("service_requests")
	if patch.CaregiverID != nil {
		u.set("caregiver_id", *patch.CaregiverID)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.Status != nil {
		u.set("status", *patch.Status)
		u.and("status = ANY(%s)", statusArray(patch.Sources()))
	}

	query, args := u.build(id)
	return r.exec(ctx, "update service request", query, args...)
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete service request", `DELETE FROM service_requests WHERE id = $1`, id)
}
