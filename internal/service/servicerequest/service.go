package servicerequest

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

const resource = "Service request"

type ServiceRequestServicer interface {
	ListRequests(ctx context.Context, filter model.ServiceRequestFilter) ([]*model.ServiceRequestView, error)
	ListPending(ctx context.Context) ([]*model.ServiceRequestView, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error)
	CreateRequest(ctx context.Context, req *model.CreateServiceRequestRequest) (*model.ServiceRequestView, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequestRequest) (*model.ServiceRequestView, error)
	AcceptRequest(ctx context.Context, id, caregiverID uuid.UUID) (*model.ServiceRequestView, error)
	CompleteRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error)
	CancelRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       repository.ServiceRequestRepository
	users      repository.UserRepository
	caregivers repository.CaregiverRepository
	resolver   *resolver.Resolver
}

func NewService(repo repository.ServiceRequestRepository, users repository.UserRepository, caregivers repository.CaregiverRepository, res *resolver.Resolver) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		caregivers: caregivers,
		resolver:   res,
	}
}

func (s *Service) ListRequests(ctx context.Context, filter model.ServiceRequestFilter) ([]*model.ServiceRequestView, error) {
	reqs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.ServiceRequests(ctx, reqs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) ListPending(ctx context.Context) ([]*model.ServiceRequestView, error) {
	pending := model.ServiceRequestStatusPending
	return s.ListRequests(ctx, model.ServiceRequestFilter{Status: &pending})
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, req)
}

func (s *Service) CreateRequest(ctx context.Context, in *model.CreateServiceRequestRequest) (*model.ServiceRequestView, error) {
	patientID, err := service.ParseID("patientId", in.PatientID)
	if err != nil {
		return nil, err
	}
	found, err := s.users.Exists(ctx, patientID)
	if err := service.MustExist("Patient", found, err); err != nil {
		return nil, err
	}

	req := &model.ServiceRequest{
		PatientID:   patientID,
		Category:    model.ServiceCategory(in.Category),
		Description: in.Description,
		Status:      model.ServiceRequestStatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, req)
}

func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, in *model.UpdateServiceRequestRequest) (*model.ServiceRequestView, error) {
	patch := model.ServiceRequestPatch{Description: in.Description}
	if in.Status != nil {
		status := model.ServiceRequestStatus(*in.Status)
		patch.Status = &status
	}
	if in.CaregiverID != nil {
		caregiverID, err := service.ParseID("caregiverId", *in.CaregiverID)
		if err != nil {
			return nil, err
		}
		if err := s.caregiverExists(ctx, caregiverID); err != nil {
			return nil, err
		}
		patch.CaregiverID = &caregiverID
	}

	if err := s.update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, id)
}

// AcceptRequest hands a pending request to an existing caregiver.
func (s *Service) AcceptRequest(ctx context.Context, id, caregiverID uuid.UUID) (*model.ServiceRequestView, error) {
	if err := s.caregiverExists(ctx, caregiverID); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, id, model.ServiceRequestStatusAccepted, &caregiverID)
}

func (s *Service) CompleteRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error) {
	return s.setStatus(ctx, id, model.ServiceRequestStatusCompleted, nil)
}

func (s *Service) CancelRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error) {
	return s.setStatus(ctx, id, model.ServiceRequestStatusCancelled, nil)
}

func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	return service.Applied(resource, n, err)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status model.ServiceRequestStatus, caregiverID *uuid.UUID) (*model.ServiceRequestView, error) {
	if err := s.update(ctx, id, model.ServiceRequestPatch{Status: &status, CaregiverID: caregiverID}); err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, id)
}

// update applies patch in one guarded statement. When nothing matched, the
// current record tells a missing request apart from a refused transition.
func (s *Service) update(ctx context.Context, id uuid.UUID, patch model.ServiceRequestPatch) error {
	n, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return service.StoreError(resource, err)
	}
	if n > 0 {
		return nil
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return service.StoreError(resource, err)
	}
	if patch.Status != nil && !slices.Contains(patch.Sources(), current.Status) {
		return apperrors.Validation(fmt.Sprintf("cannot change service request status from %s to %s", current.Status, *patch.Status), nil)
	}
	return apperrors.Internal(errors.New("service request update matched no rows"))
}

func (s *Service) caregiverExists(ctx context.Context, id uuid.UUID) error {
	found, err := s.caregivers.Exists(ctx, id)
	return service.MustExist("Caregiver", found, err)
}

func (s *Service) resolve(ctx context.Context, req *model.ServiceRequest) (*model.ServiceRequestView, error) {
	views, err := s.resolver.ServiceRequests(ctx, []*model.ServiceRequest{req})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}
