package caregiver

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

const (
	resource             = "Caregiver"
	availabilityResource = "Caregiver or availability"
)

type CaregiverServicer interface {
	ListCaregivers(ctx context.Context, sort model.Sort) ([]*model.Caregiver, error)
	GetCaregiver(ctx context.Context, id uuid.UUID) (*model.Caregiver, error)
	CreateCaregiver(ctx context.Context, req *model.RegisterCaregiverRequest) (*model.Caregiver, error)
	UpdateCaregiver(ctx context.Context, principal model.Principal, id uuid.UUID, req *model.UpdateCaregiverRequest) (*model.Caregiver, error)
	DeleteCaregiver(ctx context.Context, id uuid.UUID) error

	ListAvailability(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error)
	AddAvailability(ctx context.Context, caregiverID uuid.UUID, req *model.AvailabilityRequest) ([]*model.Availability, error)
	UpdateAvailability(ctx context.Context, caregiverID, id uuid.UUID, req *model.AvailabilityRequest) ([]*model.Availability, error)
	RemoveAvailability(ctx context.Context, caregiverID, id uuid.UUID) ([]*model.Availability, error)
}

type Service struct {
	repo         repository.CaregiverRepository
	availability repository.AvailabilityRepository
	hasher       security.PasswordHasher
}

func NewService(repo repository.CaregiverRepository, availability repository.AvailabilityRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, availability: availability, hasher: hasher}
}

func (s *Service) ListCaregivers(ctx context.Context, sort model.Sort) ([]*model.Caregiver, error) {
	caregivers, err := s.repo.List(ctx, sort)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return caregivers, nil
}

// GetCaregiver returns the caregiver with its availability attached.
func (s *Service) GetCaregiver(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	caregiver, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	entries, err := s.availability.List(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	caregiver.Availability = entries
	return caregiver, nil
}

func (s *Service) CreateCaregiver(ctx context.Context, req *model.RegisterCaregiverRequest) (*model.Caregiver, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	caregiver := &model.Caregiver{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		IsAdmin:        req.IsAdmin,
	}
	if caregiver.Specialization == "" {
		caregiver.Specialization = model.DefaultSpecialization
	}
	if err := s.repo.Create(ctx, caregiver); err != nil {
		return nil, service.StoreError(resource, err)
	}
	return caregiver, nil
}

func (s *Service) UpdateCaregiver(ctx context.Context, principal model.Principal, id uuid.UUID, req *model.UpdateCaregiverRequest) (*model.Caregiver, error) {
	if req.IsAdmin != nil && !principal.IsAdmin {
		return nil, apperrors.Forbidden("only admins can change admin rights")
	}

	patch := model.CaregiverPatch{
		Username:       req.Username,
		Email:          req.Email,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		IsAdmin:        req.IsAdmin,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		patch.PasswordHash = &hash
	}

	n, err := s.repo.Update(ctx, id, patch)
	if err := service.Applied(resource, n, err); err != nil {
		return nil, err
	}
	return s.GetCaregiver(ctx, id)
}

func (s *Service) DeleteCaregiver(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	return service.Applied(resource, n, err)
}

func (s *Service) ListAvailability(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error) {
	found, err := s.repo.Exists(ctx, caregiverID)
	if err := service.MustExist(resource, found, err); err != nil {
		return nil, err
	}
	return s.list(ctx, caregiverID)
}

func (s *Service) AddAvailability(ctx context.Context, caregiverID uuid.UUID, req *model.AvailabilityRequest) ([]*model.Availability, error) {
	n, err := s.availability.Add(ctx, entry(caregiverID, uuid.Nil, req))
	if err := service.Applied(resource, n, err); err != nil {
		return nil, err
	}
	return s.list(ctx, caregiverID)
}

func (s *Service) UpdateAvailability(ctx context.Context, caregiverID, id uuid.UUID, req *model.AvailabilityRequest) ([]*model.Availability, error) {
	n, err := s.availability.Replace(ctx, entry(caregiverID, id, req))
	if err := service.Applied(availabilityResource, n, err); err != nil {
		return nil, err
	}
	return s.list(ctx, caregiverID)
}

func (s *Service) RemoveAvailability(ctx context.Context, caregiverID, id uuid.UUID) ([]*model.Availability, error) {
	n, err := s.availability.Remove(ctx, caregiverID, id)
	if err := service.Applied(availabilityResource, n, err); err != nil {
		return nil, err
	}
	return s.list(ctx, caregiverID)
}

func (s *Service) list(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error) {
	entries, err := s.availability.List(ctx, caregiverID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

func entry(caregiverID, id uuid.UUID, req *model.AvailabilityRequest) *model.Availability {
	return &model.Availability{
		ID:          id,
		CaregiverID: caregiverID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
}
