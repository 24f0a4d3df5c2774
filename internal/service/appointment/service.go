package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

const resource = "Appointment"

type AppointmentServicer interface {
	ListAppointments(ctx context.Context, filter model.AppointmentFilter) ([]*model.AppointmentView, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.AppointmentView, error)
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentView, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.AppointmentView, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) (*model.AppointmentView, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       repository.AppointmentRepository
	users      repository.UserRepository
	caregivers repository.CaregiverRepository
	resolver   *resolver.Resolver
}

func NewService(repo repository.AppointmentRepository, users repository.UserRepository, caregivers repository.CaregiverRepository, res *resolver.Resolver) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		caregivers: caregivers,
		resolver:   res,
	}
}

func (s *Service) ListAppointments(ctx context.Context, filter model.AppointmentFilter) ([]*model.AppointmentView, error) {
	appts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Appointments(ctx, appts, resolver.AppointmentCaregiver, resolver.AppointmentPatient)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.AppointmentView, error) {
	return s.view(ctx, id, resolver.AppointmentCaregiver, resolver.AppointmentPatient)
}

// CreateAppointment books a scheduled appointment between an existing patient
// and an existing caregiver.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentView, error) {
	patientID, err := service.ParseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	caregiverID, err := service.ParseID("caregiverId", req.CaregiverID)
	if err != nil {
		return nil, err
	}

	found, err := s.users.Exists(ctx, patientID)
	if err := service.MustExist("Patient", found, err); err != nil {
		return nil, err
	}
	found, err = s.caregivers.Exists(ctx, caregiverID)
	if err := service.MustExist("Caregiver", found, err); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		PatientID:   patientID,
		CaregiverID: caregiverID,
		Date:        req.Date.Time,
		Notes:       req.Notes,
		Status:      model.AppointmentStatusScheduled,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, appt, resolver.AppointmentCaregiver, resolver.AppointmentPatient)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.AppointmentView, error) {
	patch := model.AppointmentPatch{Notes: req.Notes}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}
	if req.Status != nil {
		status := model.AppointmentStatus(*req.Status)
		patch.Status = &status
	}

	if err := s.update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.view(ctx, id, resolver.AppointmentCaregiver, resolver.AppointmentPatient)
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*model.AppointmentView, error) {
	status := model.AppointmentStatusCancelled
	if err := s.update(ctx, id, model.AppointmentPatch{Status: &status}); err != nil {
		return nil, err
	}
	return s.view(ctx, id, resolver.CancelledCaregiver, resolver.CancelledPatient)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	return service.Applied(resource, n, err)
}

// update applies patch in one guarded statement. When nothing matched, the
// current record tells a missing appointment apart from a refused transition.
func (s *Service) update(ctx context.Context, id uuid.UUID, patch model.AppointmentPatch) error {
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
	if patch.Status != nil && !current.Status.CanTransitionTo(*patch.Status) {
		return apperrors.Validation(fmt.Sprintf("cannot change appointment status from %s to %s", current.Status, *patch.Status), nil)
	}
	return apperrors.Internal(errors.New("appointment update matched no rows"))
}

func (s *Service) view(ctx context.Context, id uuid.UUID, caregiver, patient resolver.Projection) (*model.AppointmentView, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, appt, caregiver, patient)
}

func (s *Service) resolve(ctx context.Context, appt *model.Appointment, caregiver, patient resolver.Projection) (*model.AppointmentView, error) {
	views, err := s.resolver.Appointments(ctx, []*model.Appointment{appt}, caregiver, patient)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}
