package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

const resource = "Patient"

type PatientServicer interface {
	ListPatients(ctx context.Context, sort model.Sort) ([]*model.PatientView, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.PatientView, error)
	ListAppointments(ctx context.Context, id uuid.UUID) ([]*model.AppointmentView, error)
	ListMedicalNotes(ctx context.Context, id uuid.UUID) ([]*model.MedicalNoteView, error)
	ListServiceRequests(ctx context.Context, id uuid.UUID) ([]*model.ServiceRequestView, error)
	ListMessages(ctx context.Context, id uuid.UUID) ([]*model.MessageView, error)
}

// Service reads patients, the users whose role is "user", along with
// everything that references them.
type Service struct {
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	notes        repository.MedicalNoteRepository
	requests     repository.ServiceRequestRepository
	messages     repository.MessageRepository
	resolver     *resolver.Resolver
}

func NewService(
	users repository.UserRepository,
	appointments repository.AppointmentRepository,
	notes repository.MedicalNoteRepository,
	requests repository.ServiceRequestRepository,
	messages repository.MessageRepository,
	res *resolver.Resolver,
) *Service {
	return &Service{
		users:        users,
		appointments: appointments,
		notes:        notes,
		requests:     requests,
		messages:     messages,
		resolver:     res,
	}
}

func (s *Service) ListPatients(ctx context.Context, sort model.Sort) ([]*model.PatientView, error) {
	users, err := s.users.List(ctx, model.UserFilter{Role: model.UserRoleUser, Sort: sort})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Patients(ctx, users)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.PatientView, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	views, err := s.resolver.Patients(ctx, []*model.User{user})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}

func (s *Service) ListAppointments(ctx context.Context, id uuid.UUID) ([]*model.AppointmentView, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	appts, err := s.appointments.List(ctx, model.AppointmentFilter{PatientID: &id})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Appointments(ctx, appts, resolver.AppointmentCaregiver, resolver.AppointmentPatient)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) ListMedicalNotes(ctx context.Context, id uuid.UUID) ([]*model.MedicalNoteView, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	notes, err := s.notes.List(ctx, model.MedicalNoteFilter{PatientID: &id})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.MedicalNotes(ctx, notes)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) ListServiceRequests(ctx context.Context, id uuid.UUID) ([]*model.ServiceRequestView, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	reqs, err := s.requests.List(ctx, model.ServiceRequestFilter{PatientID: &id})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.ServiceRequests(ctx, reqs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) ListMessages(ctx context.Context, id uuid.UUID) ([]*model.MessageView, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	msgs, err := s.messages.List(ctx, model.OwnerUser, id, model.MessageFilter{})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Messages(ctx, msgs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) mustExist(ctx context.Context, id uuid.UUID) error {
	found, err := s.users.Exists(ctx, id)
	return service.MustExist(resource, found, err)
}
