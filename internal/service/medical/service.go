package medical

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

const resource = "Medical note"

type MedicalNoteServicer interface {
	ListNotes(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNoteView, error)
	GetNote(ctx context.Context, id uuid.UUID) (*model.MedicalNoteView, error)
	CreateNote(ctx context.Context, req *model.CreateMedicalNoteRequest) (*model.MedicalNoteView, error)
	UpdateNote(ctx context.Context, id uuid.UUID, req *model.UpdateMedicalNoteRequest) (*model.MedicalNoteView, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       repository.MedicalNoteRepository
	users      repository.UserRepository
	caregivers repository.CaregiverRepository
	resolver   *resolver.Resolver
	now        func() time.Time
}

func NewService(repo repository.MedicalNoteRepository, users repository.UserRepository, caregivers repository.CaregiverRepository, res *resolver.Resolver) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		caregivers: caregivers,
		resolver:   res,
		now:        time.Now,
	}
}

func (s *Service) ListNotes(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNoteView, error) {
	notes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.MedicalNotes(ctx, notes)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*model.MedicalNoteView, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, note)
}

// CreateNote records a note from an existing caregiver about an existing
// patient. A missing issuedAt means now.
func (s *Service) CreateNote(ctx context.Context, req *model.CreateMedicalNoteRequest) (*model.MedicalNoteView, error) {
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

	note := &model.MedicalNote{
		PatientID:   patientID,
		CaregiverID: caregiverID,
		Notes:       req.Notes,
		Medications: model.Medications(req.Medications),
		IssuedAt:    s.now().UTC(),
	}
	if req.IssuedAt != nil {
		note.IssuedAt = req.IssuedAt.Time
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, service.StoreError(resource, err)
	}
	return s.resolve(ctx, note)
}

func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, req *model.UpdateMedicalNoteRequest) (*model.MedicalNoteView, error) {
	patch := model.MedicalNotePatch{Notes: req.Notes}
	if req.Medications != nil {
		meds := model.Medications(*req.Medications)
		patch.Medications = &meds
	}
	if req.IssuedAt != nil {
		patch.IssuedAt = &req.IssuedAt.Time
	}

	n, err := s.repo.Update(ctx, id, patch)
	if err := service.Applied(resource, n, err); err != nil {
		return nil, err
	}
	return s.GetNote(ctx, id)
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	return service.Applied(resource, n, err)
}

func (s *Service) resolve(ctx context.Context, note *model.MedicalNote) (*model.MedicalNoteView, error) {
	views, err := s.resolver.MedicalNotes(ctx, []*model.MedicalNote{note})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}
