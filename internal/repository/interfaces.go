package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
)

var (
	// ErrNotFound means no record matched the given id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a uniqueness constraint is already held by another record.
	ErrConflict = errors.New("unique constraint violation")
)

type (
	// Projector returns the requested fields of each id that exists. Missing
	// ids are absent from the result.
	Projector interface {
		Project(ctx context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error)
	}

	UserRepository interface {
		Projector
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		List(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
		Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
		Exists(ctx context.Context, id uuid.UUID) (bool, error)
	}

	CaregiverRepository interface {
		Projector
		Create(ctx context.Context, caregiver *model.Caregiver) error
		Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error)
		GetByEmail(ctx context.Context, email string) (*model.Caregiver, error)
		List(ctx context.Context, sort model.Sort) ([]*model.Caregiver, error)
		Update(ctx context.Context, id uuid.UUID, patch model.CaregiverPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
		Exists(ctx context.Context, id uuid.UUID) (bool, error)
	}

	// AvailabilityRepository mutates a caregiver's owned availability entries.
	// Every mutation is a single statement; a zero count means the caregiver
	// (or the entry) does not exist.
	AvailabilityRepository interface {
		List(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error)
		Add(ctx context.Context, entry *model.Availability) (int64, error)
		Replace(ctx context.Context, entry *model.Availability) (int64, error)
		Remove(ctx context.Context, caregiverID, id uuid.UUID) (int64, error)
	}

	// MessageRepository mutates the messages owned by a user or a caregiver.
	MessageRepository interface {
		List(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.Message, error)
		Add(ctx context.Context, owner model.OwnerKind, msg *model.Message) (int64, error)
		MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error)
		Remove(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error)
		// Update only applies a status change when the current status may
		// transition to it.
		Update(ctx context.Context, id uuid.UUID, patch model.AppointmentPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
	}

	MedicalNoteRepository interface {
		Create(ctx context.Context, note *model.MedicalNote) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalNote, error)
		List(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNote, error)
		Update(ctx context.Context, id uuid.UUID, patch model.MedicalNotePatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
	}

	ServiceRequestRepository interface {
		Create(ctx context.Context, req *model.ServiceRequest) error
		Get(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error)
		List(ctx context.Context, filter model.ServiceRequestFilter) ([]*model.ServiceRequest, error)
		// Update only applies a status change when the current status may
		// transition to it.
		Update(ctx context.Context, id uuid.UUID, patch model.ServiceRequestPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
	}

	AuthorRepository interface {
		Projector
		Create(ctx context.Context, author *model.Author) error
		Get(ctx context.Context, id uuid.UUID) (*model.Author, error)
		List(ctx context.Context, sort model.Sort) ([]*model.Author, error)
		Update(ctx context.Context, id uuid.UUID, patch model.AuthorPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
		Exists(ctx context.Context, id uuid.UUID) (bool, error)
	}

	BookRepository interface {
		Create(ctx context.Context, book *model.Book) error
		Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
		List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error)
		Update(ctx context.Context, id uuid.UUID, patch model.BookPatch) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (int64, error)
	}
)
