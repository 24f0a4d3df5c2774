package caregiver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/repository/mocks"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

func newService() (*Service, *mocks.CaregiverRepository, *mocks.AvailabilityRepository) {
	repo := new(mocks.CaregiverRepository)
	availability := new(mocks.AvailabilityRepository)
	return NewService(repo, availability, security.NewBcryptHasher(4)), repo, availability
}

func message(err error) string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return ""
	}
	return appErr.Message
}

var monday = &model.AvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"}

func TestGetCaregiverAttachesAvailability(t *testing.T) {
	svc, repo, availability := newService()
	id := uuid.New()
	entries := []*model.Availability{{ID: uuid.New(), CaregiverID: id, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"}}
	repo.On("Get", mock.Anything, id).Return(&model.Caregiver{Base: model.Base{ID: id}}, nil)
	availability.On("List", mock.Anything, id).Return(entries, nil)

	caregiver, err := svc.GetCaregiver(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entries, caregiver.Availability)
}

func TestGetCaregiverNotFound(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.GetCaregiver(context.Background(), id)
	assert.Equal(t, "Caregiver not found", message(err))
}

func TestCreateCaregiverHashesPassword(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Caregiver")).Return(nil)

	caregiver, err := svc.CreateCaregiver(context.Background(), &model.RegisterCaregiverRequest{
		Username: "carol", Email: "c@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSpecialization, caregiver.Specialization)
	assert.NotEqual(t, "secret1", caregiver.PasswordHash)
}

func TestUpdateCaregiverAdminFlagRequiresAdmin(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.New()
	yes := true

	_, err := svc.UpdateCaregiver(context.Background(), model.Principal{ID: id}, id, &model.UpdateCaregiverRequest{IsAdmin: &yes})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddAvailabilityReturnsFullList(t *testing.T) {
	svc, _, availability := newService()
	id := uuid.New()
	existing := &model.Availability{ID: uuid.New(), CaregiverID: id, DayOfWeek: "Friday", StartTime: "10:00", EndTime: "11:00"}

	availability.On("Add", mock.Anything, mock.MatchedBy(func(e *model.Availability) bool {
		return e.CaregiverID == id && e.DayOfWeek == "Monday"
	})).Return(int64(1), nil)
	availability.On("List", mock.Anything, id).Return([]*model.Availability{
		{ID: uuid.New(), CaregiverID: id, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"},
		existing,
	}, nil)

	entries, err := svc.AddAvailability(context.Background(), id, monday)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAddAvailabilityUnknownCaregiver(t *testing.T) {
	svc, _, availability := newService()
	id := uuid.New()
	availability.On("Add", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.AddAvailability(context.Background(), id, monday)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Caregiver not found", message(err))
	availability.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUpdateAndRemoveAvailabilityNotFound(t *testing.T) {
	svc, _, availability := newService()
	caregiverID, id := uuid.New(), uuid.New()
	availability.On("Replace", mock.Anything, mock.Anything).Return(int64(0), nil)
	availability.On("Remove", mock.Anything, caregiverID, id).Return(int64(0), nil)

	_, err := svc.UpdateAvailability(context.Background(), caregiverID, id, monday)
	assert.Equal(t, "Caregiver or availability not found", message(err))

	_, err = svc.RemoveAvailability(context.Background(), caregiverID, id)
	assert.Equal(t, "Caregiver or availability not found", message(err))
}

func TestListAvailabilityChecksCaregiver(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(false, nil)

	_, err := svc.ListAvailability(context.Background(), id)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
