package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/carelink-api/internal/model"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListPatients(ctx context.Context, sort model.Sort) ([]*model.PatientView, error) {
	args := m.Called(ctx, sort)
	return args.Get(0).([]*model.PatientView), args.Error(1)
}

func (m *mockService) GetPatient(ctx context.Context, id uuid.UUID) (*model.PatientView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatientView), args.Error(1)
}

func (m *mockService) ListAppointments(ctx context.Context, id uuid.UUID) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AppointmentView), args.Error(1)
}

func (m *mockService) ListMedicalNotes(ctx context.Context, id uuid.UUID) ([]*model.MedicalNoteView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MedicalNoteView), args.Error(1)
}

func (m *mockService) ListServiceRequests(ctx context.Context, id uuid.UUID) ([]*model.ServiceRequestView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ServiceRequestView), args.Error(1)
}

func (m *mockService) ListMessages(ctx context.Context, id uuid.UUID) ([]*model.MessageView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MessageView), args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListPatientsPassesSort(t *testing.T) {
	svc := new(mockService)
	svc.On("ListPatients", mock.Anything, model.Sort{Field: "username", Desc: true}).Return([]*model.PatientView{}, nil)

	w := get(setupRouter(svc), "/api/v1/patients?sort=-username")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestPatientSubListUnknownPatient(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("ListMedicalNotes", mock.Anything, id).Return(nil, apperrors.NotFound("Patient", nil))

	w := get(setupRouter(svc), "/api/v1/patients/"+id.String()+"/medical-notes")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Patient not found")
}

func TestMalformedPatientID(t *testing.T) {
	svc := new(mockService)

	w := get(setupRouter(svc), "/api/v1/patients/42/appointments")
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything)
}
