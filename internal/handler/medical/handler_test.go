package medical

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) view(args mock.Arguments) (*model.MedicalNoteView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalNoteView), args.Error(1)
}

func (m *mockService) ListNotes(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNoteView, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.MedicalNoteView), args.Error(1)
}

func (m *mockService) GetNote(ctx context.Context, id uuid.UUID) (*model.MedicalNoteView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *mockService) CreateNote(ctx context.Context, req *model.CreateMedicalNoteRequest) (*model.MedicalNoteView, error) {
	return m.view(m.Called(ctx, req))
}

func (m *mockService) UpdateNote(ctx context.Context, id uuid.UUID, req *model.UpdateMedicalNoteRequest) (*model.MedicalNoteView, error) {
	return m.view(m.Called(ctx, id, req))
}

func (m *mockService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestCreateNoteValidatesMedications(t *testing.T) {
	svc := new(mockService)
	var got *model.CreateMedicalNoteRequest
	svc.On("CreateNote", mock.Anything, mock.AnythingOfType("*model.CreateMedicalNoteRequest")).
		Run(func(args mock.Arguments) { got = args.Get(1).(*model.CreateMedicalNoteRequest) }).
		Return(&model.MedicalNoteView{MedicalNote: &model.MedicalNote{Base: model.Base{ID: uuid.New()}}}, nil)
	r := setupRouter(svc)
	ids := `"caregiverId":"` + uuid.NewString() + `","patientId":"` + uuid.NewString() + `"`

	w := serve(r, http.MethodPost, "/api/v1/medical-notes", `{`+ids+`,"notes":"ok","medications":[{"name":"aspirin"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything)

	w = serve(r, http.MethodPost, "/api/v1/medical-notes", `{`+ids+`,"notes":"  ok  ","medications":[{"name":"aspirin","dosage":"100mg","frequency":"daily"}]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "ok", got.Notes)
	assert.Nil(t, got.IssuedAt)
}

func TestListNotesByPatient(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("ListNotes", mock.Anything, model.MedicalNoteFilter{PatientID: &id, Sort: model.Sort{Field: "issuedAt", Desc: true}}).
		Return([]*model.MedicalNoteView{}, nil)

	w := serve(setupRouter(svc), http.MethodGet, "/api/v1/medical-notes/patient/"+id.String()+"?sort=-issuedAt", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListNotesMalformedFilter(t *testing.T) {
	svc := new(mockService)

	w := serve(setupRouter(svc), http.MethodGet, "/api/v1/medical-notes?caregiverId=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListNotes", mock.Anything, mock.Anything)
}

func TestGetNoteNotFound(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("GetNote", mock.Anything, id).Return(nil, apperrors.NotFound("Medical note", nil))

	w := serve(setupRouter(svc), http.MethodGet, "/api/v1/medical-notes/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Medical note not found")
}
