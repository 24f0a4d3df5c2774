package caregiver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository/mocks"
	"github.com/jwalitptl/carelink-api/internal/service/caregiver"
	"github.com/jwalitptl/carelink-api/pkg/auth"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

type fixture struct {
	router       *gin.Engine
	repo         *mocks.CaregiverRepository
	availability *mocks.AvailabilityRepository
	tokens       auth.JWTService
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		repo:         new(mocks.CaregiverRepository),
		availability: new(mocks.AvailabilityRepository),
		tokens:       auth.NewJWTService(auth.Config{Secret: "test-secret"}),
	}
	authMW := middleware.NewAuthMiddleware(f.tokens)
	svc := caregiver.NewService(f.repo, f.availability, security.NewBcryptHasher(4))

	f.router = gin.New()
	NewHandler(svc, authMW).RegisterRoutes(f.router.Group("/api/v1", authMW.Authenticate()))
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, id uuid.UUID, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	token, err := f.tokens.GenerateSessionToken(id, admin)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreateCaregiverIsAdminOnly(t *testing.T) {
	f := newFixture()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Caregiver")).Return(nil)
	body := `{"username":"carol","email":"c@x.com","password":"secret1"}`

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/caregivers", body, uuid.New(), false).Code)

	w := f.do(t, http.MethodPost, "/api/v1/caregivers", body, uuid.New(), true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"specialization":"General"`)
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestAddAvailability(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.availability.On("Add", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.availability.On("List", mock.Anything, id).Return([]*model.Availability{
		{ID: uuid.New(), CaregiverID: id, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"},
	}, nil)

	w := f.do(t, http.MethodPost, "/api/v1/availability/"+id.String(), `{"dayOfWeek":"Monday","startTime":"09:00","endTime":"12:00"}`, id, false)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"dayOfWeek":"Monday"`)
}

func TestAddAvailabilityRejectsUnknownDay(t *testing.T) {
	f := newFixture()
	id := uuid.New()

	w := f.do(t, http.MethodPost, "/api/v1/availability/"+id.String(), `{"dayOfWeek":"Funday","startTime":"09:00","endTime":"12:00"}`, id, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.availability.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRemoveAvailabilityNotFound(t *testing.T) {
	f := newFixture()
	caregiverID, id := uuid.New(), uuid.New()
	f.availability.On("Remove", mock.Anything, caregiverID, id).Return(int64(0), nil)

	w := f.do(t, http.MethodDelete, "/api/v1/availability/"+caregiverID.String()+"/"+id.String(), "", caregiverID, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Caregiver or availability not found")
}
