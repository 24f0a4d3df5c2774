package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/email"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/repository/mocks"
	"github.com/jwalitptl/carelink-api/internal/service/auth"
	pkgauth "github.com/jwalitptl/carelink-api/pkg/auth"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, email.Message) error { return nil }

type envelope struct {
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setup() (*gin.Engine, *mocks.UserRepository, security.PasswordHasher) {
	gin.SetMode(gin.TestMode)
	users := new(mocks.UserRepository)
	hasher := security.NewBcryptHasher(4)
	tokens := pkgauth.NewJWTService(pkgauth.Config{Secret: "test-secret"})
	svc := auth.NewService(users, new(mocks.CaregiverRepository), hasher, tokens, nopMailer{}, "http://localhost")

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, users, hasher
}

func post(t *testing.T, r http.Handler, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRegisterAndLogin(t *testing.T) {
	r, users, hasher := setup()

	var stored *model.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.User)
			stored.ID = uuid.New()
		}).
		Return(nil)

	w, env := post(t, r, "/api/v1/auth/register", `{"username":"alice123","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, env.Data["id"])
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, "user", env.Data["role"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.NoError(t, hasher.Compare(stored.PasswordHash, "secret1"))

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(stored, nil)

	w, env = post(t, r, "/api/v1/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.Data["token"])

	for _, password := range []string{"wrong", "wrong12"} {
		w, env = post(t, r, "/api/v1/auth/login", `{"email":"a@x.com","password":"`+password+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Wrong Email or Password", env.Message)
	}
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	r, users, _ := setup()
	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrNotFound)

	w, env := post(t, r, "/api/v1/auth/login", `{"email":"nobody@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failure", env.Code)
	assert.Equal(t, "Wrong Email or Password", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	r, users, _ := setup()

	w, env := post(t, r, "/api/v1/auth/register", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"username" length must be at least 3 characters long`, env.Message)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForgotPasswordAlwaysAcknowledges(t *testing.T) {
	r, users, _ := setup()
	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrNotFound)

	w, env := post(t, r, "/api/v1/password/forgot-password", `{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Check your inbox", env.Message)
}

func TestResetPasswordMalformedID(t *testing.T) {
	r, _, _ := setup()

	w, env := post(t, r, "/api/v1/password/reset-password/not-an-id/token", `{"password":"newpass1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_or_expired_token", env.Code)
}
