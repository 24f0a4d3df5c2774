package message

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

	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/pkg/auth"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListMessages(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.MessageView, error) {
	args := m.Called(ctx, owner, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MessageView), args.Error(1)
}

func (m *mockService) SendMessage(ctx context.Context, principal model.Principal, owner model.OwnerKind, req *model.SendMessageRequest) (*model.MessageView, error) {
	args := m.Called(ctx, principal, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageView), args.Error(1)
}

func (m *mockService) MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error {
	return m.Called(ctx, owner, ownerID, id).Error(0)
}

func (m *mockService) DeleteMessage(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error {
	return m.Called(ctx, owner, ownerID, id).Error(0)
}

type fixture struct {
	router *gin.Engine
	svc    *mockService
	tokens auth.JWTService
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		svc:    new(mockService),
		tokens: auth.NewJWTService(auth.Config{Secret: "test-secret"}),
	}
	f.router = gin.New()
	NewHandler(f.svc).RegisterRoutes(f.router.Group("/api/v1", middleware.NewAuthMiddleware(f.tokens).Authenticate()))
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, caller uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	token, err := f.tokens.GenerateSessionToken(caller, false)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestUnreadInbox(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.svc.On("ListMessages", mock.Anything, model.OwnerCaregiver, id, model.MessageFilter{UnreadOnly: true}).
		Return([]*model.MessageView{}, nil)

	w := f.do(t, http.MethodGet, "/api/v1/messages/caregiver/"+id.String()+"/unread", "", uuid.New())
	assert.Equal(t, http.StatusOK, w.Code)
	f.svc.AssertExpectations(t)
}

func TestSendToUserCarriesPrincipal(t *testing.T) {
	f := newFixture()
	caller, recipient := uuid.New(), uuid.New()
	msg := &model.MessageView{Message: &model.Message{ID: uuid.New(), SenderID: caller, Type: model.MessageTypeNotification}}
	f.svc.On("SendMessage", mock.Anything, model.Principal{ID: caller}, model.OwnerUser, mock.AnythingOfType("*model.SendMessageRequest")).
		Return(msg, nil)

	w := f.do(t, http.MethodPost, "/api/v1/messages/send-to-user", `{"recipientId":"`+recipient.String()+`","content":"hello"}`, caller)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"notification"`)
}

func TestSendRejectsUnknownType(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/v1/messages/send-to-caregiver", `{"recipientId":"`+uuid.NewString()+`","content":"hi","type":"spam"}`, uuid.New())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.svc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkReadMissing(t *testing.T) {
	f := newFixture()
	owner, id := uuid.New(), uuid.New()
	f.svc.On("MarkRead", mock.Anything, model.OwnerUser, owner, id).Return(apperrors.NotFound("User or message", nil))

	w := f.do(t, http.MethodPatch, "/api/v1/messages/user/"+owner.String()+"/mark-as-read/"+id.String(), "", uuid.New())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User or message not found")
}

func TestDeleteCaregiverMessage(t *testing.T) {
	f := newFixture()
	owner, id := uuid.New(), uuid.New()
	f.svc.On("DeleteMessage", mock.Anything, model.OwnerCaregiver, owner, id).Return(nil)

	w := f.do(t, http.MethodDelete, "/api/v1/messages/caregiver/"+owner.String()+"/"+id.String(), "", uuid.New())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Message deleted successfully")

	w = f.do(t, http.MethodDelete, "/api/v1/messages/caregiver/"+owner.String()+"/nope", "", uuid.New())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Caregiver or message not found")
}
