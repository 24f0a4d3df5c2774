package library

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
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service/library"
	"github.com/jwalitptl/carelink-api/pkg/auth"
)

type fixture struct {
	router  *gin.Engine
	authors *mocks.AuthorRepository
	books   *mocks.BookRepository
	tokens  auth.JWTService
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		authors: new(mocks.AuthorRepository),
		books:   new(mocks.BookRepository),
		tokens:  auth.NewJWTService(auth.Config{Secret: "test-secret"}),
	}
	authMW := middleware.NewAuthMiddleware(f.tokens)
	res := resolver.New(new(mocks.UserRepository), new(mocks.CaregiverRepository), f.authors)

	f.router = gin.New()
	NewHandler(library.NewService(f.authors, f.books, res), authMW).RegisterRoutes(f.router.Group("/api/v1", authMW.Authenticate()))
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	token, err := f.tokens.GenerateSessionToken(uuid.New(), admin)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestReadsNeedAToken(t *testing.T) {
	f := newFixture()
	f.books.On("List", mock.Anything, model.BookFilter{}).Return([]*model.Book{}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/books", "", false).Code)
}

func TestCreateAuthorIsAdminOnly(t *testing.T) {
	f := newFixture()
	f.authors.On("Create", mock.Anything, mock.AnythingOfType("*model.Author")).Return(nil)
	body := `{"fullName":"Ursula Le Guin","nationality":"American"}`

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/authors", body, false).Code)

	w := f.do(t, http.MethodPost, "/api/v1/authors", body, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"Ursula Le Guin"`)
}

func TestCreateBookWithUnknownAuthor(t *testing.T) {
	f := newFixture()
	authorID := uuid.New()
	f.authors.On("Exists", mock.Anything, authorID).Return(false, nil)
	body := `{"title":"The Dispossessed","author":"` + authorID.String() + `","description":"An ambiguous utopia.","cover":"soft cover","price":12.5}`

	w := f.do(t, http.MethodPost, "/api/v1/books", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Add the author of this book first")
	f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListBooksByAuthor(t *testing.T) {
	f := newFixture()
	authorID := uuid.New()
	f.books.On("List", mock.Anything, model.BookFilter{AuthorID: &authorID}).Return([]*model.Book{}, nil)

	w := f.do(t, http.MethodGet, "/api/v1/books?authorId="+authorID.String(), "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	f.books.AssertExpectations(t)
}
