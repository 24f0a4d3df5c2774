package library

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/library"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

type Handler struct {
	service library.LibraryServicer
	auth    *middleware.AuthMiddleware
}

func NewHandler(service library.LibraryServicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// RegisterRoutes expects r to sit behind Authenticate. Reads are open to any
// token holder, writes need an admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := h.auth.RequireAdmin()

	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthor)
		authors.POST("", admin, h.CreateAuthor)
		authors.PUT("/:id", admin, h.UpdateAuthor)
		authors.DELETE("/:id", admin, h.DeleteAuthor)
	}

	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.POST("", admin, h.CreateBook)
		books.PUT("/:id", admin, h.UpdateBook)
		books.DELETE("/:id", admin, h.DeleteBook)
	}
}

func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context(), handler.SortFrom(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, authors)
}

func (h *Handler) GetAuthor(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Author")
	if !ok {
		return
	}

	author, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, author)
}

func (h *Handler) CreateAuthor(c *gin.Context) {
	var req model.CreateAuthorRequest
	if !handler.Bind(c, &req) {
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, author)
}

func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Author")
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if !handler.Bind(c, &req) {
		return
	}

	author, err := h.service.UpdateAuthor(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, author)
}

func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Author")
	if !ok {
		return
	}

	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Author deleted successfully")
}

func (h *Handler) ListBooks(c *gin.Context) {
	filter := model.BookFilter{Sort: handler.SortFrom(c)}

	var ok bool
	if filter.AuthorID, ok = handler.QueryID(c, "authorId"); !ok {
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, books)
}

func (h *Handler) GetBook(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Book")
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, book)
}

func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if !handler.Bind(c, &req) {
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, book)
}

func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Book")
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if !handler.Bind(c, &req) {
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, book)
}

func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := handler.PathID(c, "id", "Book")
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Book deleted successfully")
}
