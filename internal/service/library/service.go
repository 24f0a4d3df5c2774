package library

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

const (
	authorResource = "Author"
	bookResource   = "Book"

	missingAuthor = "Add the author of this book first"
)

type LibraryServicer interface {
	ListAuthors(ctx context.Context, sort model.Sort) ([]*model.Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error)
	CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error

	ListBooks(ctx context.Context, filter model.BookFilter) ([]*model.BookView, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookView, error)
	CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookView, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookView, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	authors  repository.AuthorRepository
	books    repository.BookRepository
	resolver *resolver.Resolver
}

func NewService(authors repository.AuthorRepository, books repository.BookRepository, res *resolver.Resolver) *Service {
	return &Service{authors: authors, books: books, resolver: res}
}

func (s *Service) ListAuthors(ctx context.Context, sort model.Sort) ([]*model.Author, error) {
	authors, err := s.authors.List(ctx, sort)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return authors, nil
}

func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(authorResource, err)
	}
	return author, nil
}

func (s *Service) CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	author := &model.Author{
		FullName:      req.FullName,
		Nationality:   req.Nationality,
		ProfileAvatar: req.ProfileAvatar,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, service.StoreError(authorResource, err)
	}
	return author, nil
}

func (s *Service) UpdateAuthor(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	n, err := s.authors.Update(ctx, id, model.AuthorPatch{
		FullName:      req.FullName,
		Nationality:   req.Nationality,
		ProfileAvatar: req.ProfileAvatar,
	})
	if err := service.Applied(authorResource, n, err); err != nil {
		return nil, err
	}
	return s.GetAuthor(ctx, id)
}

// DeleteAuthor leaves the author's books in place; they resolve as dangling.
func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	n, err := s.authors.Delete(ctx, id)
	return service.Applied(authorResource, n, err)
}

func (s *Service) ListBooks(ctx context.Context, filter model.BookFilter) ([]*model.BookView, error) {
	books, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Books(ctx, books)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*model.BookView, error) {
	book, err := s.books.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(bookResource, err)
	}
	return s.resolve(ctx, book)
}

func (s *Service) CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookView, error) {
	authorID, err := s.author(ctx, req.Author)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:       req.Title,
		AuthorID:    authorID,
		Description: req.Description,
		Cover:       model.BookCover(req.Cover),
		Price:       *req.Price,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, service.StoreError(bookResource, err)
	}
	return s.resolve(ctx, book)
}

func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.BookView, error) {
	patch := model.BookPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Author != nil {
		authorID, err := s.author(ctx, *req.Author)
		if err != nil {
			return nil, err
		}
		patch.AuthorID = &authorID
	}
	if req.Cover != nil {
		cover := model.BookCover(*req.Cover)
		patch.Cover = &cover
	}

	n, err := s.books.Update(ctx, id, patch)
	if err := service.Applied(bookResource, n, err); err != nil {
		return nil, err
	}
	return s.GetBook(ctx, id)
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	n, err := s.books.Delete(ctx, id)
	return service.Applied(bookResource, n, err)
}

// author parses raw and requires the author to be on file.
func (s *Service) author(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := service.ParseID("author", raw)
	if err != nil {
		return uuid.Nil, err
	}
	found, err := s.authors.Exists(ctx, id)
	if err != nil {
		return uuid.Nil, apperrors.Internal(err)
	}
	if !found {
		return uuid.Nil, apperrors.Validation(missingAuthor, nil)
	}
	return id, nil
}

func (s *Service) resolve(ctx context.Context, book *model.Book) (*model.BookView, error) {
	views, err := s.resolver.Books(ctx, []*model.Book{book})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}
