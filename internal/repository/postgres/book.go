package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const bookColumns = `id, title, author_id, description, cover, price, created_at, updated_at`

var bookSortColumns = map[string]string{
	"title":     "title",
	"price":     "price",
	"createdAt": "created_at",
}

type bookRepository struct {
	BaseRepository
}

func NewBookRepository(base BaseRepository) repository.BookRepository {
	return &bookRepository{base}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, author_id, description, cover, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	book.ID = uuid.New()
	book.CreatedAt = time.Now().UTC()
	book.UpdatedAt = book.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.AuthorID,
		book.Description,
		book.Cover,
		book.Price,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create book")
	}
	return nil
}

func (r *bookRepository) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, id); err != nil {
		return nil, translate(err, "get book")
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error) {
	var c conditions
	if filter.AuthorID != nil {
		c.and("author_id = %s", *filter.AuthorID)
	}
	query := `SELECT ` + bookColumns + ` FROM books` + c.where() +
		orderBy(filter.Sort, bookSortColumns, "title ASC")

	books := []*model.Book{}
	if err := r.db.SelectContext(ctx, &books, query, c.values...); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, id uuid.UUID, patch model.BookPatch) (int64, error) {
	u := newUpdate("books")
	if patch.Title != nil {
		u.set("title", *patch.Title)
	}
	if patch.AuthorID != nil {
		u.set("author_id", *patch.AuthorID)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.Cover != nil {
		u.set("cover", *patch.Cover)
	}
	if patch.Price != nil {
		u.set("price", *patch.Price)
	}

	query, args := u.build(id)
	return r.exec(ctx, "update book", query, args...)
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete book", `DELETE FROM books WHERE id = $1`, id)
}
