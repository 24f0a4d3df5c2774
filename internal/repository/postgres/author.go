package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const authorColumns = `id, full_name, nationality, profile_avatar, created_at, updated_at`

var (
	authorSortColumns = map[string]string{
		"fullName":    "full_name",
		"nationality": "nationality",
		"createdAt":   "created_at",
	}
	authorProjection = map[string]string{
		"fullName":      "full_name",
		"nationality":   "nationality",
		"profileAvatar": "profile_avatar",
	}
)

type authorRepository struct {
	BaseRepository
}

func NewAuthorRepository(base BaseRepository) repository.AuthorRepository {
	return &authorRepository{base}
}

func (r *authorRepository) Create(ctx context.Context, author *model.Author) error {
	query := `
		INSERT INTO authors (id, full_name, nationality, profile_avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	author.ID = uuid.New()
	author.CreatedAt = time.Now().UTC()
	author.UpdatedAt = author.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		author.ID,
		author.FullName,
		author.Nationality,
		author.ProfileAvatar,
		author.CreatedAt,
		author.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create author")
	}
	return nil
}

func (r *authorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var author model.Author
	if err := r.db.GetContext(ctx, &author, query, id); err != nil {
		return nil, translate(err, "get author")
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, sort model.Sort) ([]*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors` + orderBy(sort, authorSortColumns, "full_name ASC")

	authors := []*model.Author{}
	if err := r.db.SelectContext(ctx, &authors, query); err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, id uuid.UUID, patch model.AuthorPatch) (int64, error) {
	u := newUpdate("authors")
	if patch.FullName != nil {
		u.set("full_name", *patch.FullName)
	}
	if patch.Nationality != nil {
		u.set("nationality", *patch.Nationality)
	}
	if patch.ProfileAvatar != nil {
		u.set("profile_avatar", *patch.ProfileAvatar)
	}

	query, args := u.build(id)
	return r.exec(ctx, "update author", query, args...)
}

// Delete leaves the author's books in place; their author reference dangles.
func (r *authorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete author", `DELETE FROM authors WHERE id = $1`, id)
}

func (r *authorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "authors", id)
}

func (r *authorRepository) Project(ctx context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	return r.project(ctx, "authors", authorProjection, ids, fields)
}
