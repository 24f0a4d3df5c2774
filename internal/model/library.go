package model

import "github.com/google/uuid"

type BookCover string

const (
	BookCoverSoft BookCover = "soft cover"
	BookCoverHard BookCover = "hard cover"
)

type Author struct {
	Base
	FullName      string `json:"fullName" db:"full_name"`
	Nationality   string `json:"nationality" db:"nationality"`
	ProfileAvatar string `json:"profileAvatar,omitempty" db:"profile_avatar"`
}

type AuthorPatch struct {
	FullName      *string
	Nationality   *string
	ProfileAvatar *string
}

type Book struct {
	Base
	Title       string    `json:"title" db:"title"`
	AuthorID    uuid.UUID `json:"author" db:"author_id"`
	Description string    `json:"description" db:"description"`
	Cover       BookCover `json:"cover" db:"cover"`
	Price       float64   `json:"price" db:"price"`
}

type BookFilter struct {
	AuthorID *uuid.UUID
	Sort     Sort
}

type BookPatch struct {
	Title       *string
	AuthorID    *uuid.UUID
	Description *string
	Cover       *BookCover
	Price       *float64
}

type CreateAuthorRequest struct {
	FullName      string `json:"fullName" validate:"required,min=5,max=30" normalize:"trim"`
	Nationality   string `json:"nationality" validate:"required,min=5,max=30" normalize:"trim"`
	ProfileAvatar string `json:"profileAvatar" validate:"omitempty,min=10" normalize:"trim"`
}

type UpdateAuthorRequest struct {
	FullName      *string `json:"fullName" validate:"omitempty,min=5,max=30" normalize:"trim"`
	Nationality   *string `json:"nationality" validate:"omitempty,min=5,max=30" normalize:"trim"`
	ProfileAvatar *string `json:"profileAvatar" validate:"omitempty,min=10" normalize:"trim"`
}

type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required,min=8,max=38" normalize:"trim"`
	Author      string   `json:"author" validate:"required,uuid"`
	Description string   `json:"description" validate:"required,min=15" normalize:"trim"`
	Cover       string   `json:"cover" validate:"required,oneof='soft cover' 'hard cover'"`
	Price       *float64 `json:"price" validate:"required,min=0"`
}

type UpdateBookRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=8,max=38" normalize:"trim"`
	Author      *string  `json:"author" validate:"omitempty,uuid"`
	Description *string  `json:"description" validate:"omitempty,min=15" normalize:"trim"`
	Cover       *string  `json:"cover" validate:"omitempty,oneof='soft cover' 'hard cover'"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
}

type BookView struct {
	*Book
	Author Ref `json:"author"`
}
