package model

type Caregiver struct {
	Base
	Username       string          `json:"username" db:"username"`
	Email          string          `json:"email" db:"email"`
	PasswordHash   string          `json:"-" db:"password_hash"`
	Specialization string          `json:"specialization" db:"specialization"`
	Phone          string          `json:"phone,omitempty" db:"phone"`
	IsAdmin        bool            `json:"isAdmin" db:"is_admin"`
	Availability   []*Availability `json:"availability,omitempty" db:"-"`
	Messages       []*Message      `json:"messages,omitempty" db:"-"`
}

const DefaultSpecialization = "General"

type CaregiverPatch struct {
	Username       *string
	Email          *string
	PasswordHash   *string
	Specialization *string
	Phone          *string
	IsAdmin        *bool
}

type RegisterCaregiverRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=30" normalize:"trim"`
	Email          string `json:"email" validate:"required,email" normalize:"trim,lower"`
	Password       string `json:"password" validate:"required,min=6"`
	Specialization string `json:"specialization" validate:"omitempty,max=60" normalize:"trim" default:"General"`
	Phone          string `json:"phone" normalize:"trim"`
	IsAdmin        bool   `json:"isAdmin"`
}

type UpdateCaregiverRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=30" normalize:"trim"`
	Email          *string `json:"email" validate:"omitempty,email" normalize:"trim,lower"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
	Specialization *string `json:"specialization" validate:"omitempty,max=60" normalize:"trim"`
	Phone          *string `json:"phone" normalize:"trim"`
	IsAdmin        *bool   `json:"isAdmin"`
}
