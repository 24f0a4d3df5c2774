package model

import (
	"database/sql/driver"
	"encoding/json"
)

type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleAdmin     UserRole = "admin"
	UserRoleCaregiver UserRole = "caregiver"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type EmergencyContact struct {
	Name  string `json:"name,omitempty" validate:"omitempty,max=60" normalize:"trim"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=30" normalize:"trim"`
}

func (e EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *EmergencyContact) Scan(src interface{}) error {
	return scanJSON(src, e)
}

// User is a patient, an admin or a caregiver login living in the users collection.
type User struct {
	Base
	Username           string            `json:"username" db:"username"`
	Email              string            `json:"email" db:"email"`
	PasswordHash       string            `json:"-" db:"password_hash"`
	Role               UserRole          `json:"role" db:"role"`
	Status             UserStatus        `json:"status" db:"status"`
	Avatar             string            `json:"avatar,omitempty" db:"avatar"`
	Phone              string            `json:"phone,omitempty" db:"phone"`
	EmergencyContact   *EmergencyContact `json:"emergencyContact,omitempty" db:"emergency_contact"`
	AssignedCaregivers UUIDs             `json:"assignedCaregivers" db:"assigned_caregivers"`
	Messages           []*Message        `json:"messages,omitempty" db:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

type UserFilter struct {
	Role   UserRole
	Status UserStatus
	Sort   Sort
}

// UserPatch carries the columns an update may touch; nil means untouched.
type UserPatch struct {
	Username           *string
	Email              *string
	PasswordHash       *string
	Role               *UserRole
	Status             *UserStatus
	Avatar             *string
	Phone              *string
	EmergencyContact   *EmergencyContact
	AssignedCaregivers *UUIDs

	// ExpectedPasswordHash limits the update to rows still holding this hash.
	ExpectedPasswordHash *string
}

type RegisterUserRequest struct {
	Username           string            `json:"username" validate:"required,min=3,max=30" normalize:"trim"`
	Email              string            `json:"email" validate:"required,email" normalize:"trim,lower"`
	Password           string            `json:"password" validate:"required,min=6"`
	Role               string            `json:"role" validate:"omitempty,oneof=user admin caregiver" default:"user"`
	Status             string            `json:"status" validate:"omitempty,oneof=active inactive" default:"active"`
	Avatar             string            `json:"avatar" normalize:"trim"`
	Phone              string            `json:"phone" normalize:"trim"`
	EmergencyContact   *EmergencyContact `json:"emergencyContact"`
	AssignedCaregivers []string          `json:"assignedCaregivers" validate:"omitempty,dive,uuid"`
}

type UpdateUserRequest struct {
	Username           *string           `json:"username" validate:"omitempty,min=3,max=30" normalize:"trim"`
	Email              *string           `json:"email" validate:"omitempty,email" normalize:"trim,lower"`
	Password           *string           `json:"password" validate:"omitempty,min=6"`
	Role               *string           `json:"role" validate:"omitempty,oneof=user admin caregiver"`
	Status             *string           `json:"status" validate:"omitempty,oneof=active inactive"`
	Avatar             *string           `json:"avatar" normalize:"trim"`
	Phone              *string           `json:"phone" normalize:"trim"`
	EmergencyContact   *EmergencyContact `json:"emergencyContact"`
	AssignedCaregivers *[]string         `json:"assignedCaregivers" validate:"omitempty,dive,uuid"`
}

// PatientView is a user with assigned caregivers resolved.
type PatientView struct {
	*User
	AssignedCaregivers []Ref `json:"assignedCaregivers"`
}
