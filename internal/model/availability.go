package model

import "github.com/google/uuid"

// Availability is owned by a caregiver and has no lifecycle of its own.
type Availability struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CaregiverID uuid.UUID `json:"-" db:"caregiver_id"`
	DayOfWeek   string    `json:"dayOfWeek" db:"day_of_week"`
	StartTime   string    `json:"startTime" db:"start_time"`
	EndTime     string    `json:"endTime" db:"end_time"`
}

type AvailabilityRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday" normalize:"trim"`
	StartTime string `json:"startTime" validate:"required,clock" normalize:"trim"`
	EndTime   string `json:"endTime" validate:"required,clock" normalize:"trim"`
}
