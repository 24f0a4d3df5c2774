package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransitionTo reports whether s may move to next. Staying put is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, to := range appointmentTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// AppointmentSourcesFor lists every status from which next is reachable.
func AppointmentSourcesFor(next AppointmentStatus) []AppointmentStatus {
	var from []AppointmentStatus
	for _, s := range []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled} {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}

type Appointment struct {
	Base
	CaregiverID uuid.UUID         `json:"caregiverId" db:"caregiver_id"`
	PatientID   uuid.UUID         `json:"patientId" db:"patient_id"`
	Date        time.Time         `json:"date" db:"date"`
	Notes       string            `json:"notes,omitempty" db:"notes"`
	Status      AppointmentStatus `json:"status" db:"status"`
}

type AppointmentFilter struct {
	PatientID   *uuid.UUID
	CaregiverID *uuid.UUID
	Status      *AppointmentStatus
	Sort        Sort
}

type AppointmentPatch struct {
	Date   *time.Time
	Notes  *string
	Status *AppointmentStatus
}

type CreateAppointmentRequest struct {
	CaregiverID string     `json:"caregiverId" validate:"required,uuid"`
	PatientID   string     `json:"patientId" validate:"required,uuid"`
	Date        *Timestamp `json:"date" validate:"required"`
	Notes       string     `json:"notes" validate:"max=1000" normalize:"trim"`
}

type UpdateAppointmentRequest struct {
	Date   *Timestamp `json:"date"`
	Notes  *string    `json:"notes" validate:"omitempty,max=1000" normalize:"trim"`
	Status *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

type CancelAppointmentRequest struct {
	Status string `json:"status" validate:"required,eq=cancelled"`
}

type AppointmentView struct {
	*Appointment
	Caregiver Ref `json:"caregiverId"`
	Patient   Ref `json:"patientId"`
}
