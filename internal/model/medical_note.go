package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	Name      string `json:"name" validate:"required,max=100" normalize:"trim"`
	Dosage    string `json:"dosage" validate:"required,max=100" normalize:"trim"`
	Frequency string `json:"frequency,omitempty" validate:"omitempty,oneof=daily 'twice daily' weekly 'as needed'"`
}

// Medications is stored as a JSONB column.
type Medications []Medication

func (m Medications) Value() (driver.Value, error) {
	if m == nil {
		m = Medications{}
	}
	return json.Marshal(m)
}

func (m *Medications) Scan(src interface{}) error {
	return scanJSON(src, m)
}

type MedicalNote struct {
	Base
	CaregiverID uuid.UUID   `json:"caregiverId" db:"caregiver_id"`
	PatientID   uuid.UUID   `json:"patientId" db:"patient_id"`
	Notes       string      `json:"notes" db:"notes"`
	Medications Medications `json:"medications" db:"medications"`
	IssuedAt    time.Time   `json:"issuedAt" db:"issued_at"`
}

type MedicalNoteFilter struct {
	PatientID   *uuid.UUID
	CaregiverID *uuid.UUID
	Sort        Sort
}

type MedicalNotePatch struct {
	Notes       *string
	Medications *Medications
	IssuedAt    *time.Time
}

type CreateMedicalNoteRequest struct {
	CaregiverID string       `json:"caregiverId" validate:"required,uuid"`
	PatientID   string       `json:"patientId" validate:"required,uuid"`
	Notes       string       `json:"notes" validate:"required,max=5000" normalize:"trim"`
	Medications []Medication `json:"medications" validate:"omitempty,dive"`
	IssuedAt    *Timestamp   `json:"issuedAt"`
}

type UpdateMedicalNoteRequest struct {
	Notes       *string       `json:"notes" validate:"omitempty,max=5000" normalize:"trim"`
	Medications *[]Medication `json:"medications" validate:"omitempty,dive"`
	IssuedAt    *Timestamp    `json:"issuedAt"`
}

type MedicalNoteView struct {
	*MedicalNote
	Caregiver Ref `json:"caregiverId"`
	Patient   Ref `json:"patientId"`
}
