package model

import (
	"github.com/google/uuid"
)

type ServiceCategory string

const (
	ServiceCategoryHealth    ServiceCategory = "health"
	ServiceCategoryTransport ServiceCategory = "transport"
	ServiceCategoryHomeCare  ServiceCategory = "home care"
	ServiceCategoryGroceries ServiceCategory = "groceries"
)

type ServiceRequestStatus string

const (
	ServiceRequestStatusPending   ServiceRequestStatus = "pending"
	ServiceRequestStatusAccepted  ServiceRequestStatus = "accepted"
	ServiceRequestStatusCompleted ServiceRequestStatus = "completed"
	ServiceRequestStatusCancelled ServiceRequestStatus = "cancelled"
)

var allServiceRequestStatuses = []ServiceRequestStatus{
	ServiceRequestStatusPending,
	ServiceRequestStatusAccepted,
	ServiceRequestStatusCompleted,
	ServiceRequestStatusCancelled,
}

var serviceRequestTransitions = map[ServiceRequestStatus][]ServiceRequestStatus{
	ServiceRequestStatusPending:  {ServiceRequestStatusAccepted},
	ServiceRequestStatusAccepted: {ServiceRequestStatusCompleted},
}

// CanTransitionTo reports whether s may move to next. Any status may be
// cancelled and staying put is allowed.
func (s ServiceRequestStatus) CanTransitionTo(next ServiceRequestStatus) bool {
	if s == next || next == ServiceRequestStatusCancelled {
		return true
	}
	for _, to := range serviceRequestTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// ServiceRequestSourcesFor lists every status from which next is reachable.
func ServiceRequestSourcesFor(next ServiceRequestStatus) []ServiceRequestStatus {
	var from []ServiceRequestStatus
	for _, s := range allServiceRequestStatuses {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}

type ServiceRequest struct {
	Base
	PatientID   uuid.UUID            `json:"patientId" db:"patient_id"`
	CaregiverID *uuid.UUID           `json:"caregiverId,omitempty" db:"caregiver_id"`
	Category    ServiceCategory      `json:"category" db:"category"`
	Description string               `json:"description,omitempty" db:"description"`
	Status      ServiceRequestStatus `json:"status" db:"status"`
}

type ServiceRequestFilter struct {
	PatientID   *uuid.UUID
	CaregiverID *uuid.UUID
	Status      *ServiceRequestStatus
	Sort        Sort
}

type ServiceRequestPatch struct {
	CaregiverID *uuid.UUID
	Description *string
	Status      *ServiceRequestStatus
}

// Sources lists the statuses the stored request may hold for the patch to
// apply, or nil when the status is untouched. Assigning a caregiver while
// accepting only works on a pending request, so an accepted request is
// never silently handed to someone else.
func (p ServiceRequestPatch) Sources() []ServiceRequestStatus {
	if p.Status == nil {
		return nil
	}
	if *p.Status == ServiceRequestStatusAccepted && p.CaregiverID != nil {
		return []ServiceRequestStatus{ServiceRequestStatusPending}
	}
	return ServiceRequestSourcesFor(*p.Status)
}

type CreateServiceRequestRequest struct {
	PatientID   string `json:"patientId" validate:"required,uuid"`
	Category    string `json:"category" validate:"required,oneof=health transport 'home care' groceries" normalize:"trim"`
	Description string `json:"description" validate:"max=1000" normalize:"trim"`
}

type UpdateServiceRequestRequest struct {
	CaregiverID *string `json:"caregiverId" validate:"omitempty,uuid"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending accepted completed cancelled"`
	Description *string `json:"description" validate:"omitempty,max=1000" normalize:"trim"`
}

type ServiceRequestView struct {
	*ServiceRequest
	Patient   Ref  `json:"patientId"`
	Caregiver *Ref `json:"caregiverId,omitempty"`
}
