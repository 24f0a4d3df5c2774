package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
)

// Appointments resolves caregiverId and patientId on every appointment.
func (r *Resolver) Appointments(ctx context.Context, appts []*model.Appointment, caregiver, patient Projection) ([]*model.AppointmentView, error) {
	caregiverIDs := make([]uuid.UUID, len(appts))
	patientIDs := make([]uuid.UUID, len(appts))
	for i, a := range appts {
		caregiverIDs[i] = a.CaregiverID
		patientIDs[i] = a.PatientID
	}

	caregivers, err := r.Lookup(ctx, caregiver, caregiverIDs)
	if err != nil {
		return nil, err
	}
	patients, err := r.Lookup(ctx, patient, patientIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.AppointmentView, len(appts))
	for i, a := range appts {
		views[i] = &model.AppointmentView{
			Appointment: a,
			Caregiver:   caregivers.Ref(a.CaregiverID),
			Patient:     patients.Ref(a.PatientID),
		}
	}
	return views, nil
}

func (r *Resolver) MedicalNotes(ctx context.Context, notes []*model.MedicalNote) ([]*model.MedicalNoteView, error) {
	caregiverIDs := make([]uuid.UUID, len(notes))
	patientIDs := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		caregiverIDs[i] = n.CaregiverID
		patientIDs[i] = n.PatientID
	}

	caregivers, err := r.Lookup(ctx, NoteCaregiver, caregiverIDs)
	if err != nil {
		return nil, err
	}
	patients, err := r.Lookup(ctx, NotePatient, patientIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.MedicalNoteView, len(notes))
	for i, n := range notes {
		views[i] = &model.MedicalNoteView{
			MedicalNote: n,
			Caregiver:   caregivers.Ref(n.CaregiverID),
			Patient:     patients.Ref(n.PatientID),
		}
	}
	return views, nil
}

// ServiceRequests leaves caregiverId out of requests nobody has accepted.
func (r *Resolver) ServiceRequests(ctx context.Context, reqs []*model.ServiceRequest) ([]*model.ServiceRequestView, error) {
	patientIDs := make([]uuid.UUID, 0, len(reqs))
	caregiverIDs := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		patientIDs = append(patientIDs, req.PatientID)
		if req.CaregiverID != nil {
			caregiverIDs = append(caregiverIDs, *req.CaregiverID)
		}
	}

	patients, err := r.Lookup(ctx, RequestPatient, patientIDs)
	if err != nil {
		return nil, err
	}
	caregivers, err := r.Lookup(ctx, RequestCaregiver, caregiverIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.ServiceRequestView, len(reqs))
	for i, req := range reqs {
		view := &model.ServiceRequestView{ServiceRequest: req, Patient: patients.Ref(req.PatientID)}
		if req.CaregiverID != nil {
			ref := caregivers.Ref(*req.CaregiverID)
			view.Caregiver = &ref
		}
		views[i] = view
	}
	return views, nil
}

// Patients resolves every entry of each user's assignedCaregivers.
func (r *Resolver) Patients(ctx context.Context, users []*model.User) ([]*model.PatientView, error) {
	var ids []uuid.UUID
	for _, u := range users {
		ids = append(ids, u.AssignedCaregivers...)
	}

	caregivers, err := r.Lookup(ctx, AssignedCaregiver, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*model.PatientView, len(users))
	for i, u := range users {
		refs := make([]model.Ref, len(u.AssignedCaregivers))
		for j, id := range u.AssignedCaregivers {
			refs[j] = caregivers.Ref(id)
		}
		views[i] = &model.PatientView{User: u, AssignedCaregivers: refs}
	}
	return views, nil
}

func (r *Resolver) Books(ctx context.Context, books []*model.Book) ([]*model.BookView, error) {
	ids := make([]uuid.UUID, len(books))
	for i, b := range books {
		ids[i] = b.AuthorID
	}

	authors, err := r.Lookup(ctx, BookAuthor, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*model.BookView, len(books))
	for i, b := range books {
		views[i] = &model.BookView{Book: b, Author: authors.Ref(b.AuthorID)}
	}
	return views, nil
}

// Messages resolves each sender among users, then caregivers.
func (r *Resolver) Messages(ctx context.Context, msgs []*model.Message) ([]*model.MessageView, error) {
	ids := make([]uuid.UUID, len(msgs))
	for i, m := range msgs {
		ids[i] = m.SenderID
	}

	senders, err := r.LookupFirst(ctx, SenderFields, ids, senderCollections...)
	if err != nil {
		return nil, err
	}

	views := make([]*model.MessageView, len(msgs))
	for i, m := range msgs {
		views[i] = &model.MessageView{Message: m, Sender: senders.Ref(m.SenderID)}
	}
	return views, nil
}
