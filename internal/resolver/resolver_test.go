package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
)

// fakeProjector serves projections from memory and records each batch it is asked for.
type fakeProjector struct {
	rows  map[uuid.UUID]map[string]interface{}
	calls [][]uuid.UUID
	err   error
}

func (f *fakeProjector) Project(_ context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := map[uuid.UUID]map[string]interface{}{}
	for _, id := range ids {
		row, ok := f.rows[id]
		if !ok {
			continue
		}
		projected := map[string]interface{}{}
		for _, field := range fields {
			projected[field] = row[field]
		}
		out[id] = projected
	}
	return out, nil
}

func setup() (*Resolver, *fakeProjector, *fakeProjector, *fakeProjector) {
	users := &fakeProjector{rows: map[uuid.UUID]map[string]interface{}{}}
	caregivers := &fakeProjector{rows: map[uuid.UUID]map[string]interface{}{}}
	authors := &fakeProjector{rows: map[uuid.UUID]map[string]interface{}{}}
	return New(users, caregivers, authors), users, caregivers, authors
}

func TestAppointmentsResolveBothReferences(t *testing.T) {
	r, users, caregivers, _ := setup()
	nina, alice := uuid.New(), uuid.New()
	caregivers.rows[nina] = map[string]interface{}{"username": "nina", "specialization": "Nursing", "phone": "555", "email": "n@x.com"}
	users.rows[alice] = map[string]interface{}{"username": "alice", "phone": "556", "email": "a@x.com"}

	appts := []*model.Appointment{
		{CaregiverID: nina, PatientID: alice},
		{CaregiverID: nina, PatientID: alice},
	}
	views, err := r.Appointments(context.Background(), appts, AppointmentCaregiver, AppointmentPatient)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, map[string]interface{}{"username": "nina", "specialization": "Nursing", "phone": "555"}, views[0].Caregiver.Fields)
	assert.Equal(t, map[string]interface{}{"username": "alice", "phone": "556"}, views[1].Patient.Fields)

	// one batch per field, duplicates collapsed
	assert.Equal(t, [][]uuid.UUID{{nina}}, caregivers.calls)
	assert.Equal(t, [][]uuid.UUID{{alice}}, users.calls)
}

func TestDanglingReferenceRendersNullMarker(t *testing.T) {
	r, _, _, _ := setup()
	gone := uuid.New()

	views, err := r.Books(context.Background(), []*model.Book{{AuthorID: gone, Title: "Orphaned"}})
	require.NoError(t, err)
	assert.True(t, views[0].Author.Dangling())

	out, err := json.Marshal(views[0])
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, map[string]interface{}{"id": gone.String(), "ref": nil}, body["author"])
	assert.Equal(t, "Orphaned", body["title"])
}

func TestPatientsResolveArrayField(t *testing.T) {
	r, _, caregivers, _ := setup()
	a, b, gone := uuid.New(), uuid.New(), uuid.New()
	caregivers.rows[a] = map[string]interface{}{"username": "ann", "specialization": "General", "phone": "1"}
	caregivers.rows[b] = map[string]interface{}{"username": "ben", "specialization": "Physio", "phone": "2"}

	users := []*model.User{
		{Username: "p1", AssignedCaregivers: model.UUIDs{a, gone}},
		{Username: "p2", AssignedCaregivers: model.UUIDs{b}},
		{Username: "p3"},
	}
	views, err := r.Patients(context.Background(), users)
	require.NoError(t, err)

	require.Len(t, views[0].AssignedCaregivers, 2)
	assert.Equal(t, "ann", views[0].AssignedCaregivers[0].Fields["username"])
	assert.True(t, views[0].AssignedCaregivers[1].Dangling())
	assert.Equal(t, "ben", views[1].AssignedCaregivers[0].Fields["username"])
	assert.Empty(t, views[2].AssignedCaregivers)
	assert.Len(t, caregivers.calls, 1)
}

func TestServiceRequestWithoutCaregiverSkipsLookup(t *testing.T) {
	r, users, caregivers, _ := setup()
	patient := uuid.New()
	users.rows[patient] = map[string]interface{}{"username": "alice", "phone": "1", "email": "a@x.com"}

	views, err := r.ServiceRequests(context.Background(), []*model.ServiceRequest{{PatientID: patient}})
	require.NoError(t, err)

	assert.Nil(t, views[0].Caregiver)
	assert.Equal(t, "a@x.com", views[0].Patient.Fields["email"])
	assert.Empty(t, caregivers.calls)
}

func TestMessageSenderFallsBackToCaregivers(t *testing.T) {
	r, users, caregivers, _ := setup()
	fromUser, fromCaregiver, unknown := uuid.New(), uuid.New(), uuid.New()
	users.rows[fromUser] = map[string]interface{}{"username": "alice", "avatar": "a.png"}
	caregivers.rows[fromCaregiver] = map[string]interface{}{"username": "nina", "avatar": ""}

	views, err := r.Messages(context.Background(), []*model.Message{
		{SenderID: fromUser}, {SenderID: fromCaregiver}, {SenderID: unknown},
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", views[0].Sender.Fields["username"])
	assert.Equal(t, "nina", views[1].Sender.Fields["username"])
	assert.True(t, views[2].Sender.Dangling())

	require.Len(t, caregivers.calls, 1)
	assert.ElementsMatch(t, []uuid.UUID{fromCaregiver, unknown}, caregivers.calls[0])
}

func TestLookupPropagatesStoreErrors(t *testing.T) {
	r, _, caregivers, _ := setup()
	caregivers.err = errors.New("connection refused")

	_, err := r.Lookup(context.Background(), AppointmentCaregiver, []uuid.UUID{uuid.New()})
	assert.ErrorContains(t, err, "connection refused")
}

func TestLookupEmptyIDsSkipsStore(t *testing.T) {
	r, users, _, _ := setup()
	found, err := r.Lookup(context.Background(), NotePatient, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Empty(t, users.calls)
}
