package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
)

func TestAppointmentStatusUpdateIsGuarded(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAppointmentRepository(base)
	id := uuid.New()
	cancelled := model.AppointmentStatusCancelled

	mock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$3 AND status = ANY\(\$2\)`).
		WithArgs(cancelled, pq.StringArray{"scheduled", "cancelled"}, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Update(ctx(), id, model.AppointmentPatch{Status: &cancelled})
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentListByPatient(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAppointmentRepository(base)
	patient, caregiver := uuid.New(), uuid.New()
	date := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM appointments WHERE patient_id = \$1 ORDER BY date DESC`).
		WithArgs(patient).
		WillReturnRows(sqlmock.NewRows([]string{"id", "caregiver_id", "patient_id", "date", "notes", "status", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), caregiver.String(), patient.String(), date, "", "scheduled", date, date))

	appts, err := repo.List(ctx(), model.AppointmentFilter{PatientID: &patient})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, caregiver, appts[0].CaregiverID)
	assert.Equal(t, model.AppointmentStatusScheduled, appts[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceRequestAcceptSetsCaregiver(t *testing.T) {
	base, mock := newMock(t)
	repo := NewServiceRequestRepository(base)
	id, caregiver := uuid.New(), uuid.New()
	accepted := model.ServiceRequestStatusAccepted

	mock.ExpectExec(`UPDATE service_requests SET caregiver_id = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$4 AND status = ANY\(\$3\)`).
		WithArgs(caregiver, accepted, pq.StringArray{"pending"}, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(ctx(), id, model.ServiceRequestPatch{CaregiverID: &caregiver, Status: &accepted})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceRequestStatusOnlyUpdateKeepsTransitionSources(t *testing.T) {
	base, mock := newMock(t)
	repo := NewServiceRequestRepository(base)
	id := uuid.New()
	accepted := model.ServiceRequestStatusAccepted

	mock.ExpectExec(`UPDATE service_requests SET status = \$1, updated_at = NOW\(\) WHERE id = \$3 AND status = ANY\(\$2\)`).
		WithArgs(accepted, pq.StringArray{"pending", "accepted"}, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(ctx(), id, model.ServiceRequestPatch{Status: &accepted})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalNoteCreateDefaultsIssuedAt(t *testing.T) {
	base, mock := newMock(t)
	repo := NewMedicalNoteRepository(base)

	mock.ExpectExec(`INSERT INTO medical_notes`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "rest", []byte("[]"),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	note := &model.MedicalNote{CaregiverID: uuid.New(), PatientID: uuid.New(), Notes: "rest"}
	require.NoError(t, repo.Create(ctx(), note))
	assert.Equal(t, note.CreatedAt, note.IssuedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookListByAuthor(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookRepository(base)
	author := uuid.New()

	mock.ExpectQuery(`FROM books WHERE author_id = \$1 ORDER BY price DESC`).
		WithArgs(author).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author_id", "description", "cover", "price", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), "The Long Walk", author.String(), "a long description", "soft cover", []byte("12.50"), time.Now(), time.Now()))

	books, err := repo.List(ctx(), model.BookFilter{AuthorID: &author, Sort: model.Sort{Field: "price", Desc: true}})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 12.5, books[0].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}
