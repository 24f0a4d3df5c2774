package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
)

func TestAvailabilityAddRequiresCaregiver(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAvailabilityRepository(base)
	caregiverID := uuid.New()

	mock.ExpectExec(`INSERT INTO caregiver_availability .+ WHERE EXISTS \(SELECT 1 FROM caregivers WHERE id = \$2\)`).
		WithArgs(sqlmock.AnyArg(), caregiverID, "Monday", "09:00", "12:00").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Add(ctx(), &model.Availability{
		CaregiverID: caregiverID,
		DayOfWeek:   "Monday",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityReplaceAndRemoveScopeToOwner(t *testing.T) {
	base, mock := newMock(t)
	repo := NewAvailabilityRepository(base)
	caregiverID, id := uuid.New(), uuid.New()

	mock.ExpectExec(`UPDATE caregiver_availability .+ WHERE id = \$4 AND caregiver_id = \$5`).
		WithArgs("Friday", "10:00", "11:00", id, caregiverID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM caregiver_availability WHERE id = \$1 AND caregiver_id = \$2`).
		WithArgs(id, caregiverID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Replace(ctx(), &model.Availability{
		ID:          id,
		CaregiverID: caregiverID,
		DayOfWeek:   "Friday",
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Remove(ctx(), caregiverID, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageAddPicksOwnerTables(t *testing.T) {
	base, mock := newMock(t)
	repo := NewMessageRepository(base)
	owner, sender := uuid.New(), uuid.New()

	mock.ExpectExec(`INSERT INTO caregiver_messages .+ FROM caregivers WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), owner, sender, "hello", model.MessageTypeNotification, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	msg := &model.Message{OwnerID: owner, SenderID: sender, Content: "hello", Type: model.MessageTypeNotification}
	n, err := repo.Add(ctx(), model.OwnerCaregiver, msg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, msg.Read)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageListUnread(t *testing.T) {
	base, mock := newMock(t)
	repo := NewMessageRepository(base)
	owner := uuid.New()

	mock.ExpectQuery(`FROM user_messages WHERE owner_id = \$1 AND read = FALSE ORDER BY created_at DESC`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "sender_id", "content", "type", "read", "created_at"}))

	msgs, err := repo.List(ctx(), model.OwnerUser, owner, model.MessageFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, msgs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageMarkReadMissing(t *testing.T) {
	base, mock := newMock(t)
	repo := NewMessageRepository(base)
	owner, id := uuid.New(), uuid.New()

	mock.ExpectExec(`UPDATE user_messages SET read = TRUE WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(id, owner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkRead(ctx(), model.OwnerUser, owner, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMessageUnknownOwner(t *testing.T) {
	base, _ := newMock(t)
	_, err := NewMessageRepository(base).Remove(ctx(), model.OwnerKind("robot"), uuid.New(), uuid.New())
	assert.ErrorContains(t, err, "robot")
}
