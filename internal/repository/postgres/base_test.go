package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

func newMock(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBaseRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUpdateBuilder(t *testing.T) {
	id := uuid.New()
	u := newUpdate("appointments")
	u.set("notes", "bring glasses")
	u.set("status", model.AppointmentStatusCancelled)
	u.and("status = ANY(%s)", pq.StringArray{"scheduled", "cancelled"})

	query, args := u.build(id)

	assert.Equal(t,
		"UPDATE appointments SET notes = $1, status = $2, updated_at = NOW() WHERE id = $4 AND status = ANY($3)",
		query)
	require.Len(t, args, 4)
	assert.Equal(t, id, args[3])
}

func TestUpdateBuilderEmptyPatchTouchesTimestamp(t *testing.T) {
	query, args := newUpdate("authors").build(uuid.Nil)
	assert.Equal(t, "UPDATE authors SET updated_at = NOW() WHERE id = $1", query)
	assert.Len(t, args, 1)
}

func TestConditions(t *testing.T) {
	var c conditions
	assert.Equal(t, "", c.where())

	c.and("role = %s", "user")
	c.and("status = %s", "active")
	assert.Equal(t, " WHERE role = $1 AND status = $2", c.where())
	assert.Equal(t, []interface{}{"user", "active"}, c.values)
}

func TestOrderBy(t *testing.T) {
	cols := map[string]string{"createdAt": "created_at"}

	assert.Equal(t, " ORDER BY created_at DESC", orderBy(model.Sort{Field: "createdAt", Desc: true}, cols, "x"))
	assert.Equal(t, " ORDER BY created_at ASC", orderBy(model.Sort{Field: "createdAt"}, cols, "x"))
	assert.Equal(t, " ORDER BY title ASC", orderBy(model.Sort{Field: "password_hash"}, cols, "title ASC"))
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(sql.ErrNoRows, "get user"), repository.ErrNotFound)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505"}, "create user"), repository.ErrConflict)

	boom := errors.New("connection reset")
	err := translate(boom, "create user")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "failed to create user: connection reset")
}

func TestProjectSkipsMissingIDs(t *testing.T) {
	base, mock := newMock(t)
	repo := NewCaregiverRepository(base)

	known, missing := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT id, username AS "username", phone AS "phone" FROM caregivers WHERE id = ANY\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "phone"}).
			AddRow(known.String(), []byte("nina"), "555-0101"))

	out, err := repo.Project(ctx(), []uuid.UUID{known, missing}, []string{"username", "phone"})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"username": "nina", "phone": "555-0101"}, out[known])
	assert.NotContains(t, out, missing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRejectsUnknownField(t *testing.T) {
	base, _ := newMock(t)
	_, err := NewUserRepository(base).Project(ctx(), []uuid.UUID{uuid.New()}, []string{"passwordHash"})
	assert.ErrorContains(t, err, "passwordHash")
}

func TestProjectEmptyIDs(t *testing.T) {
	base, mock := newMock(t)
	out, err := NewAuthorRepository(base).Project(ctx(), nil, []string{"fullName"})
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}
