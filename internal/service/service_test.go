package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/carelink-api/internal/repository"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

func message(err error) string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return ""
	}
	return appErr.Message
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, StoreError("User", nil))

	err := StoreError("User", repository.ErrNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "User not found", message(err))

	err = StoreError("Book", repository.ErrConflict)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "Book already exists", message(err))

	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(StoreError("User", errors.New("dial tcp"))))

	forbidden := apperrors.Forbidden("nope")
	assert.Same(t, forbidden, StoreError("User", forbidden))
}

func TestApplied(t *testing.T) {
	assert.NoError(t, Applied("Author", 1, nil))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(Applied("Author", 0, nil)))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(Applied("Author", 0, repository.ErrConflict)))
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("assignedCaregivers", []string{"3b241101-e2bb-4255-8caf-4136c566a962"})
	assert.NoError(t, err)
	assert.Len(t, ids, 1)

	_, err = ParseIDs("assignedCaregivers", []string{"nope"})
	assert.Equal(t, `"assignedCaregivers[0]" must be a valid id`, message(err))
}

func TestMustExist(t *testing.T) {
	assert.NoError(t, MustExist("Patient", true, nil))
	assert.EqualError(t, MustExist("Patient", false, nil), "Patient not found")
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(MustExist("Patient", false, errors.New("boom"))))
}
