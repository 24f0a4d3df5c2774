// Package service holds helpers shared by the per-aggregate services.
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

// StoreError maps repository sentinels onto resource-specific AppErrors.
func StoreError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource, err)
	case errors.Is(err, repository.ErrConflict):
		return apperrors.Conflict(resource, err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(err)
}

// Applied turns a zero affected count into NotFound.
func Applied(resource string, n int64, err error) error {
	if err != nil {
		return StoreError(resource, err)
	}
	if n == 0 {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}

// ParseID parses an id that already passed request validation.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("%q must be a valid id", field), err)
	}
	return id, nil
}

func ParseIDs(field string, raw []string) (model.UUIDs, error) {
	ids := make(model.UUIDs, 0, len(raw))
	for i, r := range raw {
		id, err := ParseID(fmt.Sprintf("%s[%d]", field, i), r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MustExist reports NotFound for resource when exists says id is absent.
func MustExist(resource string, found bool, err error) error {
	if err != nil {
		return apperrors.Internal(err)
	}
	if !found {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}
