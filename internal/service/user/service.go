package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

const resource = "User"

type UserServicer interface {
	ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, principal model.Principal, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return user, nil
}

// UpdateUser applies the supplied fields and returns the stored result. Role and
// status belong to admins; a new password is hashed before it is stored.
func (s *Service) UpdateUser(ctx context.Context, principal model.Principal, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if (req.Role != nil || req.Status != nil) && !principal.IsAdmin {
		return nil, apperrors.Forbidden("only admins can change role or status")
	}

	patch := model.UserPatch{
		Username:         req.Username,
		Email:            req.Email,
		Avatar:           req.Avatar,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		patch.Role = &role
	}
	if req.Status != nil {
		status := model.UserStatus(*req.Status)
		patch.Status = &status
	}
	if req.AssignedCaregivers != nil {
		ids, err := service.ParseIDs("assignedCaregivers", *req.AssignedCaregivers)
		if err != nil {
			return nil, err
		}
		patch.AssignedCaregivers = &ids
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		patch.PasswordHash = &hash
	}

	n, err := s.repo.Update(ctx, id, patch)
	if err := service.Applied(resource, n, err); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	return service.Applied(resource, n, err)
}
