package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/carelink-api/internal/email"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/service"
	"github.com/jwalitptl/carelink-api/pkg/auth"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

const (
	wrongCredentials = "Wrong Email or Password"

	// resetMailTimeout bounds a reset mail sent after the request has returned.
	resetMailTimeout = 30 * time.Second
)

// WrongCredentials is the one answer to every failed login, whatever the cause.
func WrongCredentials() error {
	return apperrors.Validation(wrongCredentials, nil)
}

type AuthServicer interface {
	RegisterUser(ctx context.Context, req *model.RegisterUserRequest) (*model.UserSession, error)
	LoginUser(ctx context.Context, req *model.LoginRequest) (*model.UserSession, error)
	RegisterCaregiver(ctx context.Context, req *model.RegisterCaregiverRequest) (*model.CaregiverSession, error)
	LoginCaregiver(ctx context.Context, req *model.LoginRequest) (*model.CaregiverSession, error)
	ForgotPassword(ctx context.Context, address string) error
	ResetPassword(ctx context.Context, id uuid.UUID, token, password string) (*model.TokenResponse, error)
}

type Service struct {
	users        repository.UserRepository
	caregivers   repository.CaregiverRepository
	hasher       security.PasswordHasher
	tokens       auth.JWTService
	mailer       email.Mailer
	resetBaseURL string

	// dummyHash is compared against when no account matches, so a login
	// costs one bcrypt round either way.
	dummyHash string
	pending   sync.WaitGroup
}

func NewService(
	users repository.UserRepository,
	caregivers repository.CaregiverRepository,
	hasher security.PasswordHasher,
	tokens auth.JWTService,
	mailer email.Mailer,
	resetBaseURL string,
) *Service {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Error().Err(err).Msg("Failed to prepare login dummy hash")
	}
	return &Service{
		users:        users,
		caregivers:   caregivers,
		hasher:       hasher,
		tokens:       tokens,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
		dummyHash:    dummyHash,
	}
}

// Wait blocks until reset mails already handed off have been sent or have
// failed, or until ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) RegisterUser(ctx context.Context, req *model.RegisterUserRequest) (*model.UserSession, error) {
	if model.UserRole(req.Role) == model.UserRoleAdmin {
		return nil, apperrors.Forbidden("only admins can grant admin rights")
	}

	assigned, err := service.ParseIDs("assignedCaregivers", req.AssignedCaregivers)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               model.UserRole(req.Role),
		Status:             model.UserStatus(req.Status),
		Avatar:             req.Avatar,
		Phone:              req.Phone,
		EmergencyContact:   req.EmergencyContact,
		AssignedCaregivers: assigned,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, service.StoreError("User", err)
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.IsAdmin())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.UserSession{Token: token, User: user}, nil
}

func (s *Service) LoginUser(ctx context.Context, req *model.LoginRequest) (*model.UserSession, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.loginError(err, req.Password)
	}
	if err := s.checkPassword(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.IsAdmin())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.UserSession{Token: token, User: user}, nil
}

func (s *Service) RegisterCaregiver(ctx context.Context, req *model.RegisterCaregiverRequest) (*model.CaregiverSession, error) {
	if req.IsAdmin {
		return nil, apperrors.Forbidden("only admins can grant admin rights")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	caregiver := &model.Caregiver{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Specialization: req.Specialization,
		Phone:          req.Phone,
	}
	if err := s.caregivers.Create(ctx, caregiver); err != nil {
		return nil, service.StoreError("Caregiver", err)
	}

	token, err := s.tokens.GenerateSessionToken(caregiver.ID, caregiver.IsAdmin)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.CaregiverSession{Token: token, Caregiver: caregiver}, nil
}

func (s *Service) LoginCaregiver(ctx context.Context, req *model.LoginRequest) (*model.CaregiverSession, error) {
	caregiver, err := s.caregivers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.loginError(err, req.Password)
	}
	if err := s.checkPassword(caregiver.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateSessionToken(caregiver.ID, caregiver.IsAdmin)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.CaregiverSession{Token: token, Caregiver: caregiver}, nil
}

// ForgotPassword mails a reset link when the address belongs to a user. The
// mail goes out after the call returns, so unknown addresses, known ones and
// mail failures all answer the same way.
func (s *Service) ForgotPassword(ctx context.Context, address string) error {
	user, err := s.users.GetByEmail(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info().Msg("Password reset requested for an unknown address")
		return nil
	}
	if err != nil {
		return apperrors.Internal(err)
	}

	token, err := s.tokens.GenerateResetToken(user.ID, user.IsAdmin(), user.PasswordHash)
	if err != nil {
		return apperrors.Internal(err)
	}

	msg := email.PasswordResetMessage(user.Email, email.ResetURL(s.resetBaseURL, user.ID, token))
	s.pending.Add(1)
	go s.sendReset(context.WithoutCancel(ctx), user.ID, msg)
	return nil
}

func (s *Service) sendReset(ctx context.Context, userID uuid.UUID, msg email.Message) {
	defer s.pending.Done()
	ctx, cancel := context.WithTimeout(ctx, resetMailTimeout)
	defer cancel()
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to send password reset mail")
	}
}

// ResetPassword checks token against the user's current password hash, stores
// the new password and starts a session. Changing the hash retires the token.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, token, password string) (*model.TokenResponse, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.InvalidToken(err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if _, err := s.tokens.ValidateResetToken(token, id, user.PasswordHash); err != nil {
		return nil, apperrors.InvalidToken(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	n, err := s.users.Update(ctx, id, model.UserPatch{
		PasswordHash:         &hash,
		ExpectedPasswordHash: &user.PasswordHash,
	})
	if err != nil {
		return nil, service.StoreError("User", err)
	}
	if n == 0 {
		// Another reset with the same token already replaced the hash.
		return nil, apperrors.InvalidToken(errors.New("password changed since the token was issued"))
	}

	session, err := s.tokens.GenerateSessionToken(user.ID, user.IsAdmin())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{Token: session}, nil
}

func (s *Service) checkPassword(hash, password string) error {
	err := s.hasher.Compare(hash, password)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, security.ErrPasswordMismatch):
		return WrongCredentials()
	}
	return apperrors.Internal(err)
}

func (s *Service) loginError(err error, password string) error {
	if errors.Is(err, repository.ErrNotFound) {
		_ = s.hasher.Compare(s.dummyHash, password)
		return WrongCredentials()
	}
	return apperrors.Internal(err)
}
