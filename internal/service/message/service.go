package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/service"
	apperrors "github.com/jwalitptl/carelink-api/pkg/errors"
)

type MessageServicer interface {
	ListMessages(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.MessageView, error)
	SendMessage(ctx context.Context, principal model.Principal, owner model.OwnerKind, req *model.SendMessageRequest) (*model.MessageView, error)
	MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error
	DeleteMessage(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error
}

// Service manages the inbox each user and caregiver owns.
type Service struct {
	repo       repository.MessageRepository
	users      repository.UserRepository
	caregivers repository.CaregiverRepository
	resolver   *resolver.Resolver
}

func NewService(repo repository.MessageRepository, users repository.UserRepository, caregivers repository.CaregiverRepository, res *resolver.Resolver) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		caregivers: caregivers,
		resolver:   res,
	}
}

func (s *Service) ListMessages(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.MessageView, error) {
	if err := s.ownerExists(ctx, owner, ownerID); err != nil {
		return nil, err
	}
	msgs, err := s.repo.List(ctx, owner, ownerID, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	views, err := s.resolver.Messages(ctx, msgs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

// SendMessage appends a message to the recipient's inbox. Without an explicit
// sender the caller is the sender.
func (s *Service) SendMessage(ctx context.Context, principal model.Principal, owner model.OwnerKind, req *model.SendMessageRequest) (*model.MessageView, error) {
	recipientID, err := service.ParseID("recipientId", req.RecipientID)
	if err != nil {
		return nil, err
	}
	senderID := principal.ID
	if req.SenderID != nil {
		if senderID, err = service.ParseID("senderId", *req.SenderID); err != nil {
			return nil, err
		}
	}

	msg := &model.Message{
		OwnerID:  recipientID,
		SenderID: senderID,
		Content:  req.Content,
		Type:     model.MessageType(req.Type),
	}
	if msg.Type == "" {
		msg.Type = model.MessageTypeNotification
	}

	n, err := s.repo.Add(ctx, owner, msg)
	if err := service.Applied(ownerResource(owner), n, err); err != nil {
		return nil, err
	}

	views, err := s.resolver.Messages(ctx, []*model.Message{msg})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views[0], nil
}

// MarkRead is idempotent: an already read message stays read.
func (s *Service) MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error {
	n, err := s.repo.MarkRead(ctx, owner, ownerID, id)
	return service.Applied(ownerResource(owner)+" or message", n, err)
}

func (s *Service) DeleteMessage(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) error {
	n, err := s.repo.Remove(ctx, owner, ownerID, id)
	return service.Applied(ownerResource(owner)+" or message", n, err)
}

func (s *Service) ownerExists(ctx context.Context, owner model.OwnerKind, id uuid.UUID) error {
	var (
		found bool
		err   error
	)
	switch owner {
	case model.OwnerUser:
		found, err = s.users.Exists(ctx, id)
	case model.OwnerCaregiver:
		found, err = s.caregivers.Exists(ctx, id)
	default:
		return apperrors.Internal(fmt.Errorf("unknown message owner %q", owner))
	}
	return service.MustExist(ownerResource(owner), found, err)
}

func ownerResource(owner model.OwnerKind) string {
	if owner == model.OwnerCaregiver {
		return "Caregiver"
	}
	return "User"
}
