package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeAppointment  MessageType = "appointment"
	MessageTypeService      MessageType = "service"
	MessageTypeNotification MessageType = "notification"
)

// OwnerKind selects which parent owns a message.
type OwnerKind string

const (
	OwnerUser      OwnerKind = "user"
	OwnerCaregiver OwnerKind = "caregiver"
)

// Message is owned by a user or a caregiver. Only Read changes after creation.
type Message struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	OwnerID   uuid.UUID   `json:"-" db:"owner_id"`
	SenderID  uuid.UUID   `json:"senderId" db:"sender_id"`
	Content   string      `json:"content" db:"content"`
	Type      MessageType `json:"type" db:"type"`
	Read      bool        `json:"read" db:"read"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

type MessageFilter struct {
	UnreadOnly bool
}

type SendMessageRequest struct {
	RecipientID string  `json:"recipientId" validate:"required,uuid"`
	SenderID    *string `json:"senderId" validate:"omitempty,uuid"`
	Content     string  `json:"content" validate:"required,max=2000" normalize:"trim"`
	Type        string  `json:"type" validate:"omitempty,oneof=appointment service notification" default:"notification"`
}

type MessageView struct {
	*Message
	Sender Ref `json:"senderId"`
}
