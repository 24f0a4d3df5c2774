package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

// messageTables maps an owner kind to its message table and parent table.
var messageTables = map[model.OwnerKind][2]string{
	model.OwnerUser:      {"user_messages", "users"},
	model.OwnerCaregiver: {"caregiver_messages", "caregivers"},
}

type messageRepository struct {
	BaseRepository
}

func NewMessageRepository(base BaseRepository) repository.MessageRepository {
	return &messageRepository{base}
}

func tablesFor(owner model.OwnerKind) (string, string, error) {
	t, ok := messageTables[owner]
	if !ok {
		return "", "", fmt.Errorf("unknown message owner %q", owner)
	}
	return t[0], t[1], nil
}

func (r *messageRepository) List(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.Message, error) {
	table, _, err := tablesFor(owner)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, owner_id, sender_id, content, type, read, created_at FROM ` + table + ` WHERE owner_id = $1`
	if filter.UnreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	messages := []*model.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Add appends msg to its owner's messages. Zero rows means the owner does not exist.
func (r *messageRepository) Add(ctx context.Context, owner model.OwnerKind, msg *model.Message) (int64, error) {
	table, parent, err := tablesFor(owner)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, sender_id, content, type, read, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4, $5, FALSE, $6
		WHERE EXISTS (SELECT 1 FROM %s WHERE id = $2)
	`, table, parent)

	msg.ID = uuid.New()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	return r.exec(ctx, "add message", query,
		msg.ID,
		msg.OwnerID,
		msg.SenderID,
		msg.Content,
		msg.Type,
		msg.CreatedAt,
	)
}

func (r *messageRepository) MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error) {
	table, _, err := tablesFor(owner)
	if err != nil {
		return 0, err
	}
	query := `UPDATE ` + table + ` SET read = TRUE WHERE id = $1 AND owner_id = $2`
	return r.exec(ctx, "mark message read", query, id, ownerID)
}

func (r *messageRepository) Remove(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error) {
	table, _, err := tablesFor(owner)
	if err != nil {
		return 0, err
	}
	query := `DELETE FROM ` + table + ` WHERE id = $1 AND owner_id = $2`
	return r.exec(ctx, "remove message", query, id, ownerID)
}
