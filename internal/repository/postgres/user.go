package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const userColumns = `id, username, email, password_hash, role, status, avatar, phone,
	emergency_contact, assigned_caregivers, created_at, updated_at`

var (
	userSortColumns = map[string]string{
		"createdAt": "created_at",
		"username":  "username",
		"email":     "email",
	}
	userProjection = map[string]string{
		"username": "username",
		"email":    "email",
		"phone":    "phone",
		"avatar":   "avatar",
		"role":     "role",
	}
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, role, status, avatar, phone,
			emergency_contact, assigned_caregivers, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	if user.AssignedCaregivers == nil {
		user.AssignedCaregivers = model.UUIDs{}
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Avatar,
		user.Phone,
		user.EmergencyContact,
		user.AssignedCaregivers,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return translate(err, "create user")
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, translate(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	var c conditions
	if filter.Role != "" {
		c.and("role = %s", filter.Role)
	}
	if filter.Status != "" {
		c.and("status = %s", filter.Status)
	}
	query := `SELECT ` + userColumns + ` FROM users` + c.where() +
		orderBy(filter.Sort, userSortColumns, "created_at DESC")

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, c.values...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (int64, error) {
	u := newUpdate("users")
	if patch.Username != nil {
		u.set("username", *patch.Username)
	}
	if patch.Email != nil {
		u.set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		u.set("password_hash", *patch.PasswordHash)
	}
	if patch.Role != nil {
		u.set("role", *patch.Role)
	}
	if patch.Status != nil {
		u.set("status", *patch.Status)
	}
	if patch.Avatar != nil {
		u.set("avatar", *patch.Avatar)
	}
	if patch.Phone != nil {
		u.set("phone", *patch.Phone)
	}
	if patch.EmergencyContact != nil {
		u.set("emergency_contact", *patch.EmergencyContact)
	}
	if patch.AssignedCaregivers != nil {
		u.set("assigned_caregivers", *patch.AssignedCaregivers)
	}
	if patch.ExpectedPasswordHash != nil {
		u.and("password_hash = %s", *patch.ExpectedPasswordHash)
	}

	query, args := u.build(id)
	return r.exec(ctx, "update user", query, args...)
}

// Delete removes the user and, through the child table, its messages.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "users", id)
}

func (r *userRepository) Project(ctx context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	return r.project(ctx, "users", userProjection, ids, fields)
}
