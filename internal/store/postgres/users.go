package postgres

import (
	"context"
	"strings"

	"belakoo-backend-go/internal/models"
)

const userColumns = `id, email, name, password_hash, role, is_active, push_token, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = newID(user.ID)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	return s.namedExec(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (:id, :email, :name, :password_hash, :role, :is_active, :push_token, :created_at, :updated_at)
`, user)
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return user, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, strings.ToLower(strings.TrimSpace(email)))
	return user, err
}

// ListUsers returns every user when role is empty.
func (s *Store) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	users := []models.User{}
	if role == "" {
		err := s.selectAll(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
		return users, err
	}
	err := s.selectAll(ctx, &users, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, role)
	return users, err
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = now()
	return s.mustAffect(s.q.ExecContext(ctx, `
UPDATE users
SET email = $2, name = $3, password_hash = $4, role = $5, is_active = $6, push_token = $7, updated_at = $8
WHERE id = $1
`, user.ID, strings.ToLower(strings.TrimSpace(user.Email)), user.Name, user.PasswordHash, user.Role, user.IsActive, user.PushToken, user.UpdatedAt))
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.mustAffect(s.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}
