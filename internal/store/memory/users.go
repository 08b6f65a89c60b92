package memory

import (
	"context"

	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.write(func(t *tables) error {
		user.Email = normalizeEmail(user.Email)
		if emailTaken(t, user.Email, "") {
			return store.ErrConflict
		}
		user.ID = newID(user.ID)
		user.CreatedAt = s.now()
		user.UpdatedAt = user.CreatedAt
		t.users[user.ID] = copyUser(*user)
		return nil
	})
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.read(func(t *tables) error {
		found, ok := t.users[id]
		if !ok {
			return store.ErrNotFound
		}
		user = copyUser(found)
		return nil
	})
	return user, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	email = normalizeEmail(email)
	err := s.read(func(t *tables) error {
		for _, u := range t.users {
			if u.Email == email {
				user = copyUser(u)
				return nil
			}
		}
		return store.ErrNotFound
	})
	return user, err
}

func (s *Store) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := s.read(func(t *tables) error {
		all := sortedValues(t.users, func(a, b models.User) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.Email < b.Email
		})
		users = []models.User{}
		for _, u := range all {
			if role == "" || u.Role == role {
				users = append(users, copyUser(u))
			}
		}
		return nil
	})
	return users, err
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return s.write(func(t *tables) error {
		current, ok := t.users[user.ID]
		if !ok {
			return store.ErrNotFound
		}
		user.Email = normalizeEmail(user.Email)
		if emailTaken(t, user.Email, user.ID) {
			return store.ErrConflict
		}
		user.CreatedAt = current.CreatedAt
		user.UpdatedAt = s.now()
		t.users[user.ID] = copyUser(*user)
		return nil
	})
}

// DeleteUser nulls completed_by on lessons the user finished.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.write(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return store.ErrNotFound
		}
		delete(t.users, id)
		for lid, l := range t.lessons {
			if l.CompletedBy != nil && *l.CompletedBy == id {
				l.CompletedBy = nil
				t.lessons[lid] = l
			}
		}
		return nil
	})
}

func emailTaken(t *tables, email, excludeID string) bool {
	for id, u := range t.users {
		if u.Email == email && id != excludeID {
			return true
		}
	}
	return false
}
