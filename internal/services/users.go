package services

import (
	"context"
	"errors"
	"strings"

	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/store"
)

type UserService struct {
	store  store.Store
	tokens TokenService
	log    *logger.Logger
}

func NewUserService(st store.Store, tokens TokenService, log *logger.Logger) *UserService {
	return &UserService{store: st, tokens: tokens, log: log}
}

type NewUser struct {
	Email    string
	Name     string
	Password string
}

func (s *UserService) Login(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, TokenPair{}, ErrBadRequest("Email and password are required")
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, TokenPair{}, ErrUnauthorized("Authentication failed")
	}
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if !s.tokens.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, TokenPair{}, ErrUnauthorized("Authentication failed")
	}
	if !user.IsActive {
		return models.User{}, TokenPair{}, ErrForbidden("Account is disabled")
	}
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	s.log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, pair, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.User, TokenPair, error) {
	userID, err := s.tokens.ParseRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return models.User{}, TokenPair{}, ErrUnauthorized("Authentication failed")
	}
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, TokenPair{}, ErrUnauthorized("Authentication failed")
	}
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if !user.IsActive {
		return models.User{}, TokenPair{}, ErrForbidden("Account is disabled")
	}
	pair, err := s.tokens.IssuePair(user)
	return user, pair, err
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	return user, fromStore(err, "User")
}

func (s *UserService) ListVolunteers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx, models.RoleVolunteer)
}

func (s *UserService) CreateVolunteer(ctx context.Context, in NewUser) (models.User, error) {
	return s.create(ctx, in, models.RoleVolunteer)
}

func (s *UserService) create(ctx context.Context, in NewUser, role string) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return models.User{}, ErrBadRequest("Email and password are required")
	}
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrConflict("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}
	hash, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.User{}, ErrConflict("User already exists")
		}
		return models.User{}, err
	}
	s.log.Info("user created", "user_id", user.ID, "role", role)
	return user, nil
}

// DeleteVolunteer refuses to remove admins.
func (s *UserService) DeleteVolunteer(ctx context.Context, id string) error {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && user.Role != models.RoleVolunteer) {
		return ErrNotFound("Volunteer not found")
	}
	if err != nil {
		return err
	}
	return fromStore(s.store.DeleteUser(ctx, id), "Volunteer")
}

// UpdatePushToken stores the Expo token; an empty token clears it.
func (s *UserService) UpdatePushToken(ctx context.Context, userID, token string) (models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fromStore(err, "User")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		user.PushToken = nil
	} else {
		user.PushToken = &token
	}
	if err := s.store.UpdateUser(ctx, &user); err != nil {
		return models.User{}, fromStore(err, "User")
	}
	return user, nil
}

// EnsureAdmin creates the admin account unless the email is already taken.
func (s *UserService) EnsureAdmin(ctx context.Context, in NewUser) (models.User, bool, error) {
	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, false, err
	}
	user, err := s.create(ctx, in, models.RoleAdmin)
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}
