package service

import (
	"context"
	"errors"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/pkg/cryptox"
	"github.com/clockin-dev/clockin/pkg/idx"
	"github.com/clockin-dev/clockin/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// ListEmployees returns all non-admin users, newest first.
func (s *UserService) ListEmployees(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsersByRole(ctx, domain.RoleUser)
}

// CreateUser registers a new employee (admin operation). When password
// is empty a random one is generated and returned so the admin can hand
// it over; it is never retrievable again.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string, role domain.Role) (domain.User, string, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.User{}, "", ErrInvalidRole
	}

	generated := ""
	if password == "" {
		var err error
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return domain.User{}, "", err
		}
		generated = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrUsernameTaken
		}
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", user.ID, "username", username, "role", role)
	return user, generated, nil
}

// EnsureAdmin seeds the first admin account when the user table is
// empty. Called once at startup; a populated store is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty || username == "" || password == "" {
		return nil
	}

	_, _, err = s.CreateUser(ctx, username, username, password, domain.RoleAdmin)
	return err
}
