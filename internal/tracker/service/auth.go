package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/pkg/cryptox"
	"github.com/clockin-dev/clockin/pkg/jwtx"
	"github.com/clockin-dev/clockin/pkg/slogx"
)

type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Login verifies the credentials and mints an access token. Unknown
// usernames and wrong passwords both come back as
// ErrInvalidCredentials so the response doesn't leak which half failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("username", username))
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(user.ID, string(user.Role))
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return user, token, nil
}
