// Package auth issues and reads the JWTs the web layer authenticates
// with. Login accepts a username or an email as the identity.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/user"
	"github.com/yieldvault/yieldvault/pkg/repository"
	"github.com/yieldvault/yieldvault/pkg/utils"
	"log/slog"
)

// Service authenticates users and mints tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// a real bcrypt hash of nothing in particular; comparing against it keeps
// the unknown-identity path as slow as the wrong-password path
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Login verifies identity/password and returns the user. Unknown identity
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, identity, password string) (*user.User, error) {
	var u *user.User
	var err error
	if utils.IsEmail(identity) {
		u, err = s.uow.Users().GetByEmail(ctx, identity)
	} else {
		u, err = s.uow.Users().GetByUsername(ctx, identity)
	}
	if err != nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		s.logger.Warn("login failed", "identity", identity)
		return nil, domain.ErrUnauthorized
	}
	if !u.CheckPassword(password) {
		s.logger.Warn("login failed", "identity", identity)
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// GenerateToken mints an HS256 JWT for u.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["is_admin"] = u.IsAdmin
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the authenticated user id from a verified token.
func CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// IsAdmin reports whether a verified token carries the admin claim.
func IsAdmin(token *jwt.Token) bool {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, _ := claims["is_admin"].(bool)
	return admin
}
