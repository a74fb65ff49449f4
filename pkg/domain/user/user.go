// Package user defines platform account holders. Authentication mechanics
// live at the web layer; the domain only carries identity and the hashed
// credential.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/utils"
)

var (
	// ErrEmptyUsername is returned when the username is blank.
	ErrEmptyUsername = errors.New("username cannot be empty")
	// ErrInvalidEmail is returned when the email does not parse.
	ErrInvalidEmail = errors.New("invalid email address")
)

// User is a platform account holder. Admins confirm deposits and approve
// withdrawals.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a User with a hashed password.
func New(username, email, password string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !utils.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CheckPassword reports whether the plain password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.Password)
}
