package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin   = "Admin"
	RoleDefault = "User"
)

var ErrUsernameRequired = errors.New("username is required")
var ErrPasswordRequired = errors.New("password is required")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("username not found")
var ErrAccountNotFound = errors.New("account does not exist")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models a registered account. PasswordHash is the stored bcrypt
// credential and must never be serialized to a response.
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	NormalizedUsername string    `json:"-"`
	DisplayName        string    `json:"display_name,omitempty"`
	PasswordHash       string    `json:"-"`
	Roles              []string  `json:"roles"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FirstRole returns the role embedded in session tokens. Accounts keep a
// role set in storage but tokens carry a single value.
func (u *User) FirstRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

// Role is a named grant referenced by user accounts.
type Role struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeUsername folds a username for uniqueness and lookup comparisons.
// The original casing is preserved on the account itself.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
