package ports

import (
	"context"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
// DisplayName and Role are optional; Role defaults to domain.RoleDefault.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        string
}

// LoginResult is returned on a successful login. Message mirrors the
// human-readable status string the transport layer surfaces to callers.
type LoginResult struct {
	Token   string
	User    *domain.User
	Message string
}

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// PasswordHasher is a one-way, salted transform over plaintext passwords.
// Hash output differs per call (random salt); Verify must compare in
// constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenClaims is the identity payload embedded in session tokens.
type TokenClaims struct {
	Subject  string
	Username string
	Role     string
}

// TokenIssuer mints signed, time-bounded session tokens. Verification
// belongs to the request-authorization middleware, not the issuer.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
}

// LoginThrottle limits repeated login attempts per account.
type LoginThrottle interface {
	// Allow records an attempt for the normalized username and reports
	// whether the caller is still inside the allowed window.
	Allow(ctx context.Context, normalized string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, normalized string) error
}
