package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

// AuthService implements account registration and login. It is stateless;
// all shared mutable state lives in the backing stores, so a single
// instance is safe for concurrent use.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	throttle ports.LoginThrottle // optional
	audit    ports.AuditRecorder // optional
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		issuer: issuer,
		logger: logger,
	}
}

// WithThrottle enables per-account login rate limiting.
func (s *AuthService) WithThrottle(throttle ports.LoginThrottle) *AuthService {
	s.throttle = throttle
	return s
}

// WithAudit enables asynchronous audit recording of auth outcomes.
func (s *AuthService) WithAudit(audit ports.AuditRecorder) *AuthService {
	s.audit = audit
	return s
}

// Register creates an account: uniqueness check, hash, role resolution,
// persist. The store's unique index on the normalized username is the
// authoritative guard; the Exists pre-check only gives an earlier, cheaper
// rejection. A duplicate-key violation on insert surfaces as the same
// domain.ErrUserExists the pre-check would have produced.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, domain.ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, domain.ErrPasswordRequired
	}

	normalized := domain.NormalizeUsername(input.Username)

	taken, err := s.users.ExistsByNormalizedUsername(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("uniqueness check: %w", err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleDefault
	}
	if _, err := s.roles.EnsureRole(ctx, role); err != nil {
		return nil, fmt.Errorf("ensure role %q: %w", role, err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:           input.Username,
		NormalizedUsername: normalized,
		DisplayName:        input.DisplayName,
		PasswordHash:       hash,
		Roles:              []string{role},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("username", normalized).Str("role", role).Msg("user registered")
	s.record(normalized, "register", "success")

	return created, nil
}

// Login verifies credentials and issues a session token. The failure checks
// are ordered and each short-circuits the next; every expected business
// failure is returned as a sentinel error value, never a panic or fault.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.ErrAccountNotFound
	}

	normalized := domain.NormalizeUsername(username)

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, normalized)
		if err != nil {
			// A throttle outage must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if !ok {
			s.record(normalized, "login", "throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByNormalizedUsername(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(normalized, "login", "unknown_user")
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(normalized, "login", "bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ports.TokenClaims{
		Subject:  user.ID,
		Username: user.NormalizedUsername,
		Role:     user.FirstRole(),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, normalized); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().Str("username", normalized).Msg("user logged in")
	s.record(normalized, "login", "success")

	return &ports.LoginResult{
		Token:   token,
		User:    user,
		Message: "login successful",
	}, nil
}

func (s *AuthService) record(subject, action, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEntry{
		Subject:   subject,
		Action:    action,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}
