package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

// ErrMissingSigningSecret indicates the issuer was constructed without a
// signing secret. This is a startup-class configuration fault: main must
// refuse to serve login requests rather than fail per call.
var ErrMissingSigningSecret = errors.New("jwt signing secret is not configured")

const defaultTokenTTL = 48 * time.Hour

// JWTIssuer mints HS256-signed session tokens. Tokens are self-contained:
// three base64url dot segments with an HMAC-SHA256 signature over
// header+payload, verifiable by any party holding the shared secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer fails when the secret is empty or blank. A non-positive ttl
// falls back to 48 hours.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSigningSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token carrying the subject id, normalized username and a
// single role claim, with an absolute expiry of now plus the configured TTL.
func (i *JWTIssuer) Issue(claims ports.TokenClaims) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrMissingSigningSecret
	}

	now := i.now().UTC()
	mc := jwt.MapClaims{
		"id":       claims.Subject,
		"username": claims.Username,
		"role":     claims.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(i.secret)
}
