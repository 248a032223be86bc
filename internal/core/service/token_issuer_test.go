package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

func TestNewJWTIssuer_MissingSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		if _, err := NewJWTIssuer(secret, time.Hour); !errors.Is(err, ErrMissingSigningSecret) {
			t.Fatalf("secret %q: expected ErrMissingSigningSecret, got %v", secret, err)
		}
	}
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", 2*time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue(ports.TokenClaims{Subject: "user_1", Username: "alice", Role: "User"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	if claims["id"] != "user_1" || claims["username"] != "alice" || claims["role"] != "User" {
		t.Fatalf("unexpected claims: %v", claims)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		t.Fatalf("missing iat claim: %v", err)
	}
	if got := exp.Sub(iat.Time); got != 2*time.Hour {
		t.Fatalf("expected 2h lifetime, got %v", got)
	}
}

func TestJWTIssuer_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue(ports.TokenClaims{Subject: "user_1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatalf("token verified under the wrong secret")
	}
}

func TestJWTIssuer_ExpiredTokenRejected(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	issuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, err := issuer.Issue(ports.TokenClaims{Subject: "user_1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatalf("expired token verified")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTIssuer_EmptyRoleClaim(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue(ports.TokenClaims{Subject: "user_1", Username: "alice", Role: ""})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims["role"] != "" {
		t.Fatalf("expected empty role claim, got %v", claims["role"])
	}
}
