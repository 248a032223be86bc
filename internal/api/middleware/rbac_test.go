package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newRBACContext(role interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	return c, rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	c, rec := newRBACContext("Admin")

	if err := RBAC("Admin")(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsOtherRole(t *testing.T) {
	c, rec := newRBACContext("User")

	if err := RBAC("Admin")(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsMissingRole(t *testing.T) {
	c, rec := newRBACContext(nil)

	if err := RBAC("Admin")(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MultipleRoles(t *testing.T) {
	for _, role := range []string{"Admin", "Support"} {
		c, rec := newRBACContext(role)

		if err := RBAC("Admin", "Support")(okHandler)(c); err != nil {
			t.Fatalf("role %q: middleware returned error: %v", role, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("role %q: expected 200, got %d", role, rec.Code)
		}
	}
}
