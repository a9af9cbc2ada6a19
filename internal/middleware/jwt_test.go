package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/utils"
)

const testSecret = "test-secret"

func runProtected(t *testing.T, mw []echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/reservations", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler chain returned error: %v", err)
	}
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	for _, header := range []string{"", "Basic abc", "bearer lowercase"} {
		rec := runProtected(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec := runProtected(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "STAFF", 15)
	if err != nil {
		t.Fatal(err)
	}
	rec := runProtected(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "STAFF", 15)
	if err != nil {
		t.Fatal(err)
	}
	rec := runProtected(t, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"staff on staff route", "STAFF", []string{"STAFF", "ADMIN"}, http.StatusOK},
		{"admin on staff route", "ADMIN", []string{"STAFF", "ADMIN"}, http.StatusOK},
		{"staff on admin-only route", "STAFF", []string{"ADMIN"}, http.StatusForbidden},
		{"unknown role", "GUEST", []string{"STAFF", "ADMIN"}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := utils.NewAccessToken(testSecret, 7, tc.role, 15)
			if err != nil {
				t.Fatal(err)
			}
			mw := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole(tc.allowed...)}
			rec := runProtected(t, mw, "Bearer "+tok.Token)
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestRequireRoleWithoutJWTAuth(t *testing.T) {
	// Role middleware on its own (no role in context) must deny.
	rec := runProtected(t, []echo.MiddlewareFunc{RequireRole("STAFF")}, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
