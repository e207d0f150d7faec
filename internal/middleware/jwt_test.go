package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/utils"
)

const testSecret = "mw-test-secret"

func runJWTAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	for _, hdr := range []string{"", "Basic abc", "Bearer"} {
		rec, _, reached := runJWTAuth(t, hdr)
		if reached {
			t.Errorf("header %q reached handler", hdr)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", hdr, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body["error"] == "" {
			t.Errorf("header %q: expected error message in body", hdr)
		}
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _, reached := runJWTAuth(t, "Bearer not-a-token")
	if reached {
		t.Error("invalid token reached handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 7, "a@x.com", "A", -1)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	rec, _, reached := runJWTAuth(t, "Bearer "+tok.Token)
	if reached {
		t.Error("expired token reached handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 7, "a@x.com", "A", 60)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	rec, c, reached := runJWTAuth(t, "Bearer "+tok.Token)
	if !reached {
		t.Fatal("valid token did not reach handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got, _ := c.Get(CtxUserID).(uint64); got != 7 {
		t.Errorf("user_id = %v, want 7", c.Get(CtxUserID))
	}
	if got, _ := c.Get(CtxEmail).(string); got != "a@x.com" {
		t.Errorf("email = %v, want a@x.com", c.Get(CtxEmail))
	}
	if got, _ := c.Get(CtxName).(string); got != "A" {
		t.Errorf("name = %v, want A", c.Get(CtxName))
	}
}
