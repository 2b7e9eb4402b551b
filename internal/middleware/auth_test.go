package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"telemed-service/pkg/config"
	"telemed-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "middleware-test-key", ExpirationHours: 1})
}

// protectedProbe records whether the wrapped handler ran and what identity
// the middleware stored in context.
type protectedProbe struct {
	called bool
	userID uint
	role   string
}

func (p *protectedProbe) handler(c echo.Context) error {
	p.called = true
	p.userID, _ = c.Get(ContextUserID).(uint)
	p.role, _ = c.Get(ContextRole).(string)
	return c.NoContent(http.StatusOK)
}

func request(t *testing.T, probe *protectedProbe, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := AuthMiddleware(probe.handler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return got["error"]
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	initTestJWT(t)
	probe := &protectedProbe{}

	rec := request(t, probe, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "no_token" {
		t.Errorf("error = %q, want no_token", code)
	}
	if probe.called {
		t.Error("handler ran without a token")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	initTestJWT(t)
	token, err := jwtutil.GenerateToken(7, "doctor", "9876543210", "")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	for _, header := range []string{"Token " + token, token, "Bearer a b"} {
		probe := &protectedProbe{}
		rec := request(t, probe, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
		if code := errorCode(t, rec.Body.Bytes()); code != "invalid_token_format" {
			t.Errorf("header %q: error = %q, want invalid_token_format", header, code)
		}
		if probe.called {
			t.Errorf("header %q: handler ran", header)
		}
	}
}

// A bare user id is not a credential. Presenting the numeric id where the
// signed token belongs must be rejected.
func TestAuthMiddleware_BareUserID(t *testing.T) {
	initTestJWT(t)
	probe := &protectedProbe{}

	rec := request(t, probe, "Bearer "+strconv.Itoa(7))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "invalid_token" {
		t.Errorf("error = %q, want invalid_token", code)
	}
	if probe.called {
		t.Error("handler ran with a bare user id")
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	initTestJWT(t)
	token, err := jwtutil.GenerateToken(7, "doctor", "9876543210", "rao@clinic.org")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	probe := &protectedProbe{}

	rec := request(t, probe, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !probe.called {
		t.Fatal("handler did not run")
	}
	if probe.userID != 7 || probe.role != "doctor" {
		t.Errorf("context identity = (%d, %q), want (7, doctor)", probe.userID, probe.role)
	}
}
