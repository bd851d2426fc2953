package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

const testCookie = "landing.session_token"

func runGuard(t *testing.T, path string, withCookie bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "opaque"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	passed := false
	handler := Guard(testCookie)(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec, passed
}

func TestGuard_ProtectedWithoutCookie_RedirectsToSignIn(t *testing.T) {
	for _, path := range []string{"/dashboard", "/dashboard/settings", "/admin", "/admin/users"} {
		rec, passed := runGuard(t, path, false)
		if passed {
			t.Fatalf("%s: request passed through without cookie", path)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/sign-in" {
			t.Fatalf("%s: expected redirect to /sign-in, got %q", path, loc)
		}
	}
}

func TestGuard_ProtectedWithCookie_PassesThrough(t *testing.T) {
	for _, path := range []string{"/dashboard", "/admin"} {
		rec, passed := runGuard(t, path, true)
		if !passed {
			t.Fatalf("%s: expected pass-through with cookie, got %d", path, rec.Code)
		}
	}
}

func TestGuard_AuthOnlyWithCookie_RedirectsToDashboard(t *testing.T) {
	for _, path := range []string{"/sign-in", "/sign-up"} {
		rec, passed := runGuard(t, path, true)
		if passed {
			t.Fatalf("%s: authenticated request passed through to auth page", path)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
			t.Fatalf("%s: expected redirect to /dashboard, got %q", path, loc)
		}
	}
}

func TestGuard_AuthOnlyWithoutCookie_PassesThrough(t *testing.T) {
	for _, path := range []string{"/sign-in", "/sign-up"} {
		if _, passed := runGuard(t, path, false); !passed {
			t.Fatalf("%s: expected pass-through without cookie", path)
		}
	}
}

func TestGuard_OtherPaths_PassThrough(t *testing.T) {
	for _, path := range []string{"/", "/rpc/hello", "/health", "/dashboards"} {
		for _, withCookie := range []bool{true, false} {
			if _, passed := runGuard(t, path, withCookie); !passed {
				t.Fatalf("%s (cookie=%v): expected pass-through", path, withCookie)
			}
		}
	}
}

func TestGuard_EmptyCookieValue_TreatedAsAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: ""})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Guard(testCookie)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}
