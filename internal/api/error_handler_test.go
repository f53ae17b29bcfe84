package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/utilibill/billing-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"profile incomplete", domain.ErrProfileIncomplete, http.StatusBadRequest},
		{"invalid units", domain.ErrInvalidUnits, http.StatusBadRequest},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"no session", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"revoked session", domain.ErrSessionNotFound, http.StatusUnauthorized},
		{"wrong role", domain.ErrForbidden, http.StatusForbidden},
		{"customer missing", domain.ErrCustomerNotFound, http.StatusNotFound},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound},
		{"bill missing", domain.ErrBillNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestErrorHandler_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("repo layer"), domain.ErrCustomerNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel should still map, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("expected 400 invalid payload, got %d %q", code, msg)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo blew up"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal cause must not leak, got %q", msg)
	}
}
