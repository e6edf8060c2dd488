package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/labstack/echo/v4"
)

func TestAppErrorConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        *AppError
		wantStatus int
	}{
		{"bad request", NewBadRequest(ErrCodeValidationFailed, "bad"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized(ErrCodeInvalidCredentials, "nope"), http.StatusUnauthorized},
		{"forbidden", NewForbidden(ErrCodeForbidden, "no"), http.StatusForbidden},
		{"not found", NewNotFound(ErrCodeContentNotFound, "gone"), http.StatusNotFound},
		{"too many requests", NewTooManyRequests(ErrCodeRateLimitExceeded, "slow down"), http.StatusTooManyRequests},
		{"internal", NewInternal(ErrCodeStoreError, "boom", errors.New("db gone")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, tc.err.HTTPStatus, tc.wantStatus)
		}
		if tc.err.Stack == "" {
			t.Fatalf("%s: no stack captured", tc.name)
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db gone")
	appErr := NewInternal(ErrCodeStoreError, "boom", cause)

	if !errors.Is(appErr, cause) {
		t.Fatal("errors.Is does not see the wrapped cause")
	}
	if appErr.Error() != "boom: db gone" {
		t.Fatalf("Error() = %q", appErr.Error())
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	logger.Init(logger.Config{Level: logger.LevelError, Environment: "test"})
	handler := HTTPErrorHandler(logger.Get())

	serve := func(err error) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handler(err, c)
		return rec
	}

	t.Run("app error", func(t *testing.T) {
		rec := serve(NewNotFound(ErrCodeContentNotFound, "no such item"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Error != ErrCodeContentNotFound {
			t.Fatalf("error code = %q", resp.Error)
		}
	})

	t.Run("echo http error", func(t *testing.T) {
		rec := serve(echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("unknown error", func(t *testing.T) {
		rec := serve(errors.New("mystery"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Error != ErrCodeUnexpectedError {
			t.Fatalf("error code = %q", resp.Error)
		}
		if resp.Message == "mystery" {
			t.Fatal("internal error detail leaked to the client")
		}
	})
}
