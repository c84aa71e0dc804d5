package webhook

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvcrn/gitlab-api-client/gitlab"
)

func TestVerify(t *testing.T) {
	testCases := []struct {
		name        string
		secret      string
		headerValue string
		setHeader   bool
		expected    error
	}{
		{
			name:        "no secret configured",
			secret:      "",
			headerValue: "anything",
			setHeader:   true,
			expected:    nil,
		},
		{
			name:     "blank secret disables verification",
			secret:   "  ",
			expected: nil,
		},
		{
			name:        "exact match",
			secret:      "abc123",
			headerValue: "abc123",
			setHeader:   true,
			expected:    nil,
		},
		{
			name:     "header absent",
			secret:   "abc123",
			expected: ErrMissingSignature,
		},
		{
			name:        "mismatch",
			secret:      "abc123",
			headerValue: "ABC123",
			setHeader:   true,
			expected:    ErrInvalidSignature,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			if tc.setHeader {
				header.Set(gitlab.SecretTokenHeader, tc.headerValue)
			}

			err := NewVerifier(tc.secret).Verify(header)
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(NewVerifier("abc123"))(next)

	t.Run("valid token passes through", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodPost, "/hooks", nil)
		req.Header.Set(gitlab.SecretTokenHeader, "abc123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if !nextCalled {
			t.Error("expected the next handler to run")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodPost, "/hooks", nil)
		req.Header.Set(gitlab.SecretTokenHeader, "wrong")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if nextCalled {
			t.Error("expected the next handler to be skipped")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodPost, "/hooks", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if nextCalled {
			t.Error("expected the next handler to be skipped")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}
