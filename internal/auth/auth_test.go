package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	s := New("secret", time.Hour)

	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	email, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).Issue("user@example.com")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := New("secret", -time.Minute)
	// New floors non-positive TTLs at an hour, so craft expiry directly.
	s.ttl = -time.Minute

	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	s := New("secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := s.Middleware(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := s.Issue("user@example.com")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
