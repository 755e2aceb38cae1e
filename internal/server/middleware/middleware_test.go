package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/boardlive/internal/auth"
	"github.com/gosuda/boardlive/internal/server/middleware"
)

const testSecret = "test-secret-test-secret-test-secret"

func protectedHandler(t *testing.T, wantUserID uuid.UUID, wantName string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok, "user id missing from context")
		assert.Equal(t, wantUserID, userID)

		name, ok := middleware.UserNameFromContext(r.Context())
		require.True(t, ok, "user name missing from context")
		assert.Equal(t, wantName, name)

		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("bearer_token_accepted", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		tok, err := auth.IssueAccessToken(testSecret, userID, "ana", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(protectedHandler(t, userID, "ana"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("query_token_accepted", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		tok, err := auth.IssueAccessToken(testSecret, userID, "ben", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(protectedHandler(t, userID, "ben"))

		req := httptest.NewRequest(http.MethodGet, "/ws?token="+tok, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_token_rejected", func(t *testing.T) {
		t.Parallel()

		handler := middleware.Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run without credentials")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired_token_rejected", func(t *testing.T) {
		t.Parallel()

		tok, err := auth.IssueAccessToken(testSecret, uuid.New(), "ana", -time.Minute)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run with an expired token")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token_signed_with_other_secret_rejected", func(t *testing.T) {
		t.Parallel()

		tok, err := auth.IssueAccessToken("another-secret-another-secret-xx", uuid.New(), "ana", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run with a forged token")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
