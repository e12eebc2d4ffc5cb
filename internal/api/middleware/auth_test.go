package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/database/models"
	"github.com/hugh/taskhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, sawUser **models.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawUser = middleware.GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	var sawUser *models.User
	handler := middleware.Auth(tc.Sessions, tc.AuthService)(okHandler(t, &sawUser))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tc.Token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sawUser)
	assert.Equal(t, tc.User.ID, sawUser.ID)
}

func TestAuth_MissingHeader(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	handler := middleware.Auth(tc.Sessions, tc.AuthService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	handler := middleware.Auth(tc.Sessions, tc.AuthService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RevokedSession(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	session, err := tc.Sessions.Validate(testutil.TestContext(t), tc.Token)
	require.NoError(t, err)
	require.NoError(t, tc.Sessions.Revoke(testutil.TestContext(t), session.Token))

	handler := middleware.Auth(tc.Sessions, tc.AuthService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tc.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireActive(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	require.NoError(t, tc.DB.Model(tc.User).Update("is_active", false).Error)

	chain := middleware.Auth(tc.Sessions, tc.AuthService)(
		middleware.RequireActive(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})),
	)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tc.Token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	// The session itself is still valid; the account state is what blocks.
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
