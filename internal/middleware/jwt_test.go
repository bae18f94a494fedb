package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/wildriver/resort-booking/internal/utils"
)

const testSecret = "middleware-test-secret"

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "guest@example.com", "user", 1)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		id, ok := Identity(c)
		require.True(t, ok)
		assert.Equal(t, uint64(7), id.UserID)
		assert.Equal(t, "user", id.Role)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	rec, reached := run(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	rec, reached = run(t, JWTAuth(testSecret), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	other, err := utils.NewAccessToken("other-secret", 7, "guest@example.com", "user", 1)
	require.NoError(t, err)
	rec, reached = run(t, JWTAuth(testSecret), "Bearer "+other.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	// Absent header.
	rec, reached := run(t, OptionalAuth(testSecret), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	// Undecodable token passes through anonymously.
	rec, reached = run(t, OptionalAuth(testSecret), "Bearer not.a.token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestOptionalAuthStoresIdentityWhenValid(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 9, "guest@example.com", "user", 1)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := OptionalAuth(testSecret)(func(c echo.Context) error {
		id, ok := Identity(c)
		require.True(t, ok)
		assert.Equal(t, uint64(9), id.UserID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	adminTok, err := utils.NewAccessToken(testSecret, 1, "admin@resort.com", "admin", 1)
	require.NoError(t, err)
	userTok, err := utils.NewAccessToken(testSecret, 2, "guest@example.com", "user", 1)
	require.NoError(t, err)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return JWTAuth(testSecret)(RequireRole("admin")(next))
	}

	rec, reached := run(t, chain, "Bearer "+adminTok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	rec, reached = run(t, chain, "Bearer "+userTok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// No JWTAuth in front: identity missing, role check denies.
	rec, reached = run(t, RequireRole("admin"), "Bearer "+adminTok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
