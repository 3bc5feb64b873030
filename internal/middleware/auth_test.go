package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetflow/internal/config"
	"budgetflow/internal/errors"
	"budgetflow/internal/models"
	"budgetflow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authTokenService(duration time.Duration) services.TokenServiceInterface {
	return services.NewTokenService(&config.JWTConfig{
		Secret:              "middleware-test-secret",
		AccessTokenDuration: duration,
		Issuer:              "budgetflow-api",
	})
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokenService := authTokenService(time.Hour)
	user := &models.User{ID: uuid.New(), Email: "auth@example.com"}

	token, _, err := tokenService.GenerateAccessToken(user)
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+token)

	var seenUserID uuid.UUID
	handler := RequireAuth(tokenService)(func(c echo.Context) error {
		seenUserID = c.Get("user_id").(uuid.UUID)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, seenUserID)
	assert.Equal(t, user.Email, c.Get("user_email"))
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	c, rec := newAuthTestContext(t, "")

	handler := RequireAuth(authTokenService(time.Hour))(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(errors.AuthMissingToken), decodeErrorCode(t, rec))
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	c, rec := newAuthTestContext(t, "Basic abc123")

	handler := RequireAuth(authTokenService(time.Hour))(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(errors.AuthInvalidTokenFormat), decodeErrorCode(t, rec))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := authTokenService(-time.Minute)
	token, _, err := expired.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "auth@example.com"})
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+token)

	handler := RequireAuth(expired)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(errors.AuthExpiredToken), decodeErrorCode(t, rec))
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	tokenService := authTokenService(time.Hour)
	token, _, err := tokenService.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "auth@example.com"})
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+token+"x")

	handler := RequireAuth(tokenService)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(errors.AuthInvalidTokenFormat), decodeErrorCode(t, rec))
}

func TestRequestID_GeneratesTraceID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		assert.NotEmpty(t, GetTraceID(c))
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.NotEmpty(t, rec.Header().Get(TraceIDHeader))
}

func TestRequestID_PropagatesIncomingTraceID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(TraceIDHeader, "incoming-trace")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		assert.Equal(t, "incoming-trace", GetTraceID(c))
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "incoming-trace", rec.Header().Get(TraceIDHeader))
}
