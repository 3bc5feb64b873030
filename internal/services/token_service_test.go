package services_test

import (
	"testing"
	"time"

	"budgetflow/internal/config"
	"budgetflow/internal/models"
	"budgetflow/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(duration time.Duration) services.TokenServiceInterface {
	return services.NewTokenService(&config.JWTConfig{
		Secret:              "test-secret-key-for-token-tests",
		AccessTokenDuration: duration,
		Issuer:              "budgetflow-api",
	})
}

func testTokenUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "token@example.com",
	}
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	service := newTokenService(time.Hour)
	user := testTokenUser()

	token, expiresAt, err := service.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "budgetflow-api", claims.Issuer)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	service := newTokenService(-time.Minute)
	user := testTokenUser()

	token, _, err := service.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	service := newTokenService(time.Hour)
	user := testTokenUser()

	token, _, err := service.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token + "x")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuer := newTokenService(time.Hour)
	verifier := services.NewTokenService(&config.JWTConfig{
		Secret:              "a-different-secret",
		AccessTokenDuration: time.Hour,
		Issuer:              "budgetflow-api",
	})

	token, _, err := issuer.GenerateAccessToken(testTokenUser())
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_ExtractTokenFromHeader(t *testing.T) {
	service := newTokenService(time.Hour)

	token, err := service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = service.ExtractTokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = service.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = service.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = service.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
