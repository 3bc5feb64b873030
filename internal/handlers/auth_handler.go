package handlers

import (
	"net/http"

	"budgetflow/internal/dto"
	"budgetflow/internal/errors"
	"budgetflow/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles Google OAuth sign-in and token issuance
type AuthHandler struct {
	googleAuthService services.GoogleAuthServiceInterface
	tokenService      services.TokenServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	googleAuthService services.GoogleAuthServiceInterface,
	tokenService services.TokenServiceInterface,
) *AuthHandler {
	return &AuthHandler{
		googleAuthService: googleAuthService,
		tokenService:      tokenService,
	}
}

// GoogleLoginURL returns the Google consent page URL
// @Summary Get Google sign-in URL
// @Tags Auth
// @Produce json
// @Param state query string false "Opaque state echoed back on the callback"
// @Success 200 {object} SuccessResponse
// @Router /auth/google/url [get]
func (h *AuthHandler) GoogleLoginURL(c echo.Context) error {
	state := c.QueryParam("state")
	return c.JSON(http.StatusOK, SuccessResponse{
		Data: map[string]string{"url": h.googleAuthService.AuthCodeURL(state)},
	})
}

// GoogleLogin exchanges a Google authorization code for an API token
// @Summary Sign in with Google
// @Description Exchange a Google OAuth authorization code for an access token. First-time users are provisioned with default categories and a 50/30/20 budget split
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "Authorization code"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Missing authorization code"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - Authorization code rejected"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	req := &dto.GoogleLoginRequest{}
	if err := c.Bind(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("code is required"))
	}

	user, isNewUser, err := h.googleAuthService.Authenticate(c.Request().Context(), req.Code)
	if err != nil {
		return SendError(c, errors.AuthInvalidGrant)
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(user)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		IsNewUser:   isNewUser,
		User:        user,
	})
}
