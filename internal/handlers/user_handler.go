package handlers

import (
	"net/http"

	"budgetflow/internal/dto"
	"budgetflow/internal/errors"
	"budgetflow/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and budget preference requests
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the authenticated user's profile
// @Summary Get profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// GetBudgetPreferences returns the stored budget split
// @Summary Get budget preferences
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /users/me/budget [get]
func (h *UserHandler) GetBudgetPreferences(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetResponse{
		NeedsPercent:   user.BudgetPreferences.NeedsPercent,
		WantsPercent:   user.BudgetPreferences.WantsPercent,
		SavingsPercent: user.BudgetPreferences.SavingsPercent,
	})
}

// UpdateBudgetPreferences replaces the stored budget split
// @Summary Update budget preferences
// @Description Replace the stored needs/wants/savings split. Only future incomes use the new split
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateBudgetRequest true "New split"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Percentages do not sum to 100"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /users/me/budget [put]
func (h *UserHandler) UpdateBudgetPreferences(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	req := &dto.UpdateBudgetRequest{}
	if err := c.Bind(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	user, err := h.userService.UpdateBudgetPreferences(userID, req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetResponse{
		NeedsPercent:   user.BudgetPreferences.NeedsPercent,
		WantsPercent:   user.BudgetPreferences.WantsPercent,
		SavingsPercent: user.BudgetPreferences.SavingsPercent,
	})
}
