package handlers

import (
	"errors"
	"fmt"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/repositories"
	"budgetflow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// sendServiceError maps service layer errors onto standardized responses.
// Unknown errors become 500s with the internals hidden.
func sendServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails(validationErr.Message))
	}

	switch {
	case errors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, apperrors.TransactionNotFound)
	case errors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, apperrors.CategoryNotFound)
	case errors.Is(err, services.ErrUserNotFound):
		return SendError(c, apperrors.UserNotFound)
	case errors.Is(err, services.ErrNotOwner):
		return SendError(c, apperrors.AuthNotResourceOwner)
	case errors.Is(err, services.ErrDistributionLocked):
		return SendError(c, apperrors.DistributionLocked)
	case errors.Is(err, services.ErrInvalidIdentifier):
		return SendError(c, apperrors.TransactionInvalidID)
	case errors.Is(err, repositories.ErrCategoryInUse):
		return SendError(c, apperrors.CategoryInUse)
	case errors.Is(err, repositories.ErrCategoryDefault):
		return SendError(c, apperrors.CategoryNotCustom)
	default:
		return SendSystemError(c, err)
	}
}
