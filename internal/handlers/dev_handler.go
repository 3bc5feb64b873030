package handlers

import (
	"net/http"

	"budgetflow/internal/errors"
	"budgetflow/internal/services"

	"github.com/labstack/echo/v4"
)

const maxSeedCount = 500

// DevHandler handles development-only endpoints
// These endpoints should only be registered in development environments
type DevHandler struct {
	sampleDataService services.SampleDataServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(sampleDataService services.SampleDataServiceInterface) *DevHandler {
	return &DevHandler{sampleDataService: sampleDataService}
}

// SeedSampleData creates fake expense transactions for the authenticated user
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 25, max: 500)
func (h *DevHandler) SeedSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntParam(c, "count", 0)
	if count > maxSeedCount {
		count = maxSeedCount
	}

	transactions, err := h.sampleDataService.SeedExpenses(userID, count)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Sample data generated",
		Meta:    map[string]int{"transactions_created": len(transactions)},
	})
}
