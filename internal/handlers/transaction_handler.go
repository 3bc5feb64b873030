package handlers

import (
	"fmt"
	"net/http"
	"time"

	"budgetflow/internal/dto"
	"budgetflow/internal/errors"
	"budgetflow/internal/models"
	"budgetflow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	incomeService      services.IncomeServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	incomeService services.IncomeServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		incomeService:      incomeService,
	}
}

// CreateIncome creates an income transaction and its distribution children
// @Summary Create income
// @Description Create an income transaction; it is automatically split into needs, wants and savings distribution transactions
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse "Income with distribution transactions"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payload or distribution split"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/income [post]
func (h *TransactionHandler) CreateIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	req := &dto.CreateIncomeRequest{}
	if err := c.Bind(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	response, err := h.incomeService.CreateIncome(userID, req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, response)
}

// CreateTransaction creates a regular expense transaction
// @Summary Create transaction
// @Description Create a needs, wants or savings transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payload"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	req := &dto.CreateTransactionRequest{}
	if err := c.Bind(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, transaction)
}

// ListTransactions retrieves filtered transaction history
// @Summary List transactions
// @Description Retrieve the user's transactions with optional filters. Distribution children are excluded unless include_children=true
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by transaction type" Enums(income, needs, wants, savings)
// @Param source query string false "Filter by source" Enums(manual, distribution, import, sms, email)
// @Param category_id query string false "Filter by category ID (UUID)"
// @Param start_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param end_date query string false "Filter by end date (YYYY-MM-DD)"
// @Param tag query string false "Filter by tag"
// @Param include_children query bool false "Include distribution transactions"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Number of results per page (max 100)" default(20)
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid filter parameters"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transactions, total, err := h.transactionService.ListTransactions(userID, filters)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Offset:       filters.Offset,
		Limit:        filters.Limit,
	})
}

// GetTransaction retrieves a single transaction
// @Summary Get transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_003 - Invalid transaction ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_006 - Transaction belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	transaction, err := h.transactionService.GetTransaction(transactionID, userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction applies a partial update to a transaction
// @Summary Update transaction
// @Description Update a transaction. Income updates recompute the distribution children; distribution children themselves are locked
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.UpdateTransactionResult
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_003 - Invalid transaction ID or VALIDATION_001 - Invalid payload"
// @Failure 401 {object} errors.ErrorResponse "AUTH_006 - Transaction belongs to another user"
// @Failure 403 {object} errors.ErrorResponse "DISTRIBUTION_001 - Distribution transactions are locked"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	req := &dto.UpdateTransactionRequest{}
	if err := c.Bind(req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := h.transactionService.UpdateTransaction(transactionID, userID, req)
	if err != nil {
		return sendServiceError(c, err)
	}

	if result.Income != nil {
		return c.JSON(http.StatusOK, result.Income)
	}
	return c.JSON(http.StatusOK, result.Transaction)
}

// DeleteTransaction removes a transaction
// @Summary Delete transaction
// @Description Delete a transaction. Income deletes cascade to the distribution children; distribution children themselves are locked
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_003 - Invalid transaction ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_006 - Transaction belongs to another user"
// @Failure 403 {object} errors.ErrorResponse "DISTRIBUTION_001 - Distribution transactions are locked"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionInvalidID)
	}

	if err := h.transactionService.DeleteTransaction(transactionID, userID); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction deleted"})
}

// parseTransactionFilters parses and validates transaction filter parameters
func parseTransactionFilters(c echo.Context) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		Offset: getIntParam(c, "offset", 0),
		Limit:  getIntParam(c, "limit", defaultPageLimit),
	}

	if filters.Limit > maxPageLimit {
		filters.Limit = maxPageLimit
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultPageLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	if transactionType := c.QueryParam("type"); transactionType != "" {
		if !models.IsValidTransactionType(transactionType) {
			return filters, fmt.Errorf("invalid transaction type: %s", transactionType)
		}
		filters.TransactionType = transactionType
	}

	if source := c.QueryParam("source"); source != "" {
		if !models.IsValidTransactionSource(source) {
			return filters, fmt.Errorf("invalid transaction source: %s", source)
		}
		filters.Source = source
	}

	if categoryIDStr := c.QueryParam("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			return filters, fmt.Errorf("invalid category ID")
		}
		filters.CategoryID = categoryID
	}

	if startDateStr := c.QueryParam("start_date"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid start_date, expected YYYY-MM-DD")
		}
		filters.StartDate = &startDate
	}

	if endDateStr := c.QueryParam("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid end_date, expected YYYY-MM-DD")
		}
		endOfDay := endDate.Add(24*time.Hour - time.Nanosecond)
		filters.EndDate = &endOfDay
	}

	filters.Tag = c.QueryParam("tag")
	filters.IncludeChildren = c.QueryParam("include_children") == "true"

	return filters, nil
}
