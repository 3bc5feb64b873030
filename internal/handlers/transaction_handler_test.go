package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetflow/internal/dto"
	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/models"
	"budgetflow/internal/services"
	"budgetflow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionHandlerSuite defines the test suite for TransactionHandler
type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	incomeService      *service_mocks.MockIncomeServiceInterface
	handler            *TransactionHandler
	echo               *echo.Echo
	userID             uuid.UUID
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.incomeService = service_mocks.NewMockIncomeServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.transactionService, s.incomeService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *TransactionHandlerSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *TransactionHandlerSuite) TestCreateIncome() {
	income := &models.Transaction{
		ID:              uuid.New(),
		UserID:          s.userID,
		Description:     "Monthly salary",
		Amount:          decimal.RequireFromString("5000.00"),
		TransactionType: models.TransactionTypeIncome,
	}
	s.incomeService.EXPECT().
		CreateIncome(s.userID, gomock.Any()).
		Return(&dto.IncomeResponse{IncomeTransaction: income}, nil)

	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions/income",
		`{"description":"Monthly salary","amount":"5000.00","date":"2026-08-01","distribution":{"needs_percent":"50","wants_percent":"30","savings_percent":"20"}}`)

	s.Require().NoError(s.handler.CreateIncome(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.IncomeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(income.ID, response.IncomeTransaction.ID)
}

func (s *TransactionHandlerSuite) TestCreateIncome_MissingDescription() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions/income",
		`{"amount":"5000.00","date":"2026-08-01"}`)

	s.Require().NoError(s.handler.CreateIncome(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationGeneral), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestCreateIncome_MissingDistributionRejected() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions/income",
		`{"description":"Monthly salary","amount":"5000.00","date":"2026-08-01"}`)

	s.Require().NoError(s.handler.CreateIncome(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationGeneral), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestCreateIncome_InvalidSplitRejected() {
	s.incomeService.EXPECT().
		CreateIncome(s.userID, gomock.Any()).
		Return(nil, services.NewValidationError("distribution percentages must sum to 100"))

	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions/income",
		`{"description":"Monthly salary","amount":"5000.00","date":"2026-08-01","distribution":{"needs_percent":"60","wants_percent":"30","savings_percent":"20"}}`)

	s.Require().NoError(s.handler.CreateIncome(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationGeneral), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestUpdateTransaction_DistributionChildLocked() {
	transactionID := uuid.New()
	s.transactionService.EXPECT().
		UpdateTransaction(transactionID, s.userID, gomock.Any()).
		Return(nil, services.ErrDistributionLocked)

	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+transactionID.String(),
		`{"description":"tampered"}`)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.UpdateTransaction(c))
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal(string(apperrors.DistributionLocked), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestUpdateTransaction_IncomeReturnsDistributionSet() {
	transactionID := uuid.New()
	income := &models.Transaction{ID: transactionID, TransactionType: models.TransactionTypeIncome}
	s.transactionService.EXPECT().
		UpdateTransaction(transactionID, s.userID, gomock.Any()).
		Return(&dto.UpdateTransactionResult{
			Income: &dto.IncomeResponse{IncomeTransaction: income},
		}, nil)

	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+transactionID.String(),
		`{"amount":"6000.00"}`)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.UpdateTransaction(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.IncomeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(transactionID, response.IncomeTransaction.ID)
}

func (s *TransactionHandlerSuite) TestGetTransaction_MalformedID() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.Require().NoError(s.handler.GetTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.TransactionInvalidID), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestGetTransaction_ForeignOwner() {
	transactionID := uuid.New()
	s.transactionService.EXPECT().
		GetTransaction(transactionID, s.userID).
		Return(nil, services.ErrNotOwner)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/"+transactionID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.GetTransaction(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apperrors.AuthNotResourceOwner), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestDeleteTransaction_NotFound() {
	transactionID := uuid.New()
	s.transactionService.EXPECT().
		DeleteTransaction(transactionID, s.userID).
		Return(services.ErrTransactionNotFound)

	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+transactionID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.Require().NoError(s.handler.DeleteTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apperrors.TransactionNotFound), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestListTransactions_AppliesPaginationDefaults() {
	s.transactionService.EXPECT().
		ListTransactions(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
			s.Equal(0, filters.Offset)
			s.Equal(defaultPageLimit, filters.Limit)
			s.False(filters.IncludeChildren)
			return []models.Transaction{}, 0, nil
		})

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "")

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestListTransactions_CapsLimit() {
	s.transactionService.EXPECT().
		ListTransactions(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
			s.Equal(maxPageLimit, filters.Limit)
			s.True(filters.IncludeChildren)
			return []models.Transaction{}, 0, nil
		})

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?limit=500&include_children=true", "")

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestListTransactions_InvalidTypeRejected() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=loan", "")

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationGeneral), s.errorCode(rec))
}

func (s *TransactionHandlerSuite) TestCreateIncome_MissingUserContext() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/income",
		strings.NewReader(`{"description":"Salary","amount":"100.00","date":"2026-08-01"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.CreateIncome(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apperrors.AuthMissingToken), s.errorCode(rec))
}
