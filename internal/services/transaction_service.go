package services

import (
	"fmt"
	"log/slog"

	"budgetflow/internal/dto"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionService struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	categoryResolver CategoryResolverInterface
	incomeService    IncomeServiceInterface
	logger           *slog.Logger
}

// NewTransactionService creates the guarded transaction service. All
// mutations pass through its ownership and distribution checks before any
// write happens.
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryResolver CategoryResolverInterface,
	incomeService IncomeServiceInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &transactionService{
		transactionRepo:  transactionRepo,
		categoryResolver: categoryResolver,
		incomeService:    incomeService,
		logger:           logger,
	}
}

// CreateTransaction creates a regular expense or savings transaction. Income
// must go through the income service so it gets distributed.
func (s *transactionService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.TransactionType == models.TransactionTypeIncome {
		return nil, NewValidationError("income transactions must be created through the income endpoint")
	}
	if !models.IsValidTransactionType(req.TransactionType) {
		return nil, NewValidationError("transaction type must be one of needs, wants or savings")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("transaction amount must be greater than 0")
	}

	source := models.TransactionSourceManual
	if req.Source != "" {
		if req.Source == models.TransactionSourceDistribution {
			return nil, NewValidationError("distribution transactions are created by the income engine and cannot be created directly")
		}
		if !models.IsValidTransactionSource(req.Source) {
			return nil, NewValidationError("transaction source must be one of manual, import, sms or email")
		}
		source = req.Source
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, NewValidationError("date must be in YYYY-MM-DD or RFC3339 format")
	}

	category, err := s.categoryResolver.Resolve(userID, parseOptionalUUID(req.CategoryID), req.TransactionType)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:          userID,
		Description:     req.Description,
		Amount:          req.Amount,
		CategoryID:      category.ID,
		TransactionType: req.TransactionType,
		Date:            date,
		Currency:        req.Currency,
		Notes:           req.Notes,
		Tag:             req.Tag,
		Source:          source,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// GetTransaction loads a single transaction, distinguishing a missing row
// from one owned by another user.
func (s *transactionService) GetTransaction(transactionID, userID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if transaction.UserID != userID {
		return nil, ErrNotOwner
	}
	return transaction, nil
}

// ListTransactions returns a filtered page scoped to the requesting user.
func (s *transactionService) ListTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	filters.UserID = userID
	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

// UpdateTransaction guards and dispatches an update. Distribution children
// are locked; income updates cascade through the income service; everything
// else is a plain field update.
func (s *transactionService) UpdateTransaction(transactionID, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.UpdateTransactionResult, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if transaction.UserID != userID {
		return nil, ErrNotOwner
	}
	if transaction.IsDistribution || !transaction.IsEditable {
		return nil, ErrDistributionLocked
	}

	if transaction.IsIncome() {
		income, err := s.incomeService.UpdateIncome(transactionID, userID, req)
		if err != nil {
			return nil, err
		}
		return &dto.UpdateTransactionResult{Income: income}, nil
	}

	if err := s.applyUpdate(transaction, req); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &dto.UpdateTransactionResult{Transaction: transaction}, nil
}

// DeleteTransaction guards and dispatches a delete. Income deletes cascade
// to the distribution children.
func (s *transactionService) DeleteTransaction(transactionID, userID uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return ErrTransactionNotFound
	}
	if transaction.UserID != userID {
		return ErrNotOwner
	}
	if transaction.IsDistribution || !transaction.IsEditable {
		return ErrDistributionLocked
	}

	if transaction.IsIncome() {
		return s.incomeService.DeleteIncome(transactionID, userID)
	}

	if err := s.transactionRepo.Delete(transaction.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("transaction deleted",
		"user_id", userID,
		"transaction_id", transaction.ID)
	return nil
}

func (s *transactionService) applyUpdate(transaction *models.Transaction, req *dto.UpdateTransactionRequest) error {
	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return NewValidationError("transaction amount must be greater than 0")
		}
		transaction.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseTransactionDate(*req.Date)
		if err != nil {
			return NewValidationError("date must be in YYYY-MM-DD or RFC3339 format")
		}
		transaction.Date = date
	}
	if req.Currency != nil {
		transaction.Currency = *req.Currency
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}
	if req.Tag != nil {
		transaction.Tag = *req.Tag
	}
	if req.CategoryID != nil {
		category, err := s.categoryResolver.Resolve(transaction.UserID, parseOptionalUUID(*req.CategoryID), transaction.TransactionType)
		if err != nil {
			return err
		}
		transaction.CategoryID = category.ID
	}
	return nil
}
