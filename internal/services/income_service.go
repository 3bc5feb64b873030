package services

import (
	"fmt"
	"log/slog"
	"time"

	"budgetflow/internal/dto"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type incomeService struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	categoryResolver CategoryResolverInterface
	metrics          MetricsRecorderInterface
	logger           *slog.Logger
}

// NewIncomeService creates the income distribution engine.
func NewIncomeService(
	transactionRepo repositories.TransactionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	categoryResolver CategoryResolverInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) IncomeServiceInterface {
	return &incomeService{
		transactionRepo:  transactionRepo,
		userRepo:         userRepo,
		categoryResolver: categoryResolver,
		metrics:          metrics,
		logger:           logger,
	}
}

// CreateIncome creates an income transaction and its three distribution
// children in one pass. The writes are sequential, not transactional; the
// income row's distribution state records how far the pass got so a later
// update can finish the job.
func (s *incomeService) CreateIncome(userID uuid.UUID, req *dto.CreateIncomeRequest) (*dto.IncomeResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("income amount must be greater than 0")
	}

	if req.Distribution == nil {
		return nil, NewValidationError("distribution split is required")
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, NewValidationError("date must be in YYYY-MM-DD or RFC3339 format")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	percentages, err := s.effectivePercentages(user, req.Distribution)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryResolver.Resolve(userID, parseOptionalUUID(req.CategoryID), models.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}

	income := &models.Transaction{
		UserID:            userID,
		Description:       req.Description,
		Amount:            req.Amount,
		CategoryID:        category.ID,
		TransactionType:   models.TransactionTypeIncome,
		Date:              date,
		Currency:          req.Currency,
		Notes:             req.Notes,
		Tag:               req.Tag,
		Source:            models.TransactionSourceManual,
		DistributionState: models.DistributionStatePending,
	}

	if err := s.transactionRepo.Create(income); err != nil {
		return nil, fmt.Errorf("failed to create income transaction: %w", err)
	}

	response := &dto.IncomeResponse{IncomeTransaction: income}
	allocation := Allocate(income.Amount, percentages)

	for _, bucketType := range models.BucketTypes() {
		child, err := s.createChild(income, bucketType, allocation.ForBucket(bucketType))
		if err != nil {
			s.markPartial(income)
			return nil, fmt.Errorf("failed to create %s distribution: %w", bucketType, err)
		}
		income.SetChildID(bucketType, child.ID)
		response.DistributedTransactions.Set(bucketType, child)
	}

	income.RefreshDistributionState()
	if err := s.transactionRepo.Update(income); err != nil {
		return nil, fmt.Errorf("failed to link distribution transactions: %w", err)
	}

	if err := s.syncPreferences(user, percentages); err != nil {
		return nil, err
	}

	s.metrics.IncomeCreated()
	s.logger.Info("income distributed",
		"user_id", userID,
		"transaction_id", income.ID,
		"amount", income.Amount,
		"state", income.DistributionState)

	return response, nil
}

// UpdateIncome applies a partial update to an income transaction and brings
// its distribution children back in line: amounts are recomputed from the
// effective percentages, descriptions and dates follow the parent, and any
// child missing from storage is recreated.
func (s *incomeService) UpdateIncome(transactionID, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.IncomeResponse, error) {
	income, err := s.transactionRepo.GetByIDAndUser(transactionID, userID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if !income.IsIncome() {
		return nil, ErrTransactionNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	percentages, err := s.effectivePercentages(user, req.Distribution)
	if err != nil {
		return nil, err
	}

	if err := s.applyScalarFields(income, req); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(income); err != nil {
		return nil, fmt.Errorf("failed to update income transaction: %w", err)
	}

	response := &dto.IncomeResponse{IncomeTransaction: income}
	allocation := Allocate(income.Amount, percentages)

	for _, bucketType := range models.BucketTypes() {
		child, err := s.reconcileChild(income, bucketType, allocation.ForBucket(bucketType))
		if err != nil {
			s.markPartial(income)
			return nil, fmt.Errorf("failed to reconcile %s distribution: %w", bucketType, err)
		}
		income.SetChildID(bucketType, child.ID)
		response.DistributedTransactions.Set(bucketType, child)
	}

	income.RefreshDistributionState()
	if err := s.transactionRepo.Update(income); err != nil {
		return nil, fmt.Errorf("failed to link distribution transactions: %w", err)
	}

	if req.Distribution != nil {
		if err := s.syncPreferences(user, percentages); err != nil {
			return nil, err
		}
	}

	s.metrics.IncomeUpdated()
	s.logger.Info("income redistributed",
		"user_id", userID,
		"transaction_id", income.ID,
		"amount", income.Amount,
		"state", income.DistributionState)

	return response, nil
}

// DeleteIncome removes an income transaction and all of its distribution
// children. Children are deleted first so an interruption leaves an income
// row whose dangling references the delete tolerates on retry.
func (s *incomeService) DeleteIncome(transactionID, userID uuid.UUID) error {
	income, err := s.transactionRepo.GetByIDAndUser(transactionID, userID)
	if err != nil {
		return ErrTransactionNotFound
	}
	if !income.IsIncome() {
		return ErrTransactionNotFound
	}

	childIDs := income.ChildIDs()

	// Sweep for children that exist in storage but were never linked back,
	// which happens when a create or update pass was interrupted.
	children, err := s.transactionRepo.GetChildren(income.ID)
	if err != nil {
		return fmt.Errorf("failed to load distribution transactions: %w", err)
	}
	linked := make(map[uuid.UUID]bool, len(childIDs))
	for _, id := range childIDs {
		linked[id] = true
	}
	for _, child := range children {
		if !linked[child.ID] {
			childIDs = append(childIDs, child.ID)
		}
	}

	if err := s.transactionRepo.DeleteByIDs(childIDs); err != nil {
		return fmt.Errorf("failed to delete distribution transactions: %w", err)
	}

	if err := s.transactionRepo.Delete(income.ID); err != nil {
		return fmt.Errorf("failed to delete income transaction: %w", err)
	}

	s.metrics.IncomeDeleted()
	s.logger.Info("income deleted",
		"user_id", userID,
		"transaction_id", income.ID,
		"children_deleted", len(childIDs))

	return nil
}

// effectivePercentages picks the explicit split when one was sent, otherwise
// the user's stored preferences. Only updates may omit the split; creates
// require one. Explicit splits are validated; stored ones were validated when
// saved.
func (s *incomeService) effectivePercentages(user *models.User, input *dto.DistributionInput) (Percentages, error) {
	if input == nil {
		return PercentagesFromPreferences(user.BudgetPreferences), nil
	}

	percentages := Percentages{
		Needs:   input.NeedsPercent,
		Wants:   input.WantsPercent,
		Savings: input.SavingsPercent,
	}
	if err := percentages.Validate(); err != nil {
		return Percentages{}, err
	}
	return percentages, nil
}

// syncPreferences persists the applied split as the user's new stored
// preferences when it differs from what is on record.
func (s *incomeService) syncPreferences(user *models.User, percentages Percentages) error {
	prefs := percentages.ToPreferences()
	if user.BudgetPreferences.Equal(prefs) {
		return nil
	}

	if err := s.userRepo.UpdateBudgetPreferences(user.ID, prefs); err != nil {
		return fmt.Errorf("failed to update budget preferences: %w", err)
	}
	user.BudgetPreferences = prefs
	return nil
}

func (s *incomeService) createChild(income *models.Transaction, bucketType string, amount decimal.Decimal) (*models.Transaction, error) {
	category, err := s.childCategory(income, bucketType)
	if err != nil {
		return nil, err
	}

	child := &models.Transaction{
		UserID:              income.UserID,
		Description:         childDescription(income.Description, bucketType),
		Amount:              amount,
		CategoryID:          category.ID,
		TransactionType:     bucketType,
		Date:                income.Date,
		Currency:            income.Currency,
		Source:              models.TransactionSourceDistribution,
		IsDistribution:      true,
		IsEditable:          false,
		ParentTransactionID: &income.ID,
	}

	if err := s.transactionRepo.Create(child); err != nil {
		return nil, err
	}
	return child, nil
}

// reconcileChild updates the referenced child to match the parent, or
// recreates it when the reference is absent or points at a row that no
// longer exists.
func (s *incomeService) reconcileChild(income *models.Transaction, bucketType string, amount decimal.Decimal) (*models.Transaction, error) {
	childID := income.ChildID(bucketType)
	if childID == nil {
		s.metrics.DistributionRepaired(bucketType)
		return s.createChild(income, bucketType, amount)
	}

	child, err := s.transactionRepo.GetByID(*childID)
	if err != nil {
		s.logger.Warn("distribution child missing, recreating",
			"transaction_id", income.ID,
			"bucket", bucketType,
			"child_id", *childID)
		s.metrics.DistributionRepaired(bucketType)
		return s.createChild(income, bucketType, amount)
	}

	child.Description = childDescription(income.Description, bucketType)
	child.Amount = amount
	child.Date = income.Date
	child.Currency = income.Currency

	if err := s.transactionRepo.Update(child); err != nil {
		return nil, err
	}
	return child, nil
}

// childCategory resolves the bucket-typed default category for a child,
// falling back to the parent's category when that fails.
func (s *incomeService) childCategory(income *models.Transaction, bucketType string) (*models.Category, error) {
	category, err := s.categoryResolver.Resolve(income.UserID, nil, bucketType)
	if err == nil {
		return category, nil
	}

	s.logger.Warn("bucket category unavailable, using parent category",
		"transaction_id", income.ID,
		"bucket", bucketType,
		"error", err)
	s.metrics.CategoryFallback("parent_inherited")
	return &models.Category{ID: income.CategoryID, UserID: income.UserID, Type: bucketType}, nil
}

// markPartial records an interrupted multi-write on the income row. Best
// effort; the original error is what the caller reports.
func (s *incomeService) markPartial(income *models.Transaction) {
	income.RefreshDistributionState()
	if income.DistributionState == models.DistributionStateDistributed {
		return
	}
	if err := s.transactionRepo.UpdateFields(income.ID, map[string]interface{}{
		"distribution_state":     income.DistributionState,
		"needs_transaction_id":   income.NeedsTransactionID,
		"wants_transaction_id":   income.WantsTransactionID,
		"savings_transaction_id": income.SavingsTransactionID,
	}); err != nil {
		s.logger.Error("failed to record partial distribution state",
			"transaction_id", income.ID,
			"error", err)
	}
}

func (s *incomeService) applyScalarFields(income *models.Transaction, req *dto.UpdateTransactionRequest) error {
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return NewValidationError("income amount must be greater than 0")
		}
		income.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseTransactionDate(*req.Date)
		if err != nil {
			return NewValidationError("date must be in YYYY-MM-DD or RFC3339 format")
		}
		income.Date = date
	}
	if req.Currency != nil {
		income.Currency = *req.Currency
	}
	if req.Notes != nil {
		income.Notes = *req.Notes
	}
	if req.Tag != nil {
		income.Tag = *req.Tag
	}
	if req.CategoryID != nil {
		category, err := s.categoryResolver.Resolve(income.UserID, parseOptionalUUID(*req.CategoryID), models.TransactionTypeIncome)
		if err != nil {
			return err
		}
		income.CategoryID = category.ID
	}
	return nil
}

func childDescription(parentDescription, bucketType string) string {
	return fmt.Sprintf("%s - %s Allocation", parentDescription, models.BucketLabel(bucketType))
}

// parseTransactionDate accepts a plain date or a full RFC3339 timestamp.
func parseTransactionDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseOptionalUUID returns nil for empty or malformed ids. Category
// references that fail to parse fall back to default resolution rather than
// failing the request.
func parseOptionalUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
