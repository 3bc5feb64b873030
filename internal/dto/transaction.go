package dto

import (
	"budgetflow/internal/models"

	"github.com/shopspring/decimal"
)

// DistributionInput is the explicit needs/wants/savings percentage split sent
// with an income transaction. Required on create; on update it may be omitted
// to keep applying the user's stored budget preferences.
type DistributionInput struct {
	NeedsPercent   decimal.Decimal `json:"needs_percent" validate:"required,budget_percentage"`
	WantsPercent   decimal.Decimal `json:"wants_percent" validate:"required,budget_percentage"`
	SavingsPercent decimal.Decimal `json:"savings_percent" validate:"required,budget_percentage"`
}

// CreateIncomeRequest creates an income transaction and its three
// distribution children.
type CreateIncomeRequest struct {
	Description  string             `json:"description" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal    `json:"amount" validate:"required"`
	Date         string             `json:"date" validate:"required"`
	CategoryID   string             `json:"category_id,omitempty"`
	Currency     string             `json:"currency,omitempty" validate:"omitempty,currency_code"`
	Notes        string             `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Tag          string             `json:"tag,omitempty" validate:"omitempty,max=50"`
	Distribution *DistributionInput `json:"distribution" validate:"required"`
}

// CreateTransactionRequest creates a regular (non-income) transaction.
// Source defaults to manual; "distribution" is reserved for engine-created
// children and is rejected.
type CreateTransactionRequest struct {
	Description     string          `json:"description" validate:"required,min=1,max=255"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	TransactionType string          `json:"transaction_type" validate:"required,transaction_type"`
	Date            string          `json:"date" validate:"required"`
	CategoryID      string          `json:"category_id,omitempty"`
	Currency        string          `json:"currency,omitempty" validate:"omitempty,currency_code"`
	Notes           string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Tag             string          `json:"tag,omitempty" validate:"omitempty,max=50"`
	Source          string          `json:"source,omitempty" validate:"omitempty,transaction_source"`
}

// UpdateTransactionRequest carries a partial update. Nil fields are left
// untouched. Distribution is only honored for income transactions.
type UpdateTransactionRequest struct {
	Description  *string            `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Amount       *decimal.Decimal   `json:"amount,omitempty"`
	Date         *string            `json:"date,omitempty"`
	CategoryID   *string            `json:"category_id,omitempty"`
	Currency     *string            `json:"currency,omitempty" validate:"omitempty,currency_code"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Tag          *string            `json:"tag,omitempty" validate:"omitempty,max=50"`
	Distribution *DistributionInput `json:"distribution,omitempty"`
}

// DistributedTransactions groups the three child transactions of an income.
type DistributedTransactions struct {
	Needs   *models.Transaction `json:"needs,omitempty"`
	Wants   *models.Transaction `json:"wants,omitempty"`
	Savings *models.Transaction `json:"savings,omitempty"`
}

// Set stores a child under its bucket type.
func (d *DistributedTransactions) Set(bucketType string, tx *models.Transaction) {
	switch bucketType {
	case models.TransactionTypeNeeds:
		d.Needs = tx
	case models.TransactionTypeWants:
		d.Wants = tx
	case models.TransactionTypeSavings:
		d.Savings = tx
	}
}

// IncomeResponse is the result of creating or updating an income transaction.
type IncomeResponse struct {
	IncomeTransaction       *models.Transaction     `json:"income_transaction"`
	DistributedTransactions DistributedTransactions `json:"distributed_transactions"`
}

// UpdateTransactionResult is the outcome of a guarded update. Exactly one of
// Income or Transaction is set, depending on the transaction's type.
type UpdateTransactionResult struct {
	Income      *IncomeResponse     `json:"income,omitempty"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// TransactionListResponse wraps a filtered transaction page.
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Offset       int                  `json:"offset"`
	Limit        int                  `json:"limit"`
}
