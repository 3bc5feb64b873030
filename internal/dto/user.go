package dto

import "github.com/shopspring/decimal"

// UpdateBudgetRequest replaces the user's stored budget split.
type UpdateBudgetRequest struct {
	NeedsPercent   decimal.Decimal `json:"needs_percent" validate:"required,budget_percentage"`
	WantsPercent   decimal.Decimal `json:"wants_percent" validate:"required,budget_percentage"`
	SavingsPercent decimal.Decimal `json:"savings_percent" validate:"required,budget_percentage"`
}

// BudgetResponse reports the user's current budget split.
type BudgetResponse struct {
	NeedsPercent   decimal.Decimal `json:"needs_percent"`
	WantsPercent   decimal.Decimal `json:"wants_percent"`
	SavingsPercent decimal.Decimal `json:"savings_percent"`
}
