package dto

import "github.com/shopspring/decimal"

// CreateCategoryRequest creates a custom category.
type CreateCategoryRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=100"`
	Type          string           `json:"type" validate:"required,transaction_type"`
	Icon          string           `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color         string           `json:"color,omitempty" validate:"omitempty,hexcolor"`
	BudgetPercent *decimal.Decimal `json:"budget_percent,omitempty"`
	BudgetAmount  *decimal.Decimal `json:"budget_amount,omitempty"`
}

// UpdateCategoryRequest carries a partial category update.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Icon          *string          `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color         *string          `json:"color,omitempty" validate:"omitempty,hexcolor"`
	BudgetPercent *decimal.Decimal `json:"budget_percent,omitempty"`
	BudgetAmount  *decimal.Decimal `json:"budget_amount,omitempty"`
}
