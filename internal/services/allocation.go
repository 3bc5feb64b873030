package services

import (
	"budgetflow/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Percentages is a needs/wants/savings split expressed in percent.
type Percentages struct {
	Needs   decimal.Decimal
	Wants   decimal.Decimal
	Savings decimal.Decimal
}

// PercentagesFromPreferences lifts a user's stored budget split.
func PercentagesFromPreferences(prefs models.BudgetPreferences) Percentages {
	return Percentages{
		Needs:   prefs.NeedsPercent,
		Wants:   prefs.WantsPercent,
		Savings: prefs.SavingsPercent,
	}
}

// ToPreferences converts a split back into the stored representation.
func (p Percentages) ToPreferences() models.BudgetPreferences {
	return models.BudgetPreferences{
		NeedsPercent:   p.Needs,
		WantsPercent:   p.Wants,
		SavingsPercent: p.Savings,
	}
}

// ForBucket returns the percentage for a bucket transaction type.
func (p Percentages) ForBucket(bucketType string) decimal.Decimal {
	switch bucketType {
	case models.TransactionTypeNeeds:
		return p.Needs
	case models.TransactionTypeWants:
		return p.Wants
	case models.TransactionTypeSavings:
		return p.Savings
	default:
		return decimal.Zero
	}
}

// Validate checks that each percentage is positive and that the three sum to
// 100. The sum may deviate by strictly less than models.PercentageTolerance;
// a deviation of exactly 0.01 is rejected.
func (p Percentages) Validate() error {
	for _, pct := range []decimal.Decimal{p.Needs, p.Wants, p.Savings} {
		if pct.LessThanOrEqual(decimal.Zero) {
			return NewValidationError("distribution percentages for needs, wants and savings must each be greater than 0")
		}
	}

	sum := p.Needs.Add(p.Wants).Add(p.Savings)
	if sum.Sub(oneHundred).Abs().GreaterThanOrEqual(models.PercentageTolerance) {
		return NewValidationError("distribution percentages must sum to 100, got %s", sum.String())
	}

	return nil
}

// Allocation is the amount split resulting from applying Percentages to an
// income amount.
type Allocation struct {
	Needs   decimal.Decimal
	Wants   decimal.Decimal
	Savings decimal.Decimal
}

// ForBucket returns the allocated amount for a bucket transaction type.
func (a Allocation) ForBucket(bucketType string) decimal.Decimal {
	switch bucketType {
	case models.TransactionTypeNeeds:
		return a.Needs
	case models.TransactionTypeWants:
		return a.Wants
	case models.TransactionTypeSavings:
		return a.Savings
	default:
		return decimal.Zero
	}
}

// Allocate computes the three bucket amounts as amount * pct / 100. No
// rounding is applied; fractional currency units are preserved until
// presentation. Percentages are assumed pre-validated by the caller.
func Allocate(amount decimal.Decimal, pct Percentages) Allocation {
	return Allocation{
		Needs:   amount.Mul(pct.Needs).Div(oneHundred),
		Wants:   amount.Mul(pct.Wants).Div(oneHundred),
		Savings: amount.Mul(pct.Savings).Div(oneHundred),
	}
}
