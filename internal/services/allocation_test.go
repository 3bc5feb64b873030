package services

import (
	"testing"

	"budgetflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(needs, wants, savings string) Percentages {
	return Percentages{
		Needs:   decimal.RequireFromString(needs),
		Wants:   decimal.RequireFromString(wants),
		Savings: decimal.RequireFromString(savings),
	}
}

func TestAllocate_SumEqualsOriginalAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		split  Percentages
	}{
		{"default split", "5000.00", pct("50", "30", "20")},
		{"uneven split", "1000.00", pct("33.33", "33.33", "33.34")},
		{"small amount", "0.03", pct("50", "30", "20")},
		{"large amount", "999999.99", pct("70", "20", "10")},
		{"fractional percentages", "250.55", pct("12.5", "37.5", "50")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			allocation := Allocate(amount, tc.split)

			sum := allocation.Needs.Add(allocation.Wants).Add(allocation.Savings)
			assert.True(t, sum.Equal(amount),
				"allocated %s + %s + %s = %s, want %s",
				allocation.Needs, allocation.Wants, allocation.Savings, sum, amount)
		})
	}
}

func TestAllocate_ExactPercentageApplication(t *testing.T) {
	allocation := Allocate(decimal.RequireFromString("1000"), pct("33.33", "33.33", "33.34"))

	assert.True(t, allocation.Needs.Equal(decimal.RequireFromString("333.3")), "needs = %s", allocation.Needs)
	assert.True(t, allocation.Wants.Equal(decimal.RequireFromString("333.3")), "wants = %s", allocation.Wants)
	assert.True(t, allocation.Savings.Equal(decimal.RequireFromString("333.4")), "savings = %s", allocation.Savings)
}

func TestAllocate_NoRoundingLoss(t *testing.T) {
	// 100 / 3 is not representable in two decimal places; the calculator
	// keeps the full precision instead of rounding each bucket.
	amount := decimal.RequireFromString("100")
	allocation := Allocate(amount, pct("33.33", "33.33", "33.34"))

	sum := allocation.Needs.Add(allocation.Wants).Add(allocation.Savings)
	require.True(t, sum.Equal(amount))
}

func TestPercentagesValidate_AcceptsExactHundred(t *testing.T) {
	assert.NoError(t, pct("50", "30", "20").Validate())
	assert.NoError(t, pct("33.33", "33.33", "33.34").Validate())
}

func TestPercentagesValidate_ToleranceBoundary(t *testing.T) {
	// Sums of 99.995 and 100.005 deviate by less than 0.01 and are accepted.
	assert.NoError(t, pct("50", "30", "19.995").Validate())
	assert.NoError(t, pct("50", "30", "20.005").Validate())

	// A deviation of exactly 0.01 is rejected in both directions.
	err := pct("50", "30", "19.99").Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	err = pct("50", "30", "20.01").Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// So is anything further out.
	err = pct("33.33", "33.33", "33.32").Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestPercentagesValidate_RejectsNonPositive(t *testing.T) {
	assert.Error(t, pct("0", "50", "50").Validate())
	assert.Error(t, pct("-10", "60", "50").Validate())
	assert.Error(t, pct("100", "0", "0").Validate())
}

func TestPercentagesRoundTripWithPreferences(t *testing.T) {
	original := models.BudgetPreferences{
		NeedsPercent:   decimal.RequireFromString("60"),
		WantsPercent:   decimal.RequireFromString("25"),
		SavingsPercent: decimal.RequireFromString("15"),
	}

	converted := PercentagesFromPreferences(original).ToPreferences()
	assert.True(t, original.Equal(converted))
}

func TestAllocationForBucket(t *testing.T) {
	allocation := Allocate(decimal.RequireFromString("100"), pct("50", "30", "20"))

	assert.True(t, allocation.ForBucket(models.TransactionTypeNeeds).Equal(decimal.RequireFromString("50")))
	assert.True(t, allocation.ForBucket(models.TransactionTypeWants).Equal(decimal.RequireFromString("30")))
	assert.True(t, allocation.ForBucket(models.TransactionTypeSavings).Equal(decimal.RequireFromString("20")))
	assert.True(t, allocation.ForBucket("bogus").IsZero())
}
