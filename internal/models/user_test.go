package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefs(needs, wants, savings string) BudgetPreferences {
	return BudgetPreferences{
		NeedsPercent:   decimal.RequireFromString(needs),
		WantsPercent:   decimal.RequireFromString(wants),
		SavingsPercent: decimal.RequireFromString(savings),
	}
}

func TestBudgetPreferences_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prefs   BudgetPreferences
		wantErr bool
	}{
		{"default split", DefaultBudgetPreferences(), false},
		{"custom split", prefs("70", "20", "10"), false},
		{"sum just under within tolerance", prefs("50", "30", "19.995"), false},
		{"sum just over within tolerance", prefs("50", "30", "20.005"), false},
		{"sum under by exactly the tolerance", prefs("50", "30", "19.99"), true},
		{"sum over by exactly the tolerance", prefs("50", "30", "20.01"), true},
		{"sum well outside tolerance", prefs("33.34", "33.34", "33.34"), true},
		{"zero percentage", prefs("0", "50", "50"), true},
		{"negative percentage", prefs("-10", "60", "50"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBudgetPreferences_Equal(t *testing.T) {
	assert.True(t, prefs("50", "30", "20").Equal(prefs("50.00", "30.00", "20.00")))
	assert.False(t, prefs("50", "30", "20").Equal(prefs("60", "20", "20")))
}

func TestUser_Validate(t *testing.T) {
	user := &User{
		GoogleID:          "google-1",
		Email:             "valid@example.com",
		FirstName:         "Valid",
		BudgetPreferences: DefaultBudgetPreferences(),
	}
	require.NoError(t, user.Validate())

	invalid := *user
	invalid.Email = "not-an-email"
	assert.Error(t, invalid.Validate())

	invalid = *user
	invalid.GoogleID = ""
	assert.Error(t, invalid.Validate())

	invalid = *user
	invalid.FirstName = ""
	assert.Error(t, invalid.Validate())

	invalid = *user
	invalid.BudgetPreferences = prefs("90", "20", "20")
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidBudgetSplit)
}

func TestUser_FullName(t *testing.T) {
	user := &User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", user.FullName())

	user.LastName = ""
	assert.Equal(t, "Ada", user.FullName())
}
