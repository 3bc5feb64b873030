package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// PercentageTolerance bounds how far budget percentages may drift from
	// summing to 100. The bound is exclusive: a deviation of exactly 0.01
	// is rejected.
	PercentageTolerance = decimal.NewFromFloat(0.01)

	oneHundred = decimal.NewFromInt(100)

	ErrInvalidBudgetSplit = errors.New("budget percentages must sum to 100")
)

// BudgetPreferences holds a user's default income split. The three
// percentages must sum to 100; see PercentageTolerance.
type BudgetPreferences struct {
	NeedsPercent   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:50" json:"needs_percent"`
	WantsPercent   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:30" json:"wants_percent"`
	SavingsPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20" json:"savings_percent"`
}

// DefaultBudgetPreferences returns the 50/30/20 split applied to new users.
func DefaultBudgetPreferences() BudgetPreferences {
	return BudgetPreferences{
		NeedsPercent:   decimal.NewFromInt(50),
		WantsPercent:   decimal.NewFromInt(30),
		SavingsPercent: decimal.NewFromInt(20),
	}
}

// Validate checks that each percentage is positive and the three sum to 100,
// deviating by strictly less than PercentageTolerance.
func (p BudgetPreferences) Validate() error {
	for _, pct := range []decimal.Decimal{p.NeedsPercent, p.WantsPercent, p.SavingsPercent} {
		if pct.LessThanOrEqual(decimal.Zero) {
			return errors.New("each budget percentage must be greater than 0")
		}
	}

	sum := p.NeedsPercent.Add(p.WantsPercent).Add(p.SavingsPercent)
	if sum.Sub(oneHundred).Abs().GreaterThanOrEqual(PercentageTolerance) {
		return ErrInvalidBudgetSplit
	}

	return nil
}

// Equal reports whether two preference sets carry the same percentages.
func (p BudgetPreferences) Equal(other BudgetPreferences) bool {
	return p.NeedsPercent.Equal(other.NeedsPercent) &&
		p.WantsPercent.Equal(other.WantsPercent) &&
		p.SavingsPercent.Equal(other.SavingsPercent)
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GoogleID  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url,omitempty"`

	BudgetPreferences BudgetPreferences `gorm:"embedded;embeddedPrefix:budget_" json:"budget_preferences"`

	LastLoginAt *time.Time     `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	if u.BudgetPreferences.NeedsPercent.IsZero() &&
		u.BudgetPreferences.WantsPercent.IsZero() &&
		u.BudgetPreferences.SavingsPercent.IsZero() {
		u.BudgetPreferences = DefaultBudgetPreferences()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty struct; only full model updates are
	// re-validated here.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.GoogleID == "" {
		return errors.New("google ID is required")
	}

	if u.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(u.Email) {
		return fmt.Errorf("invalid email format: %s", u.Email)
	}

	if u.FirstName == "" {
		return errors.New("first name is required")
	}

	return u.BudgetPreferences.Validate()
}

func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) TableName() string {
	return "users"
}
