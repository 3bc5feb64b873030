package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeNeeds   = "needs"
	CategoryTypeWants   = "wants"
	CategoryTypeSavings = "savings"
)

var (
	ErrInvalidCategoryType = errors.New("invalid category type")
)

// Default category names and styling per type, used by the category
// resolver when a transaction references no category.
var defaultCategoryNames = map[string]string{
	CategoryTypeIncome:  "Salary",
	CategoryTypeNeeds:   "Essentials",
	CategoryTypeWants:   "Lifestyle",
	CategoryTypeSavings: "Savings",
}

var defaultCategoryIcons = map[string]string{
	CategoryTypeIncome:  "briefcase",
	CategoryTypeNeeds:   "shopping-cart",
	CategoryTypeWants:   "gift",
	CategoryTypeSavings: "piggy-bank",
}

var defaultCategoryColors = map[string]string{
	CategoryTypeIncome:  "#2E7D32",
	CategoryTypeNeeds:   "#1565C0",
	CategoryTypeWants:   "#EF6C00",
	CategoryTypeSavings: "#6A1B9A",
}

// Category groups a user's transactions. (user_id, name, type) is unique so
// concurrent find-or-create calls converge on a single row.
type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_owner_name_type" json:"user_id"`
	Name     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_owner_name_type" json:"name"`
	Type     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_owner_name_type" json:"type"`
	IsCustom bool      `gorm:"not null;default:false" json:"is_custom"`
	Icon     string    `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Color    string    `gorm:"type:varchar(20)" json:"color,omitempty"`

	BudgetPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"budget_percent"`
	BudgetAmount  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"budget_amount"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("category owner is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if !IsValidCategoryType(c.Type) {
		return ErrInvalidCategoryType
	}

	if c.BudgetPercent.LessThan(decimal.Zero) || c.BudgetPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("budget percent must be between 0 and 100")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeIncome, CategoryTypeNeeds, CategoryTypeWants, CategoryTypeSavings:
		return true
	default:
		return false
	}
}

// DefaultCategory builds the non-custom default category for a user and type.
func DefaultCategory(userID uuid.UUID, categoryType string) *Category {
	return &Category{
		UserID:   userID,
		Name:     DefaultCategoryName(categoryType),
		Type:     categoryType,
		IsCustom: false,
		Icon:     defaultCategoryIcons[categoryType],
		Color:    defaultCategoryColors[categoryType],
	}
}

// DefaultCategoryName returns the canonical default category name for a type,
// e.g. "Salary" for income.
func DefaultCategoryName(categoryType string) string {
	if name, ok := defaultCategoryNames[categoryType]; ok {
		return name
	}
	return "General"
}
