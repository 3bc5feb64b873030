package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeNeeds   = "needs"
	TransactionTypeWants   = "wants"
	TransactionTypeSavings = "savings"

	TransactionSourceManual       = "manual"
	TransactionSourceDistribution = "distribution"
	TransactionSourceImport       = "import"
	TransactionSourceSMS          = "sms"
	TransactionSourceEmail        = "email"

	TransactionStatusActive = "active"
	TransactionStatusVoid   = "void"

	// Distribution lifecycle of an income transaction. An income row moves
	// from pending to distributed once all three child references are set;
	// partial marks an interrupted multi-write that the update engine will
	// repair on the next edit.
	DistributionStateNone        = ""
	DistributionStatePending     = "pending"
	DistributionStateDistributed = "distributed"
	DistributionStatePartial     = "partial"

	DefaultCurrency = "USD"
)

var (
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionSource = errors.New("invalid transaction source")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidAmount            = errors.New("transaction amount must be positive")
	ErrOptimisticLockConflict   = errors.New("optimistic lock conflict: version mismatch")
)

// Transaction is a single money movement. Income transactions carry forward
// references to their three distribution children; distribution transactions
// carry a back reference to their parent and are never directly editable.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	TransactionType string          `gorm:"type:varchar(20);not null;index" json:"transaction_type"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	Tag             string          `gorm:"type:varchar(50)" json:"tag,omitempty"`
	Source          string          `gorm:"type:varchar(20);not null;default:'manual'" json:"source"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	IsDistribution bool `gorm:"not null;default:false;index" json:"is_distribution"`
	// IsEditable is written explicitly on create so the zero value of a
	// distribution child is never replaced by a column default.
	IsEditable bool `gorm:"not null" json:"is_editable"`

	ParentTransactionID *uuid.UUID `gorm:"type:uuid;index" json:"parent_transaction_id,omitempty"`

	NeedsTransactionID   *uuid.UUID `gorm:"type:uuid" json:"needs_transaction_id,omitempty"`
	WantsTransactionID   *uuid.UUID `gorm:"type:uuid" json:"wants_transaction_id,omitempty"`
	SavingsTransactionID *uuid.UUID `gorm:"type:uuid" json:"savings_transaction_id,omitempty"`

	DistributionState string `gorm:"type:varchar(20);default:''" json:"distribution_state,omitempty"`

	Version   int       `gorm:"default:1" json:"version"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Source == "" {
		t.Source = TransactionSourceManual
	}
	t.IsEditable = !t.IsDistribution
	if t.Status == "" {
		t.Status = TransactionStatusActive
	}
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.UpdatedAt = time.Now()
	t.incrementVersionForOptimisticLocking(tx)
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("transaction owner is required")
	}

	if t.Description == "" {
		return errors.New("transaction description is required")
	}

	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}

	if !IsValidTransactionSource(t.Source) {
		return ErrInvalidTransactionSource
	}

	if !IsValidTransactionStatus(t.Status) {
		return ErrInvalidTransactionStatus
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.IsDistribution {
		if t.ParentTransactionID == nil {
			return errors.New("distribution transaction requires a parent transaction")
		}
		if t.IsEditable {
			return errors.New("distribution transaction cannot be editable")
		}
		if t.TransactionType == TransactionTypeIncome {
			return errors.New("distribution transaction cannot be of income type")
		}
	}

	return nil
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.TransactionType == TransactionTypeIncome
}

// ChildID returns the distribution child reference for a bucket type.
func (t *Transaction) ChildID(bucketType string) *uuid.UUID {
	switch bucketType {
	case TransactionTypeNeeds:
		return t.NeedsTransactionID
	case TransactionTypeWants:
		return t.WantsTransactionID
	case TransactionTypeSavings:
		return t.SavingsTransactionID
	default:
		return nil
	}
}

// SetChildID records a distribution child reference for a bucket type.
func (t *Transaction) SetChildID(bucketType string, id uuid.UUID) {
	switch bucketType {
	case TransactionTypeNeeds:
		t.NeedsTransactionID = &id
	case TransactionTypeWants:
		t.WantsTransactionID = &id
	case TransactionTypeSavings:
		t.SavingsTransactionID = &id
	}
}

// ChildIDs returns the set of distribution child ids, skipping absent ones.
func (t *Transaction) ChildIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 3)
	for _, ref := range []*uuid.UUID{t.NeedsTransactionID, t.WantsTransactionID, t.SavingsTransactionID} {
		if ref != nil {
			ids = append(ids, *ref)
		}
	}
	return ids
}

// HasAllChildren reports whether all three distribution references are set.
func (t *Transaction) HasAllChildren() bool {
	return t.NeedsTransactionID != nil && t.WantsTransactionID != nil && t.SavingsTransactionID != nil
}

// RefreshDistributionState recomputes the distribution state from the child
// references currently present on the transaction.
func (t *Transaction) RefreshDistributionState() {
	if !t.IsIncome() {
		t.DistributionState = DistributionStateNone
		return
	}

	switch len(t.ChildIDs()) {
	case 3:
		t.DistributionState = DistributionStateDistributed
	case 0:
		t.DistributionState = DistributionStatePending
	default:
		t.DistributionState = DistributionStatePartial
	}
}

// IncrementVersion increments the version for optimistic locking
func (t *Transaction) IncrementVersion() {
	t.Version++
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// BucketTypes lists the three allocation bucket types in canonical order.
func BucketTypes() []string {
	return []string{TransactionTypeNeeds, TransactionTypeWants, TransactionTypeSavings}
}

// BucketLabel returns the human-readable allocation label for a bucket type,
// used in generated child descriptions.
func BucketLabel(bucketType string) string {
	switch bucketType {
	case TransactionTypeNeeds:
		return "Needs"
	case TransactionTypeWants:
		return "Wants"
	case TransactionTypeSavings:
		return "Savings"
	default:
		return ""
	}
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeNeeds, TransactionTypeWants, TransactionTypeSavings:
		return true
	default:
		return false
	}
}

// IsValidTransactionSource checks if the transaction source is valid
func IsValidTransactionSource(source string) bool {
	switch source {
	case TransactionSourceManual, TransactionSourceDistribution, TransactionSourceImport,
		TransactionSourceSMS, TransactionSourceEmail:
		return true
	default:
		return false
	}
}

// IsValidTransactionStatus checks if the transaction status is valid
func IsValidTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusActive, TransactionStatusVoid:
		return true
	default:
		return false
	}
}

func (t *Transaction) incrementVersionForOptimisticLocking(tx *gorm.DB) {
	if tx != nil && tx.Statement != nil {
		tx.Statement.SetColumn("version", t.Version+1)
	}
}
