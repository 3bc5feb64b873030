package repositories

import (
	"budgetflow/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateBudgetPreferences(userID uuid.UUID, prefs models.BudgetPreferences) error
	UpdateLastLogin(userID uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByIDAndUser(id, userID uuid.UUID) (*models.Category, error)
	GetByUserAndType(userID uuid.UUID, categoryType string) ([]models.Category, error)
	GetByUser(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	// FindOrCreate resolves a category by (user, name, type), creating it when
	// absent. Concurrent callers converge on the same row through the unique
	// owner/name/type index.
	FindOrCreate(category *models.Category) (*models.Category, error)
	Delete(id uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByIDAndUser(id, userID uuid.UUID) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	DeleteByIDs(ids []uuid.UUID) error
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetChildren(parentID uuid.UUID) ([]models.Transaction, error)
	CountByCategoryID(categoryID uuid.UUID) (int64, error)
}
