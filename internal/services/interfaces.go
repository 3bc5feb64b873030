package services

import (
	"context"
	"time"

	"budgetflow/internal/dto"
	"budgetflow/internal/models"

	"github.com/google/uuid"
)

// CategoryResolverInterface resolves the category for a new transaction,
// falling back to the owner's default category for the transaction type when
// the requested category is absent or belongs to another user.
type CategoryResolverInterface interface {
	Resolve(userID uuid.UUID, explicitID *uuid.UUID, transactionType string) (*models.Category, error)
}

// IncomeServiceInterface manages income transactions together with their
// distribution children.
type IncomeServiceInterface interface {
	CreateIncome(userID uuid.UUID, req *dto.CreateIncomeRequest) (*dto.IncomeResponse, error)
	UpdateIncome(transactionID, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.IncomeResponse, error)
	DeleteIncome(transactionID, userID uuid.UUID) error
}

// TransactionServiceInterface is the guarded entry point for all transaction
// mutations. Income transactions are delegated to the income service;
// distribution transactions are rejected.
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(transactionID, userID uuid.UUID) (*models.Transaction, error)
	ListTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	UpdateTransaction(transactionID, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.UpdateTransactionResult, error)
	DeleteTransaction(transactionID, userID uuid.UUID) error
}

// UserServiceInterface exposes profile and budget preference operations.
type UserServiceInterface interface {
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateBudgetPreferences(userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.User, error)
}

// CategoryServiceInterface manages user categories.
type CategoryServiceInterface interface {
	CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategories(userID uuid.UUID, categoryType string) ([]models.Category, error)
	UpdateCategory(categoryID, userID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(categoryID, userID uuid.UUID) error
}

// GoogleAuthServiceInterface exchanges Google OAuth authorization codes for
// local users.
type GoogleAuthServiceInterface interface {
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (*models.User, bool, error)
}

// TokenServiceInterface issues and validates API access tokens.
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// SampleDataServiceInterface seeds realistic data for development
// environments.
type SampleDataServiceInterface interface {
	SeedExpenses(userID uuid.UUID, count int) ([]models.Transaction, error)
}
