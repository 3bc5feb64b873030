package services

import (
	"errors"
	"fmt"
	"log/slog"

	"budgetflow/internal/dto"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/google/uuid"
)

type categoryService struct {
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewCategoryService creates the category management service.
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateCategory creates a custom category for the user.
func (s *categoryService) CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		IsCustom: true,
		Icon:     req.Icon,
		Color:    req.Color,
	}
	if req.BudgetPercent != nil {
		category.BudgetPercent = *req.BudgetPercent
	}
	if req.BudgetAmount != nil {
		category.BudgetAmount = *req.BudgetAmount
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetCategories lists the user's categories, optionally filtered by type.
func (s *categoryService) GetCategories(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	if categoryType != "" {
		if !models.IsValidTransactionType(categoryType) {
			return nil, NewValidationError("category type must be one of income, needs, wants or savings")
		}
		return s.categoryRepo.GetByUserAndType(userID, categoryType)
	}
	return s.categoryRepo.GetByUser(userID)
}

// UpdateCategory applies a partial update to a custom category. Default
// categories keep their name so distribution children always have a home.
func (s *categoryService) UpdateCategory(categoryID, userID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDAndUser(categoryID, userID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		if !category.IsCustom {
			return nil, NewValidationError("default categories cannot be renamed")
		}
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.BudgetPercent != nil {
		category.BudgetPercent = *req.BudgetPercent
	}
	if req.BudgetAmount != nil {
		category.BudgetAmount = *req.BudgetAmount
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a custom, unreferenced category.
func (s *categoryService) DeleteCategory(categoryID, userID uuid.UUID) error {
	category, err := s.categoryRepo.GetByIDAndUser(categoryID, userID)
	if err != nil {
		return ErrCategoryNotFound
	}

	if err := s.categoryRepo.Delete(category.ID); err != nil {
		if errors.Is(err, repositories.ErrCategoryDefault) || errors.Is(err, repositories.ErrCategoryInUse) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", "user_id", userID, "category_id", categoryID)
	return nil
}
