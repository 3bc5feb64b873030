package repositories

import (
	"errors"
	"fmt"

	"budgetflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by existing transactions")
	ErrCategoryDefault  = errors.New("default categories cannot be deleted")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByIDAndUser retrieves a category by ID scoped to its owner
func (r *categoryRepository) GetByIDAndUser(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category for user: %w", err)
	}
	return &category, nil
}

// GetByUserAndType retrieves all categories of a type for a user
func (r *categoryRepository) GetByUserAndType(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ? AND type = ?", userID, categoryType).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories by type: %w", err)
	}
	return categories, nil
}

// GetByUser retrieves all categories for a user
func (r *categoryRepository) GetByUser(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ?", userID).
		Order("type ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Update saves changes to an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// FindOrCreate resolves a category by (user, name, type), creating it when
// absent. FirstOrCreate plus the unique owner/name/type index makes the
// operation idempotent under concurrent callers.
func (r *categoryRepository) FindOrCreate(category *models.Category) (*models.Category, error) {
	var result models.Category
	err := r.db.Where(models.Category{
		UserID: category.UserID,
		Name:   category.Name,
		Type:   category.Type,
	}).Attrs(models.Category{
		IsCustom: category.IsCustom,
		Icon:     category.Icon,
		Color:    category.Color,
	}).FirstOrCreate(&result).Error
	if err != nil {
		// A concurrent insert can trip the unique index between the lookup
		// and the insert; re-read the winning row.
		var existing models.Category
		lookupErr := r.db.Where("user_id = ? AND name = ? AND type = ?",
			category.UserID, category.Name, category.Type).First(&existing).Error
		if lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to find or create category: %w", err)
	}
	return &result, nil
}

// Delete removes a category. Non-custom defaults and categories still
// referenced by transactions are refused.
func (r *categoryRepository) Delete(id uuid.UUID) error {
	category, err := r.GetByID(id)
	if err != nil {
		return err
	}

	if !category.IsCustom {
		return ErrCategoryDefault
	}

	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
