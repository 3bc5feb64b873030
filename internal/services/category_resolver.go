package services

import (
	"fmt"
	"log/slog"

	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/google/uuid"
)

type categoryResolver struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryResolver creates a category resolver backed by the category
// repository.
func NewCategoryResolver(categoryRepo repositories.CategoryRepositoryInterface, metrics MetricsRecorderInterface, logger *slog.Logger) CategoryResolverInterface {
	return &categoryResolver{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Resolve returns the category a new transaction should use. An explicit id
// is honored only when the category exists and belongs to userID; otherwise
// resolution silently falls back to the user's default category for the
// transaction type, creating it on first use. Transaction creation never
// fails on a bad category reference.
func (s *categoryResolver) Resolve(userID uuid.UUID, explicitID *uuid.UUID, transactionType string) (*models.Category, error) {
	if explicitID != nil {
		category, err := s.categoryRepo.GetByIDAndUser(*explicitID, userID)
		if err == nil {
			return category, nil
		}

		s.logger.Warn("explicit category rejected, falling back to default",
			"user_id", userID,
			"category_id", *explicitID,
			"transaction_type", transactionType,
			"error", err)
		s.metrics.CategoryFallback("explicit_rejected")
	}

	defaultCategory := models.DefaultCategory(userID, transactionType)
	category, err := s.categoryRepo.FindOrCreate(defaultCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default category for type %s: %w", transactionType, err)
	}

	return category, nil
}
