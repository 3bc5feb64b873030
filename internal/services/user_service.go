package services

import (
	"fmt"
	"log/slog"

	"budgetflow/internal/dto"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *slog.Logger
}

// NewUserService creates the user profile service.
func NewUserService(userRepo repositories.UserRepositoryInterface, logger *slog.Logger) UserServiceInterface {
	return &userService{userRepo: userRepo, logger: logger}
}

// GetProfile loads the user's profile including budget preferences.
func (s *userService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateBudgetPreferences replaces the stored budget split. Existing income
// transactions keep their historical distribution; only future incomes use
// the new split.
func (s *userService) UpdateBudgetPreferences(userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.User, error) {
	percentages := Percentages{
		Needs:   req.NeedsPercent,
		Wants:   req.WantsPercent,
		Savings: req.SavingsPercent,
	}
	if err := percentages.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	prefs := percentages.ToPreferences()
	if err := s.userRepo.UpdateBudgetPreferences(userID, prefs); err != nil {
		return nil, fmt.Errorf("failed to update budget preferences: %w", err)
	}

	user.BudgetPreferences = prefs
	s.logger.Info("budget preferences updated",
		"user_id", userID,
		"needs", prefs.NeedsPercent,
		"wants", prefs.WantsPercent,
		"savings", prefs.SavingsPercent)

	return user, nil
}
