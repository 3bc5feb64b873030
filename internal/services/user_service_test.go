package services_test

import (
	"io"
	"log/slog"
	"testing"

	"budgetflow/internal/database"
	"budgetflow/internal/dto"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"
	"budgetflow/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	db          *database.DB
	userService services.UserServiceInterface
	user        *models.User
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.userService = services.NewUserService(repositories.NewUserRepository(s.db.DB), logger)
	s.user = database.CreateTestUser(s.T(), s.db, "profile@example.com")
}

func (s *UserServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserServiceTestSuite) TestGetProfile() {
	user, err := s.userService.GetProfile(s.user.ID)
	s.Require().NoError(err)
	s.Equal(s.user.Email, user.Email)
	s.True(user.BudgetPreferences.Equal(models.DefaultBudgetPreferences()))
}

func (s *UserServiceTestSuite) TestGetProfile_UnknownUser() {
	_, err := s.userService.GetProfile(uuid.New())
	s.ErrorIs(err, services.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestUpdateBudgetPreferences() {
	user, err := s.userService.UpdateBudgetPreferences(s.user.ID, &dto.UpdateBudgetRequest{
		NeedsPercent:   decimal.RequireFromString("60"),
		WantsPercent:   decimal.RequireFromString("25"),
		SavingsPercent: decimal.RequireFromString("15"),
	})
	s.Require().NoError(err)
	s.True(user.BudgetPreferences.NeedsPercent.Equal(decimal.RequireFromString("60")))

	stored, err := s.userService.GetProfile(s.user.ID)
	s.Require().NoError(err)
	s.True(stored.BudgetPreferences.WantsPercent.Equal(decimal.RequireFromString("25")))
}

func (s *UserServiceTestSuite) TestUpdateBudgetPreferences_InvalidSumRejected() {
	_, err := s.userService.UpdateBudgetPreferences(s.user.ID, &dto.UpdateBudgetRequest{
		NeedsPercent:   decimal.RequireFromString("60"),
		WantsPercent:   decimal.RequireFromString("30"),
		SavingsPercent: decimal.RequireFromString("20"),
	})
	s.True(services.IsValidationError(err))

	stored, err := s.userService.GetProfile(s.user.ID)
	s.Require().NoError(err)
	s.True(stored.BudgetPreferences.Equal(models.DefaultBudgetPreferences()))
}

func (s *UserServiceTestSuite) TestUpdateBudgetPreferences_ZeroPercentRejected() {
	_, err := s.userService.UpdateBudgetPreferences(s.user.ID, &dto.UpdateBudgetRequest{
		NeedsPercent:   decimal.RequireFromString("100"),
		WantsPercent:   decimal.Zero,
		SavingsPercent: decimal.Zero,
	})
	s.True(services.IsValidationError(err))
}
