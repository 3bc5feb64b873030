package repositories

import (
	"testing"

	"budgetflow/internal/database"
	"budgetflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// UserRepositorySuite defines the test suite for UserRepository
type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreate_AppliesDefaultBudgetSplit() {
	user := &models.User{
		GoogleID:  "google-123",
		Email:     "new@example.com",
		FirstName: "New",
	}
	s.Require().NoError(s.repo.Create(user))
	s.NotEqual(uuid.Nil, user.ID)

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.True(found.BudgetPreferences.Equal(models.DefaultBudgetPreferences()))
}

func (s *UserRepositorySuite) TestGetByGoogleID() {
	user := database.CreateTestUser(s.T(), s.db, "lookup@example.com")

	found, err := s.repo.GetByGoogleID(user.GoogleID)
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByGoogleID("google-unknown")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestGetByEmail() {
	user := database.CreateTestUser(s.T(), s.db, "email@example.com")

	found, err := s.repo.GetByEmail("email@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByEmail("missing@example.com")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUpdateBudgetPreferences() {
	user := database.CreateTestUser(s.T(), s.db, "budget@example.com")

	prefs := models.BudgetPreferences{
		NeedsPercent:   decimal.RequireFromString("70"),
		WantsPercent:   decimal.RequireFromString("20"),
		SavingsPercent: decimal.RequireFromString("10"),
	}
	s.Require().NoError(s.repo.UpdateBudgetPreferences(user.ID, prefs))

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.True(found.BudgetPreferences.Equal(prefs))
}

func (s *UserRepositorySuite) TestUpdateLastLogin() {
	user := database.CreateTestUser(s.T(), s.db, "login@example.com")
	s.Nil(user.LastLoginAt)

	s.Require().NoError(s.repo.UpdateLastLogin(user.ID))

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.NotNil(found.LastLoginAt)
}
