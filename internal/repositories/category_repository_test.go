package repositories

import (
	"testing"

	"budgetflow/internal/database"
	"budgetflow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CategoryRepositorySuite defines the test suite for CategoryRepository
type CategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo CategoryRepositoryInterface
	user *models.User
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "categories@example.com")
}

func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestCreateAndGetByID() {
	category := &models.Category{
		UserID:   s.user.ID,
		Name:     "Dining Out",
		Type:     models.CategoryTypeWants,
		IsCustom: true,
	}
	s.Require().NoError(s.repo.Create(category))

	found, err := s.repo.GetByID(category.ID)
	s.Require().NoError(err)
	s.Equal("Dining Out", found.Name)
	s.True(found.IsCustom)
}

func (s *CategoryRepositorySuite) TestGetByIDAndUser_ScopesToOwner() {
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Rent", models.CategoryTypeNeeds)
	stranger := database.CreateTestUser(s.T(), s.db, "other@example.com")

	_, err := s.repo.GetByIDAndUser(category.ID, stranger.ID)
	s.ErrorIs(err, ErrCategoryNotFound)

	found, err := s.repo.GetByIDAndUser(category.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal(category.ID, found.ID)
}

func (s *CategoryRepositorySuite) TestFindOrCreate_CreatesOnFirstUse() {
	category, err := s.repo.FindOrCreate(models.DefaultCategory(s.user.ID, models.CategoryTypeNeeds))
	s.Require().NoError(err)
	s.Equal("Essentials", category.Name)
	s.False(category.IsCustom)
	s.NotEqual(uuid.Nil, category.ID)
}

func (s *CategoryRepositorySuite) TestFindOrCreate_IsIdempotent() {
	first, err := s.repo.FindOrCreate(models.DefaultCategory(s.user.ID, models.CategoryTypeSavings))
	s.Require().NoError(err)

	second, err := s.repo.FindOrCreate(models.DefaultCategory(s.user.ID, models.CategoryTypeSavings))
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	categories, err := s.repo.GetByUserAndType(s.user.ID, models.CategoryTypeSavings)
	s.Require().NoError(err)
	s.Len(categories, 1)
}

func (s *CategoryRepositorySuite) TestGetByUserAndType() {
	database.CreateTestCategory(s.T(), s.db, s.user, "Rent", models.CategoryTypeNeeds)
	database.CreateTestCategory(s.T(), s.db, s.user, "Utilities", models.CategoryTypeNeeds)
	database.CreateTestCategory(s.T(), s.db, s.user, "Hobbies", models.CategoryTypeWants)

	needs, err := s.repo.GetByUserAndType(s.user.ID, models.CategoryTypeNeeds)
	s.Require().NoError(err)
	s.Len(needs, 2)
}

func (s *CategoryRepositorySuite) TestUpdate() {
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Misc", models.CategoryTypeWants)

	category.Name = "Entertainment"
	s.Require().NoError(s.repo.Update(category))

	found, err := s.repo.GetByID(category.ID)
	s.Require().NoError(err)
	s.Equal("Entertainment", found.Name)
}

func (s *CategoryRepositorySuite) TestDelete_RefusesDefaultCategory() {
	category, err := s.repo.FindOrCreate(models.DefaultCategory(s.user.ID, models.CategoryTypeNeeds))
	s.Require().NoError(err)

	s.ErrorIs(s.repo.Delete(category.ID), ErrCategoryDefault)
}

func (s *CategoryRepositorySuite) TestDelete_RefusesReferencedCategory() {
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Rent", models.CategoryTypeNeeds)
	database.CreateTestTransaction(s.T(), s.db, s.user, category, "1200.00")

	s.ErrorIs(s.repo.Delete(category.ID), ErrCategoryInUse)
}

func (s *CategoryRepositorySuite) TestDelete_RemovesUnusedCustomCategory() {
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Short-lived", models.CategoryTypeWants)

	s.Require().NoError(s.repo.Delete(category.ID))

	_, err := s.repo.GetByID(category.ID)
	s.ErrorIs(err, ErrCategoryNotFound)
}
