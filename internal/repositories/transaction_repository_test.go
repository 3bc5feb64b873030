package repositories

import (
	"testing"
	"time"

	"budgetflow/internal/database"
	"budgetflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     TransactionRepositoryInterface
	user     *models.User
	category *models.Category
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	s.user = database.CreateTestUser(s.T(), s.db, "repo@example.com")
	s.category = database.CreateTestCategory(s.T(), s.db, s.user, "Groceries", models.TransactionTypeNeeds)
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) newTransaction(amount string) *models.Transaction {
	return &models.Transaction{
		UserID:          s.user.ID,
		Description:     "Weekly shop",
		Amount:          decimal.RequireFromString(amount),
		CategoryID:      s.category.ID,
		TransactionType: models.TransactionTypeNeeds,
		Date:            time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Source:          models.TransactionSourceManual,
	}
}

func (s *TransactionRepositorySuite) TestCreateAndGetByID() {
	transaction := s.newTransaction("42.50")
	s.Require().NoError(s.repo.Create(transaction))
	s.NotEqual(uuid.Nil, transaction.ID)

	found, err := s.repo.GetByID(transaction.ID)
	s.Require().NoError(err)
	s.Equal(transaction.Description, found.Description)
	s.True(found.Amount.Equal(transaction.Amount))
	s.Equal(models.TransactionStatusActive, found.Status)
	s.Equal(models.DefaultCurrency, found.Currency)
}

func (s *TransactionRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestGetByIDAndUser_ScopesToOwner() {
	transaction := s.newTransaction("10.00")
	s.Require().NoError(s.repo.Create(transaction))

	stranger := database.CreateTestUser(s.T(), s.db, "other@example.com")
	_, err := s.repo.GetByIDAndUser(transaction.ID, stranger.ID)
	s.ErrorIs(err, ErrTransactionNotFound)

	found, err := s.repo.GetByIDAndUser(transaction.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal(transaction.ID, found.ID)
}

func (s *TransactionRepositorySuite) TestUpdateFields() {
	transaction := s.newTransaction("10.00")
	s.Require().NoError(s.repo.Create(transaction))

	err := s.repo.UpdateFields(transaction.ID, map[string]interface{}{
		"distribution_state": models.DistributionStatePartial,
	})
	s.Require().NoError(err)

	found, err := s.repo.GetByID(transaction.ID)
	s.Require().NoError(err)
	s.Equal(models.DistributionStatePartial, found.DistributionState)
}

func (s *TransactionRepositorySuite) TestDeleteByIDs_ToleratesMissing() {
	first := s.newTransaction("10.00")
	second := s.newTransaction("20.00")
	s.Require().NoError(s.repo.Create(first))
	s.Require().NoError(s.repo.Create(second))

	err := s.repo.DeleteByIDs([]uuid.UUID{first.ID, second.ID, uuid.New()})
	s.Require().NoError(err)

	_, err = s.repo.GetByID(first.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
	_, err = s.repo.GetByID(second.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDeleteByIDs_EmptySliceIsNoop() {
	s.NoError(s.repo.DeleteByIDs(nil))
}

func (s *TransactionRepositorySuite) TestGetWithFilters_ExcludesDistributionChildren() {
	parent := s.newTransaction("1000.00")
	parent.TransactionType = models.TransactionTypeIncome
	s.Require().NoError(s.repo.Create(parent))

	child := s.newTransaction("500.00")
	child.Source = models.TransactionSourceDistribution
	child.IsDistribution = true
	child.IsEditable = false
	child.ParentTransactionID = &parent.ID
	s.Require().NoError(s.repo.Create(child))

	visible, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(visible, 1)
	s.Equal(parent.ID, visible[0].ID)

	all, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:          s.user.ID,
		IncludeChildren: true,
	})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Len(all, 2)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_ByTypeAndDateRange() {
	early := s.newTransaction("10.00")
	early.Date = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Create(early))

	late := s.newTransaction("20.00")
	late.Date = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Create(late))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	results, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:          s.user.ID,
		TransactionType: models.TransactionTypeNeeds,
		StartDate:       &start,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(results, 1)
	s.Equal(late.ID, results[0].ID)
}

func (s *TransactionRepositorySuite) TestGetChildren() {
	parent := s.newTransaction("1000.00")
	parent.TransactionType = models.TransactionTypeIncome
	s.Require().NoError(s.repo.Create(parent))

	for _, bucketType := range models.BucketTypes() {
		child := s.newTransaction("100.00")
		child.TransactionType = bucketType
		child.Source = models.TransactionSourceDistribution
		child.IsDistribution = true
		child.IsEditable = false
		child.ParentTransactionID = &parent.ID
		s.Require().NoError(s.repo.Create(child))
	}

	children, err := s.repo.GetChildren(parent.ID)
	s.Require().NoError(err)
	s.Len(children, 3)
}

func (s *TransactionRepositorySuite) TestCountByCategoryID() {
	s.Require().NoError(s.repo.Create(s.newTransaction("10.00")))
	s.Require().NoError(s.repo.Create(s.newTransaction("20.00")))

	count, err := s.repo.CountByCategoryID(s.category.ID)
	s.Require().NoError(err)
	s.EqualValues(2, count)

	count, err = s.repo.CountByCategoryID(uuid.New())
	s.Require().NoError(err)
	s.EqualValues(0, count)
}

func (s *TransactionRepositorySuite) TestCreate_RejectsInvalidDistribution() {
	child := s.newTransaction("100.00")
	child.IsDistribution = true
	// No parent reference and still editable.
	err := s.repo.Create(child)
	s.Error(err)
}
