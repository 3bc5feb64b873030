package services_test

import (
	"io"
	"log/slog"
	"testing"

	"budgetflow/internal/database"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"
	"budgetflow/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SampleDataServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	service services.SampleDataServiceInterface
	user    *models.User
}

func TestSampleDataServiceSuite(t *testing.T) {
	suite.Run(t, new(SampleDataServiceTestSuite))
}

func (s *SampleDataServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := services.NewCategoryResolver(categoryRepo, services.NoopMetricsRecorder{}, logger)
	s.service = services.NewSampleDataService(transactionRepo, resolver, logger)
	s.user = database.CreateTestUser(s.T(), s.db, "seeder@example.com")
}

func (s *SampleDataServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *SampleDataServiceTestSuite) TestSeedExpenses() {
	seeded, err := s.service.SeedExpenses(s.user.ID, 10)
	s.Require().NoError(err)
	s.Len(seeded, 10)

	for _, tx := range seeded {
		s.NotEqual(models.TransactionTypeIncome, tx.TransactionType)
		s.Equal(models.TransactionSourceImport, tx.Source)
		s.False(tx.IsDistribution)
		s.True(tx.IsEditable)
		s.True(tx.Amount.GreaterThan(decimal.Zero))
		s.NotEmpty(tx.Description)
	}
}

func (s *SampleDataServiceTestSuite) TestSeedExpenses_DefaultCount() {
	seeded, err := s.service.SeedExpenses(s.user.ID, 0)
	s.Require().NoError(err)
	s.Len(seeded, 25)
}
