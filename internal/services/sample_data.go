package services

import (
	"fmt"
	"log/slog"
	"time"

	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultSeedCount = 25

type sampleDataService struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	categoryResolver CategoryResolverInterface
	logger           *slog.Logger
}

// NewSampleDataService creates the development data seeder.
func NewSampleDataService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryResolver CategoryResolverInterface,
	logger *slog.Logger,
) SampleDataServiceInterface {
	return &sampleDataService{
		transactionRepo:  transactionRepo,
		categoryResolver: categoryResolver,
		logger:           logger,
	}
}

// SeedExpenses creates count fake expense transactions spread over the last
// three months, distributed across the three buckets.
func (s *sampleDataService) SeedExpenses(userID uuid.UUID, count int) ([]models.Transaction, error) {
	if count <= 0 {
		count = defaultSeedCount
	}

	buckets := models.BucketTypes()
	now := time.Now()
	created := make([]models.Transaction, 0, count)

	for i := 0; i < count; i++ {
		bucket := buckets[gofakeit.Number(0, len(buckets)-1)]

		category, err := s.categoryResolver.Resolve(userID, nil, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category for seed data: %w", err)
		}

		transaction := &models.Transaction{
			UserID:          userID,
			Description:     gofakeit.ProductName(),
			Amount:          decimal.NewFromFloat(gofakeit.Price(5, 500)),
			CategoryID:      category.ID,
			TransactionType: bucket,
			Date:            gofakeit.DateRange(now.AddDate(0, -3, 0), now),
			Source:          models.TransactionSourceImport,
			Notes:           gofakeit.Sentence(6),
		}

		if err := s.transactionRepo.Create(transaction); err != nil {
			return nil, fmt.Errorf("failed to create seed transaction: %w", err)
		}
		created = append(created, *transaction)
	}

	s.logger.Info("sample expenses seeded", "user_id", userID, "count", len(created))
	return created, nil
}
