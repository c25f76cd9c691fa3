package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"custopro-api/internal/document"
	"custopro-api/internal/models"
	"custopro-api/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	maxSeedTransactions = 12
	maxTransactionLKR   = 40000
)

// customerGenerator produces realistic raw customer documents for dev
// seeding. Generated records deliberately vary in completeness: some drop
// optional fields so the normalizer's fallbacks stay exercised in dev
// environments.
type customerGenerator struct {
	repo    repositories.CustomerRepositoryInterface
	logger  CustomerLoggerInterface
	metrics MetricsRecorderInterface
	faker   *gofakeit.Faker
	rng     *rand.Rand
}

// NewCustomerGenerator creates a new customer document generator
func NewCustomerGenerator(
	repo repositories.CustomerRepositoryInterface,
	logger CustomerLoggerInterface,
	metrics MetricsRecorderInterface,
) CustomerGeneratorInterface {
	seed := time.Now().UnixNano()
	return &customerGenerator{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		faker:   gofakeit.New(seed),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// GenerateCustomerDocument builds one raw customer document. The stored
// total_spent and last_purchase fields are kept consistent with the embedded
// transactions so segment filters and derived metrics agree.
func (g *customerGenerator) GenerateCustomerDocument() document.Document {
	doc := document.Document{
		models.FieldFullName:      g.faker.Name(),
		models.FieldEmail:         g.faker.Email(),
		models.FieldContactNumber: g.faker.Phone(),
		models.FieldCreatedDate:   g.pastTimestamp(3 * 365),
	}

	if g.rng.Intn(10) < 8 {
		doc[models.FieldAddress] = fmt.Sprintf("%s, %s", g.faker.Street(), g.faker.City())
	}
	if g.rng.Intn(10) < 7 {
		doc[models.FieldConsentGiven] = true
		doc[models.FieldConsentDate] = g.pastTimestamp(365)
	}
	if g.rng.Intn(10) < 3 {
		doc[models.FieldGenericID] = fmt.Sprintf("CUST-%03d", g.rng.Intn(1000))
	}

	transactions := make([]interface{}, 0, maxSeedTransactions)
	total := 0.0
	last := ""
	for i := 0; i < g.rng.Intn(maxSeedTransactions+1); i++ {
		amount := float64(g.rng.Intn(maxTransactionLKR*100)) / 100
		ts := g.pastTimestamp(2 * 365)
		transactions = append(transactions, map[string]interface{}{
			models.FieldTransactionAmt:  amount,
			models.FieldTransactionTime: ts,
		})
		total += amount
		if ts > last {
			last = ts
		}
	}

	if len(transactions) > 0 {
		doc[models.FieldTransactions] = transactions
		doc[models.FieldTotalSpent] = total
		doc[models.FieldLastPurchase] = last
	}

	return doc
}

// SeedCustomers inserts count generated documents, stopping at the first
// store error. It returns how many documents were actually inserted.
func (g *customerGenerator) SeedCustomers(ctx context.Context, count int) (int, error) {
	inserted := 0
	for i := 0; i < count; i++ {
		record := &models.CustomerDocument{Doc: g.GenerateCustomerDocument()}
		if err := g.repo.Insert(record); err != nil {
			return inserted, fmt.Errorf("failed to seed customer %d of %d: %w", i+1, count, err)
		}
		inserted++
		g.metrics.IncrementCounter("customer_seeded", nil)
	}

	g.logger.LogCustomersSeeded(ctx, inserted)
	g.metrics.RecordGauge("stored_customers", float64(inserted), nil)
	return inserted, nil
}

func (g *customerGenerator) pastTimestamp(maxDaysAgo int) string {
	daysAgo := g.rng.Intn(maxDaysAgo)
	t := time.Now().UTC().AddDate(0, 0, -daysAgo).Add(-time.Duration(g.rng.Intn(86400)) * time.Second)
	return t.Format(time.RFC3339)
}
