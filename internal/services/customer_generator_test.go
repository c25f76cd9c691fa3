package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"custopro-api/internal/models"
	"custopro-api/internal/query"
	"custopro-api/internal/repositories"
	"custopro-api/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(repo repositories.CustomerRepositoryInterface) CustomerGeneratorInterface {
	logger := NewCustomerLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewCustomerGenerator(repo, logger, newRecordingMetrics())
}

func TestGenerateCustomerDocumentHasContactIdentity(t *testing.T) {
	gen := newTestGenerator(repositories.NewMemoryCustomerRepository())

	for i := 0; i < 20; i++ {
		doc := gen.GenerateCustomerDocument()

		name, ok := doc.String(models.FieldFullName)
		require.True(t, ok)
		assert.NotEmpty(t, name)

		email, ok := doc.String(models.FieldEmail)
		require.True(t, ok)
		assert.Contains(t, email, "@")

		_, ok = doc.String(models.FieldContactNumber)
		assert.True(t, ok)
	}
}

func TestGenerateCustomerDocumentStoredSpendMatchesTransactions(t *testing.T) {
	gen := newTestGenerator(repositories.NewMemoryCustomerRepository())

	for i := 0; i < 20; i++ {
		doc := gen.GenerateCustomerDocument()
		derived := views.Derive(doc)

		if !doc.Has(models.FieldTransactions) {
			assert.False(t, doc.Has(models.FieldTotalSpent))
			assert.False(t, doc.Has(models.FieldLastPurchase))
			continue
		}

		stored, ok := doc.Number(models.FieldTotalSpent)
		require.True(t, ok)
		assert.True(t, stored.Equal(derived.TotalSpent),
			"stored total_spent %s disagrees with derived %s", stored, derived.TotalSpent)

		last, ok := doc.String(models.FieldLastPurchase)
		require.True(t, ok)
		assert.Equal(t, derived.LastPurchase, last)
	}
}

func TestSeedCustomers(t *testing.T) {
	repo := repositories.NewMemoryCustomerRepository()
	gen := newTestGenerator(repo)

	inserted, err := gen.SeedCustomers(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, 15, inserted)

	total, err := repo.Count(query.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}
