package services

import (
	"context"
	"time"

	"custopro-api/internal/document"
	"custopro-api/internal/models"
	"custopro-api/internal/query"
)

// CustomerViewServiceInterface defines the contract for customer view
// derivation and query operations
type CustomerViewServiceInterface interface {
	// ListCustomers returns one page of normalized, derived customer views
	// matching the listing parameters.
	ListCustomers(ctx context.Context, params query.ListParams) (*models.CustomerPage, error)

	// GetCustomer resolves one identifier to a customer view, trying the
	// store key, the embedded id field and the contact number in turn.
	GetCustomer(ctx context.Context, id string) (*models.CustomerView, error)
}

// CustomerGeneratorInterface generates realistic customer documents for
// seeding and testing
type CustomerGeneratorInterface interface {
	GenerateCustomerDocument() document.Document
	SeedCustomers(ctx context.Context, count int) (int, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CustomerLoggerInterface interface {
	LogCustomerListStarted(ctx context.Context, page, limit int, segment string)
	LogCustomerListCompleted(ctx context.Context, resultsCount int, total int64, durationMs int64)
	LogCustomerListFailed(ctx context.Context, errorMsg string, durationMs int64)
	LogCustomerLookupCompleted(ctx context.Context, matchedBy string, durationMs int64)
	LogCustomerLookupFailed(ctx context.Context, errorMsg string, durationMs int64)
	LogCustomersSeeded(ctx context.Context, count int)
	LogNormalizationDefaults(ctx context.Context, customerID string, fields []string)
	LogNotificationDispatched(ctx context.Context, channel, provider string, success bool)
	LogValidationFailure(ctx context.Context, operation string, errorMsg string)
}
