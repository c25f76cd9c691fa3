package repositories

import (
	"custopro-api/internal/models"
	"custopro-api/internal/query"
)

// CustomerRepositoryInterface defines the contract for customer document
// store operations. Implementations translate query.Predicate into their
// native filtering; Predicate.Matches is the behavior they must agree with.
type CustomerRepositoryInterface interface {
	// Count returns how many stored documents match the predicate.
	Count(pred query.Predicate) (int64, error)

	// Find returns the matching documents inside the window, ordered by
	// store key so pages are stable between requests.
	Find(pred query.Predicate, window query.Window) ([]*models.CustomerDocument, error)

	// GetByKey fetches one document by its store primary key.
	GetByKey(key string) (*models.CustomerDocument, error)

	// FindOne fetches the first document whose named top-level field equals
	// the given value, in store key order.
	FindOne(field, value string) (*models.CustomerDocument, error)

	// Insert stores a new document, generating a key when none is set.
	Insert(doc *models.CustomerDocument) error
}
