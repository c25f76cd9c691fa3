package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"custopro-api/internal/models"
	"custopro-api/internal/query"
	"custopro-api/internal/repositories"
	"custopro-api/internal/views"
)

// Identifier kinds tried by GetCustomer, in resolution order.
const (
	MatchedByStoreKey      = "store_key"
	MatchedByGenericID     = "id"
	MatchedByContactNumber = "contact_number"
)

var ErrEmptyCustomerID = fmt.Errorf("%w: customer id cannot be empty", query.ErrInvalidParameter)

// CustomerViewService derives frontend-ready customer views from the raw
// document store. All reads are single-document: listing derives each page
// entry independently and never aggregates across records.
type CustomerViewService struct {
	repo       repositories.CustomerRepositoryInterface
	normalizer *views.Normalizer
	logger     CustomerLoggerInterface
	metrics    MetricsRecorderInterface
	clock      func() time.Time
}

// NewCustomerViewService creates a new customer view service. A nil clock
// means time.Now.
func NewCustomerViewService(
	repo repositories.CustomerRepositoryInterface,
	logger CustomerLoggerInterface,
	metrics MetricsRecorderInterface,
	clock func() time.Time,
) CustomerViewServiceInterface {
	if clock == nil {
		clock = time.Now
	}
	return &CustomerViewService{
		repo:       repo,
		normalizer: views.NewNormalizer(clock),
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}
}

// ListCustomers returns one page of matching customer views plus pagination
// counts. The total is counted before the window is fetched, so a page past
// the end comes back empty but still reports the real total.
func (s *CustomerViewService) ListCustomers(ctx context.Context, params query.ListParams) (*models.CustomerPage, error) {
	start := s.clock()
	s.logger.LogCustomerListStarted(ctx, params.Page, params.Limit, params.Segment)

	pred, window, err := query.Build(params, start)
	if err != nil {
		s.logger.LogValidationFailure(ctx, "list_customers", err.Error())
		s.metrics.IncrementCounter("customer_list_request", map[string]string{"status": "invalid"})
		return nil, err
	}

	total, err := s.repo.Count(pred)
	if err != nil {
		s.failList(ctx, start, err)
		return nil, fmt.Errorf("failed to count matching customers: %w", err)
	}

	docs, err := s.repo.Find(pred, window)
	if err != nil {
		s.failList(ctx, start, err)
		return nil, fmt.Errorf("failed to fetch customer page: %w", err)
	}

	customers := make([]*models.CustomerView, 0, len(docs))
	for _, doc := range docs {
		customers = append(customers, s.deriveView(ctx, doc.ID, doc))
	}

	page := query.NewPage(customers, total, params.Page, params.Limit)

	elapsed := s.clock().Sub(start)
	s.logger.LogCustomerListCompleted(ctx, len(customers), total, elapsed.Milliseconds())
	s.metrics.IncrementCounter("customer_list_request", map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime("customer_list", elapsed)

	return page, nil
}

// GetCustomer resolves one identifier to a derived customer view. Identifiers
// shaped like store keys are tried against the primary key first; any
// identifier then falls back to the embedded id field and finally the contact
// number. The first hit wins.
func (s *CustomerViewService) GetCustomer(ctx context.Context, id string) (*models.CustomerView, error) {
	start := s.clock()

	id = strings.TrimSpace(id)
	if id == "" {
		s.logger.LogValidationFailure(ctx, "get_customer", "empty customer id")
		s.metrics.IncrementCounter("customer_lookup", map[string]string{"status": "invalid"})
		return nil, ErrEmptyCustomerID
	}

	doc, matchedBy, err := s.resolve(id)
	if err != nil {
		elapsed := s.clock().Sub(start)
		if errors.Is(err, repositories.ErrCustomerNotFound) {
			s.logger.LogCustomerLookupFailed(ctx, "customer not found", elapsed.Milliseconds())
			s.metrics.IncrementCounter("customer_lookup", map[string]string{"status": "not_found"})
			return nil, err
		}
		s.logger.LogCustomerLookupFailed(ctx, err.Error(), elapsed.Milliseconds())
		s.metrics.IncrementCounter("customer_lookup", map[string]string{"status": "error"})
		return nil, fmt.Errorf("failed to resolve customer %q: %w", id, err)
	}

	view := s.deriveView(ctx, doc.ID, doc)

	elapsed := s.clock().Sub(start)
	s.logger.LogCustomerLookupCompleted(ctx, matchedBy, elapsed.Milliseconds())
	s.metrics.IncrementCounter("customer_lookup", map[string]string{"status": "success", "matched_by": matchedBy})
	s.metrics.RecordProcessingTime("customer_lookup", elapsed)

	return view, nil
}

func (s *CustomerViewService) resolve(id string) (*models.CustomerDocument, string, error) {
	if models.IsDocumentKey(id) {
		doc, err := s.repo.GetByKey(id)
		if err == nil {
			return doc, MatchedByStoreKey, nil
		}
		if !errors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, "", err
		}
	}

	doc, err := s.repo.FindOne(models.FieldGenericID, id)
	if err == nil {
		return doc, MatchedByGenericID, nil
	}
	if !errors.Is(err, repositories.ErrCustomerNotFound) {
		return nil, "", err
	}

	doc, err = s.repo.FindOne(models.FieldContactNumber, id)
	if err == nil {
		return doc, MatchedByContactNumber, nil
	}
	return nil, "", err
}

func (s *CustomerViewService) deriveView(ctx context.Context, id string, doc *models.CustomerDocument) *models.CustomerView {
	view, defaulted := s.normalizer.Normalize(id, doc.Doc)
	if len(defaulted) > 0 {
		s.logger.LogNormalizationDefaults(ctx, id, defaulted)
	}
	views.Derive(doc.Doc).Apply(view)
	return view
}

func (s *CustomerViewService) failList(ctx context.Context, start time.Time, err error) {
	elapsed := s.clock().Sub(start)
	s.logger.LogCustomerListFailed(ctx, err.Error(), elapsed.Milliseconds())
	s.metrics.IncrementCounter("customer_list_request", map[string]string{"status": "error"})
}
