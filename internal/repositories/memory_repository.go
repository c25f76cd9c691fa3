package repositories

import (
	"errors"
	"sort"
	"sync"

	"custopro-api/internal/models"
	"custopro-api/internal/query"
)

// MemoryCustomerRepository is an in-memory document store used by tests and
// by the dev seed path. Filtering reuses query.Predicate.Matches directly,
// so it doubles as the reference implementation the SQL translation is
// checked against.
type MemoryCustomerRepository struct {
	mu   sync.RWMutex
	docs map[string]*models.CustomerDocument
}

// NewMemoryCustomerRepository creates an empty in-memory repository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		docs: make(map[string]*models.CustomerDocument),
	}
}

func (r *MemoryCustomerRepository) Count(pred query.Predicate) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, doc := range r.docs {
		if pred.Matches(doc.Doc) {
			total++
		}
	}
	return total, nil
}

func (r *MemoryCustomerRepository) Find(pred query.Predicate, window query.Window) ([]*models.CustomerDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.CustomerDocument, 0)
	for _, doc := range r.sortedLocked() {
		if pred.Matches(doc.Doc) {
			matched = append(matched, doc)
		}
	}

	if window.Skip >= len(matched) {
		return []*models.CustomerDocument{}, nil
	}
	matched = matched[window.Skip:]
	if window.Limit < len(matched) {
		matched = matched[:window.Limit]
	}
	return matched, nil
}

func (r *MemoryCustomerRepository) GetByKey(key string) (*models.CustomerDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[key]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return doc, nil
}

func (r *MemoryCustomerRepository) FindOne(field, value string) (*models.CustomerDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.sortedLocked() {
		if v, ok := doc.Doc.String(field); ok && v == value {
			return doc, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *MemoryCustomerRepository) Insert(doc *models.CustomerDocument) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.ID == "" {
		doc.ID = models.NewDocumentKey()
	}
	r.docs[doc.ID] = doc
	return nil
}

// sortedLocked returns all documents in store key order. Callers must hold
// at least the read lock.
func (r *MemoryCustomerRepository) sortedLocked() []*models.CustomerDocument {
	docs := make([]*models.CustomerDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}
