package repositories

import (
	"errors"
	"fmt"
	"strings"

	"custopro-api/internal/models"
	"custopro-api/internal/query"

	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerRepository stores customer documents in a relational JSON column.
// Predicates are translated into doc->> extractions, which both Postgres
// (jsonb) and SQLite (json text, 3.38+) evaluate with the same operator.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer document repository
func NewCustomerRepository(db *gorm.DB) CustomerRepositoryInterface {
	return &CustomerRepository{
		db: db,
	}
}

// Count returns how many stored documents match the predicate.
func (r *CustomerRepository) Count(pred query.Predicate) (int64, error) {
	var total int64
	if err := r.applyPredicate(r.db.Model(&models.CustomerDocument{}), pred).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return total, nil
}

// Find returns the matching documents inside the window in store key order.
func (r *CustomerRepository) Find(pred query.Predicate, window query.Window) ([]*models.CustomerDocument, error) {
	var docs []*models.CustomerDocument

	err := r.applyPredicate(r.db.Model(&models.CustomerDocument{}), pred).
		Order("id ASC").
		Offset(window.Skip).
		Limit(window.Limit).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return docs, nil
}

// GetByKey fetches one document by its store primary key.
func (r *CustomerRepository) GetByKey(key string) (*models.CustomerDocument, error) {
	var doc models.CustomerDocument
	if err := r.db.Where("id = ?", key).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by key: %w", err)
	}
	return &doc, nil
}

// FindOne fetches the first document whose named top-level field equals the
// given value.
func (r *CustomerRepository) FindOne(field, value string) (*models.CustomerDocument, error) {
	var doc models.CustomerDocument
	err := r.db.Where("doc->>? = ?", field, value).
		Order("id ASC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by %s: %w", field, err)
	}
	return &doc, nil
}

// Insert stores a new document.
func (r *CustomerRepository) Insert(doc *models.CustomerDocument) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// applyPredicate translates a predicate into WHERE clauses. The SQL must
// agree with query.Predicate.Matches.
func (r *CustomerRepository) applyPredicate(tx *gorm.DB, pred query.Predicate) *gorm.DB {
	if pred.Search != "" {
		pattern := "%" + strings.ToLower(pred.Search) + "%"
		clauses := make([]string, 0, len(query.SearchFields))
		args := make([]interface{}, 0, len(query.SearchFields))
		for _, field := range query.SearchFields {
			clauses = append(clauses, fmt.Sprintf("LOWER(doc->>'%s') LIKE ?", field))
			args = append(args, pattern)
		}
		tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if pred.Spend != nil {
		spentExpr := fmt.Sprintf("CAST(doc->>'%s' AS NUMERIC)", models.FieldTotalSpent)
		// NULL extraction makes the comparison NULL, so documents without a
		// total_spent field never match, same as the in-memory evaluator.
		if pred.Spend.Min != nil {
			op := ">"
			if pred.Spend.MinInclusive {
				op = ">="
			}
			tx = tx.Where(spentExpr+" "+op+" ?", pred.Spend.Min.InexactFloat64())
		}
		if pred.Spend.Max != nil {
			op := "<"
			if pred.Spend.MaxInclusive {
				op = "<="
			}
			tx = tx.Where(spentExpr+" "+op+" ?", pred.Spend.Max.InexactFloat64())
		}
	}

	if pred.LastPurchaseBefore != "" {
		field := models.FieldLastPurchase
		tx = tx.Where(
			fmt.Sprintf("(doc->>'%s' IS NULL OR doc->>'%s' < ?)", field, field),
			pred.LastPurchaseBefore,
		)
	}

	return tx
}
