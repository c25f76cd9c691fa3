package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"custopro-api/internal/document"
	"custopro-api/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	// AtRiskWindow is how long a customer can go without a purchase before
	// the at_risk filter picks them up.
	AtRiskWindow = 90 * 24 * time.Hour
)

// ErrInvalidParameter rejects listing parameters the store must never see:
// non-positive pagination or an unknown segment key.
var ErrInvalidParameter = errors.New("invalid parameter")

// SearchFields are the document fields a free-text search term is matched
// against, case-insensitively, combined with OR.
var SearchFields = []string{
	models.FieldFullName,
	models.FieldEmail,
	models.FieldContactNumber,
}

// SpendRange constrains the stored total_spent field. Nil bounds are open.
type SpendRange struct {
	Min          *decimal.Decimal
	MinInclusive bool
	Max          *decimal.Decimal
	MaxInclusive bool
}

// Predicate is the structured store filter for a customer listing. Search
// and spend/recency constraints combine with AND; a zero Predicate matches
// every document.
type Predicate struct {
	// Search is a case-insensitive substring matched against SearchFields.
	Search string
	Spend  *SpendRange
	// LastPurchaseBefore matches documents whose last_purchase field is
	// absent or lexically earlier than this RFC 3339 timestamp.
	LastPurchaseBefore string
}

// Empty reports whether the predicate matches all documents.
func (p Predicate) Empty() bool {
	return p.Search == "" && p.Spend == nil && p.LastPurchaseBefore == ""
}

// Window is the (skip, limit) slice of the matching result set to fetch.
type Window struct {
	Skip  int
	Limit int
}

// ListParams are the raw request-level listing parameters.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Segment string
}

// Build translates listing parameters into a store predicate and fetch
// window. Pure: no store access, no side effects. The clock reading is only
// used for the at_risk recency cutoff.
func Build(params ListParams, now time.Time) (Predicate, Window, error) {
	if params.Page < 1 {
		return Predicate{}, Window{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidParameter, params.Page)
	}
	if params.Limit < 1 {
		return Predicate{}, Window{}, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidParameter, params.Limit)
	}

	pred := Predicate{Search: strings.TrimSpace(params.Search)}

	switch models.Segment(params.Segment) {
	case "":
	case models.SegmentHighValue:
		min := models.HighValueThreshold
		pred.Spend = &SpendRange{Min: &min}
	case models.SegmentMediumValue:
		min := models.MediumValueThreshold
		max := models.HighValueThreshold
		pred.Spend = &SpendRange{Min: &min, MinInclusive: true, Max: &max, MaxInclusive: true}
	case models.SegmentLowValue:
		max := models.MediumValueThreshold
		pred.Spend = &SpendRange{Max: &max}
	case models.SegmentAtRisk:
		pred.LastPurchaseBefore = now.Add(-AtRiskWindow).UTC().Format(time.RFC3339)
	default:
		return Predicate{}, Window{}, fmt.Errorf("%w: unknown segment %q", ErrInvalidParameter, params.Segment)
	}

	window := Window{
		Skip:  (params.Page - 1) * params.Limit,
		Limit: params.Limit,
	}
	return pred, window, nil
}

// Matches evaluates the predicate against one document in memory. This is
// the reference semantics the SQL translation in the repository mirrors.
func (p Predicate) Matches(doc document.Document) bool {
	if p.Search != "" && !p.matchesSearch(doc) {
		return false
	}
	if p.Spend != nil && !p.Spend.matches(doc) {
		return false
	}
	if p.LastPurchaseBefore != "" && !p.matchesRecency(doc) {
		return false
	}
	return true
}

func (p Predicate) matchesSearch(doc document.Document) bool {
	term := strings.ToLower(p.Search)
	for _, field := range SearchFields {
		if v, ok := doc.String(field); ok && strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func (r *SpendRange) matches(doc document.Document) bool {
	spent, ok := doc.Number(models.FieldTotalSpent)
	if !ok {
		// documents without a comparable total_spent never match a range
		return false
	}
	if r.Min != nil {
		if r.MinInclusive {
			if spent.LessThan(*r.Min) {
				return false
			}
		} else if spent.LessThanOrEqual(*r.Min) {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxInclusive {
			if spent.GreaterThan(*r.Max) {
				return false
			}
		} else if spent.GreaterThanOrEqual(*r.Max) {
			return false
		}
	}
	return true
}

func (p Predicate) matchesRecency(doc document.Document) bool {
	lp, ok := doc.String(models.FieldLastPurchase)
	if !ok {
		// never purchased (or unreadable timestamp) counts as at risk
		return true
	}
	return lp < p.LastPurchaseBefore
}
