package views

import (
	"fmt"

	"custopro-api/internal/document"
	"custopro-api/internal/models"

	"github.com/shopspring/decimal"
)

// Derived holds the spend metrics computed from one customer's embedded
// transaction list.
type Derived struct {
	TotalSpent    decimal.Decimal
	PurchaseCount int
	// LastPurchase is the maximum purchase timestamp in its native stored
	// representation, nil when no transaction carries one.
	LastPurchase interface{}
	Segment      models.Segment
}

// Derive computes spend metrics from the document's transactions field.
// Every list entry counts toward purchaseCount, even malformed ones; only
// entries with a numeric amount contribute to totalSpent, and only entries
// with a purchase timestamp compete for lastPurchase.
func Derive(doc document.Document) Derived {
	d := Derived{TotalSpent: decimal.Zero}

	raw, ok := doc.List(models.FieldTransactions)
	if ok {
		d.PurchaseCount = len(raw)
		for _, item := range raw {
			tx, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			entry := document.Document(tx)
			if amount, ok := entry.Number(models.FieldTransactionAmt); ok {
				d.TotalSpent = d.TotalSpent.Add(amount)
			}
			if ts, ok := entry.Get(models.FieldTransactionTime); ok {
				if d.LastPurchase == nil || laterThan(ts, d.LastPurchase) {
					d.LastPurchase = ts
				}
			}
		}
	}

	d.Segment = models.SegmentForSpend(d.TotalSpent)
	return d
}

// laterThan orders purchase timestamps in their native representation:
// string pairs lexically, numeric pairs numerically, anything else by its
// printed form.
func laterThan(a, b interface{}) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as > bs
		}
	}
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			return af > bf
		}
	}
	return fmt.Sprint(a) > fmt.Sprint(b)
}

// Apply copies derived metrics onto a normalized view.
func (d Derived) Apply(view *models.CustomerView) {
	view.TotalSpent = d.TotalSpent
	view.PurchaseCount = d.PurchaseCount
	view.LastPurchase = d.LastPurchase
	view.Segment = d.Segment
}
