package models

import "github.com/shopspring/decimal"

// CustomerView is the normalized, derived shape of one customer record as
// the CRM frontend consumes it. Every field is always present in the output;
// absent source fields surface as their documented defaults rather than
// being omitted.
type CustomerView struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	ConsentGiven  bool            `json:"consentGiven"`
	ConsentDate   *string         `json:"consentDate"`
	CreatedAt     string          `json:"createdAt"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	PurchaseCount int             `json:"purchaseCount"`
	// LastPurchase carries the source timestamp in its native representation
	// (string or number); nil when no transaction has one.
	LastPurchase interface{} `json:"lastPurchase,omitempty"`
	Segment      Segment     `json:"segment"`
}

// CustomerPage is one window of matching customer views plus the counts the
// frontend needs to render pagination.
type CustomerPage struct {
	Customers  []*CustomerView `json:"customers"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"pages"`
}
