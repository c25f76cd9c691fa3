package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"custopro-api/internal/document"

	"gorm.io/gorm"
)

// Field names used inside stored customer documents. The ingestion pipeline
// writes these; nothing here guarantees any of them is present.
const (
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldContactNumber   = "contact_number"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldConsentGiven    = "consent_given"
	FieldConsentDate     = "consent_date"
	FieldCreatedDate     = "created_date"
	FieldTransactions    = "transactions"
	FieldTotalSpent      = "total_spent"
	FieldLastPurchase    = "last_purchase"
	FieldGenericID       = "id"
	FieldTransactionAmt  = "total_amount_lkr"
	FieldTransactionTime = "purchase_datetime"
)

// CustomerDocument is one stored customer record: an opaque document plus the
// store key it was filed under. Keys for records migrated from the legacy
// store are 24-character hex strings; newly generated keys follow the same
// shape so lookups stay uniform.
type CustomerDocument struct {
	ID        string            `gorm:"type:varchar(64);primary_key" json:"id"`
	Doc       document.Document `gorm:"type:jsonb;column:doc" json:"doc"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

func (cd *CustomerDocument) TableName() string {
	return "customer_documents"
}

func (cd *CustomerDocument) BeforeCreate(tx *gorm.DB) error {
	if cd.ID == "" {
		cd.ID = NewDocumentKey()
	}
	return nil
}

// NewDocumentKey generates a fresh 24-character hex store key.
func NewDocumentKey() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on a sane platform does not fail; fall back to a
		// timestamp-derived key rather than panicking mid-insert
		return hex.EncodeToString([]byte(time.Now().Format("060102150405")))[:24]
	}
	return hex.EncodeToString(buf)
}

// IsDocumentKey reports whether an identifier has the shape of a store
// primary key: exactly 24 hex characters.
func IsDocumentKey(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
