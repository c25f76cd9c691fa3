package views

import (
	"strings"
	"time"

	"custopro-api/internal/document"
	"custopro-api/internal/models"
)

// Fields reported as having been defaulted during normalization. These are
// soft fallbacks, not errors: callers can log or assert on them, but the
// record still normalizes.
const (
	DefaultedName      = "name"
	DefaultedCreatedAt = "createdAt"
)

// Normalizer maps raw customer documents onto the canonical view shape.
// The clock is only consulted to default createdAt when the source record
// has no creation date; injecting it keeps that one non-deterministic path
// pinnable in tests.
type Normalizer struct {
	clock func() time.Time
}

// NewNormalizer creates a normalizer. A nil clock means time.Now.
func NewNormalizer(clock func() time.Time) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{clock: clock}
}

// Normalize populates the identity, contact and profile fields of a customer
// view from one raw document. id is the already-resolved identity: the store
// primary key, or the natural key the record was found under. Derived spend
// metrics are left zeroed for the derivation engine.
//
// Normalization never fails: malformed field types are coerced to their
// defaults. The returned slice names the fields that fell back to a default.
func (n *Normalizer) Normalize(id string, doc document.Document) (*models.CustomerView, []string) {
	view := &models.CustomerView{ID: id}
	var defaulted []string

	if fullName, ok := doc.String(models.FieldFullName); ok {
		parts := strings.SplitN(fullName, " ", 2)
		view.FirstName = parts[0]
		if len(parts) > 1 {
			view.LastName = parts[1]
		}
	} else {
		view.FirstName = "Unknown"
		defaulted = append(defaulted, DefaultedName)
	}

	view.Email = doc.StringOr(models.FieldEmail, "")

	if phone, ok := doc.String(models.FieldPhone); ok {
		view.Phone = phone
	} else {
		view.Phone = doc.StringOr(models.FieldContactNumber, "")
	}

	view.Address = doc.StringOr(models.FieldAddress, "")
	if city, ok := doc.String(models.FieldCity); ok {
		view.City = city
	} else if idx := strings.LastIndex(view.Address, ","); idx >= 0 {
		view.City = strings.TrimSpace(view.Address[idx+1:])
	}

	if consent, ok := doc.Bool(models.FieldConsentGiven); ok {
		view.ConsentGiven = consent
	}
	if consentDate, ok := doc.String(models.FieldConsentDate); ok {
		view.ConsentDate = &consentDate
	}

	if createdAt, ok := doc.String(models.FieldCreatedDate); ok {
		view.CreatedAt = createdAt
	} else {
		view.CreatedAt = n.clock().UTC().Format(time.RFC3339)
		defaulted = append(defaulted, DefaultedCreatedAt)
	}

	return view, defaulted
}
