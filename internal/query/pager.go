package query

import "custopro-api/internal/models"

// TotalPages is ceil(total / limit). Zero when nothing matched.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPage assembles a page descriptor from a fetched window and the counts
// that came with it.
func NewPage(customers []*models.CustomerView, total int64, page, limit int) *models.CustomerPage {
	if customers == nil {
		customers = []*models.CustomerView{}
	}
	return &models.CustomerPage{
		Customers:  customers,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}
