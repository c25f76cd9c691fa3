package dto

import (
	"custopro-api/internal/models"
)

// ListCustomersResponse is the paginated customer listing payload
type ListCustomersResponse = models.CustomerPage

// GetCustomerResponse is the single customer payload
type GetCustomerResponse = models.CustomerView
