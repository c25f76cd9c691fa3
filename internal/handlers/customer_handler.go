package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"custopro-api/internal/errors"
	"custopro-api/internal/models"
	"custopro-api/internal/query"
	"custopro-api/internal/repositories"
	"custopro-api/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandler handles customer view HTTP requests
type CustomerHandler struct {
	viewService services.CustomerViewServiceInterface
	logger      services.CustomerLoggerInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	viewService services.CustomerViewServiceInterface,
	logger services.CustomerLoggerInterface,
) *CustomerHandler {
	return &CustomerHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// ListCustomers returns a paginated page of derived customer views
// @Summary List customers
// @Description Paginated customer listing with optional free-text search and segment filter
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param search query string false "Case-insensitive match on name, email, or contact number"
// @Param segment query string false "Segment filter" Enums(high_value, medium_value, low_value, at_risk)
// @Success 200 {object} dto.ListCustomersResponse "Paginated customer views"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Invalid page or limit, CUSTOMER_003 - Unknown segment"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := parseIntQueryParam(c, "page", query.DefaultPage)
	if err != nil {
		h.logger.LogValidationFailure(ctx, "customer_list", err.Error())
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("page must be an integer"))
	}

	limit, err := parseIntQueryParam(c, "limit", query.DefaultLimit)
	if err != nil {
		h.logger.LogValidationFailure(ctx, "customer_list", err.Error())
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("limit must be an integer"))
	}

	segment := c.QueryParam("segment")
	if segment != "" && !models.ValidFilterSegment(segment) {
		h.logger.LogValidationFailure(ctx, "customer_list", "unknown segment: "+segment)
		return SendError(c, errors.CustomerInvalidSegment, errors.WithDetails("segment must be one of: high_value, medium_value, low_value, at_risk"))
	}

	params := query.ListParams{
		Page:    page,
		Limit:   limit,
		Search:  c.QueryParam("search"),
		Segment: segment,
	}

	result, err := h.viewService.ListCustomers(ctx, params)
	if err != nil {
		if stderrors.Is(err, query.ErrInvalidParameter) {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetCustomer returns a single derived customer view
// @Summary Get customer
// @Description Resolve a customer by store key, embedded ID field, or contact number
// @Tags Customers
// @Produce json
// @Param id path string true "Customer identifier"
// @Success 200 {object} dto.GetCustomerResponse "Derived customer view"
// @Failure 400 {object} errors.ErrorResponse "CUSTOMER_002 - Invalid customer identifier"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := c.Param("id")

	view, err := h.viewService.GetCustomer(ctx, customerID)
	if err != nil {
		if stderrors.Is(err, query.ErrInvalidParameter) {
			return SendError(c, errors.CustomerInvalidID, errors.WithDetails(err.Error()))
		}
		if stderrors.Is(err, repositories.ErrCustomerNotFound) {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// parseIntQueryParam reads an integer query parameter, falling back to the
// default when the parameter is absent. A present but malformed value is an
// error rather than a silent default.
func parseIntQueryParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
