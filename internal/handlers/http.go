package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/umalmyha/custdb/internal/errors"
	"github.com/umalmyha/custdb/internal/model"
	"github.com/umalmyha/custdb/internal/service"
)

type newCustomer struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Address   model.Address `json:"address"`
}

type updateCustomer struct {
	FirstName *string        `json:"firstName"`
	LastName  *string        `json:"lastName"`
	Email     *string        `json:"email"`
	Phone     *string        `json:"phone"`
	Address   *model.Address `json:"address"`
}

type seedCustomer struct {
	FirstName string        `json:"firstName" validate:"required"`
	LastName  string        `json:"lastName" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	Phone     string        `json:"phone" validate:"required"`
	Address   model.Address `json:"address"`
}

type listResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []*model.Customer `json:"data"`
}

type itemResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *model.Customer `json:"data"`
}

type countResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// CustomerHTTPHandler is http handler for customer endpoints
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
	logger      logrus.FieldLogger
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService, logger logrus.FieldLogger) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc, logger: logger}
}

// GetAll gets all customers
// @Summary     Get all customers
// @Description Returns all customers, most recently created first
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200 {object} listResponse
// @Failure     500 {object} errorResponse
// @Router      /customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	customers, err := h.customerSvc.FindAll(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &listResponse{Success: true, Count: len(customers), Data: customers})
}

// Get gets single customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       id  path     int true "Customer id"
// @Success     200 {object} itemResponse
// @Failure     400 {object} errorResponse
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	customer, err := h.customerSvc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &itemResponse{Success: true, Data: customer})
}

// Find searches customers by a single query parameter
// @Summary     Search customers
// @Description Searches customers by a single name/value query pair (id, email or password)
// @Tags        customers
// @Produce     json
// @Param       id       query    string false "Customer id"
// @Param       email    query    string false "Customer email"
// @Param       password query    string false "Customer password"
// @Success     200      {object} listResponse
// @Failure     400      {object} errorResponse
// @Failure     404      {object} errorResponse
// @Failure     500      {object} errorResponse
// @Router      /customers/find [get]
func (h *CustomerHTTPHandler) Find(c echo.Context) error {
	params := c.QueryParams()
	if len(params) == 0 {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Error:   "Query string is required",
			Message: "query string is required",
		})
	}

	if len(params) > 1 {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Error:   "Single query parameter only",
			Message: "Only a single name/value pair is supported in the query string",
		})
	}

	var field, value string
	for name, values := range params {
		field = name
		value = values[0]
	}

	if field != "id" && field != "email" && field != "password" {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Error:   "Invalid query parameter",
			Message: "name must be one of the following (id, email, password)",
		})
	}

	customers, err := h.customerSvc.Search(c.Request().Context(), field, value)
	if err != nil {
		return h.respondError(c, err)
	}

	if len(customers) == 0 {
		return c.JSON(http.StatusNotFound, &errorResponse{
			Error:   "No matches found",
			Message: "no matching customer documents found",
		})
	}

	return c.JSON(http.StatusOK, &listResponse{Success: true, Count: len(customers), Data: customers})
}

// FindByCity gets customers living in provided city
// @Summary     Get customers by city
// @Description Returns all customers whose address city matches exactly
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       city path     string true "City name"
// @Success     200  {object} listResponse
// @Failure     500  {object} errorResponse
// @Router      /customers/city/{city} [get]
func (h *CustomerHTTPHandler) FindByCity(c echo.Context) error {
	customers, err := h.customerSvc.FindByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &listResponse{Success: true, Count: len(customers), Data: customers})
}

// Post creates new customer
// @Summary     New customer
// @Description Creates new customer with the next sequential id
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 newCustomer true "Data for new customer"
// @Success     201    		{object} itemResponse
// @Failure     400    		{object} errorResponse
// @Failure     500    		{object} errorResponse
// @Router      /customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), model.Customer{
		FirstName: nc.FirstName,
		LastName:  nc.LastName,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Address:   nc.Address,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, &itemResponse{
		Success: true,
		Message: "Customer created successfully",
		Data:    customer,
	})
}

// Put updates customer
// @Summary     Update customer
// @Description Updates provided fields of the customer, omitted fields keep prior values
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param       id             path     int            true "Customer id"
// @Param 		updateCustomer body	    updateCustomer true "Customer data"
// @Success     200    		   {object} itemResponse
// @Failure     400    		   {object} errorResponse
// @Failure     404    		   {object} errorResponse
// @Failure     500    		   {object} errorResponse
// @Router      /customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	var uc updateCustomer
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), c.Param("id"), model.CustomerPatch{
		FirstName: uc.FirstName,
		LastName:  uc.LastName,
		Email:     uc.Email,
		Phone:     uc.Phone,
		Address:   uc.Address,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &itemResponse{
		Success: true,
		Message: "Customer updated successfully",
		Data:    customer,
	})
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id and returns its last known state
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       id  path     int true "Customer id"
// @Success     200 {object} itemResponse
// @Failure     400 {object} errorResponse
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	customer, err := h.customerSvc.DeleteByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &itemResponse{
		Success: true,
		Message: "Customer deleted successfully",
		Data:    customer,
	})
}

// Reset resets customer collection to example data
// @Summary     Reset customers
// @Description Replaces all customers with the fixed sample dataset
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200 {string} string
// @Failure     500 {object} errorResponse
// @Router      /reset [get]
func (h *CustomerHTTPHandler) Reset(c echo.Context) error {
	message, err := h.customerSvc.ResetToDefaults(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}

	// legacy endpoint responds with the bare message
	return c.JSON(http.StatusOK, message)
}

// ResetPost resets customer collection to example data
// @Summary     Reset customers
// @Description Replaces all customers with the fixed sample dataset
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200 {object} countResponse
// @Failure     500 {object} errorResponse
// @Router      /customers/reset [post]
func (h *CustomerHTTPHandler) ResetPost(c echo.Context) error {
	message, err := h.customerSvc.ResetToDefaults(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &countResponse{Success: true, Message: message, Count: 3})
}

// Seed replaces all customers with the provided records
// @Summary     Seed customers
// @Description Replaces all customers with provided records (or the sample dataset when body is empty), reassigning ids from 1
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		customers body	   []seedCustomer false "Customers to seed"
// @Success     200       {object} countResponse
// @Failure     400       {object} errorResponse
// @Failure     500       {object} errorResponse
// @Router      /customers/seed [post]
func (h *CustomerHTTPHandler) Seed(c echo.Context) error {
	var records []seedCustomer
	if err := c.Bind(&records); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var customers []*model.Customer
	if len(records) == 0 {
		customers = model.SampleCustomers()
	} else {
		customers = make([]*model.Customer, 0, len(records))
		for i := range records {
			if err := c.Validate(&records[i]); err != nil {
				return err
			}
			customers = append(customers, &model.Customer{
				FirstName: records[i].FirstName,
				LastName:  records[i].LastName,
				Email:     records[i].Email,
				Phone:     records[i].Phone,
				Address:   records[i].Address,
			})
		}
	}

	count, err := h.customerSvc.Seed(c.Request().Context(), customers)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, &countResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully inserted %d sample customers", count),
		Count:   count,
	})
}

// respondError maps the closed error set to transport status codes and the
// failure envelope. Anything outside the set is a server error.
func (h *CustomerHTTPHandler) respondError(c echo.Context, err error) error {
	var (
		invalidIDErr  *apperrors.InvalidIDErr
		notFoundErr   *apperrors.NotFoundErr
		duplicateErr  *apperrors.DuplicateEntryErr
		validationErr *apperrors.ValidationErr
	)

	switch {
	case errors.As(err, &invalidIDErr):
		return c.JSON(http.StatusBadRequest, &errorResponse{Error: invalidIDErr.Label(), Message: invalidIDErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, &errorResponse{Error: notFoundErr.Label(), Message: notFoundErr.Error()})
	case errors.As(err, &duplicateErr):
		return c.JSON(http.StatusBadRequest, &errorResponse{Error: duplicateErr.Label(), Message: duplicateErr.Error()})
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Error:   validationErr.Label(),
			Message: validationErr.Error(),
			Errors:  validationErr.Violations(),
		})
	default:
		h.logger.Errorf("error occurred on request processing - %v", err)
		return c.JSON(http.StatusInternalServerError, &errorResponse{Error: "Server Error", Message: err.Error()})
	}
}
