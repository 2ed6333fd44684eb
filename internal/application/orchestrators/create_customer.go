package orchestrators

import (
	"context"
	"log/slog"

	"trainerdesk/internal/adapters/restapi"
	"trainerdesk/internal/application/projections"
	"trainerdesk/internal/domain/customer"
)

// CreateCustomerInput carries the customer form fields.
type CreateCustomerInput struct {
	Firstname     string
	Lastname      string
	Streetaddress string
	Postcode      string
	City          string
	Email         string
	Phone         string
}

// CreateCustomerDeps holds dependencies for CreateCustomer.
type CreateCustomerDeps struct {
	API CustomerWriteAPI
}

// ExecuteCreateCustomer validates the form, POSTs the new customer, then
// re-fetches the collection. Consistency is read-your-writes by re-read:
// the returned rows come from a fresh fetch, never from optimistic insertion.
// PRE: deps.API is non-nil
// POST: on success, returns the refreshed customer rows containing the new
// record exactly once; *MutationError on write failure
func ExecuteCreateCustomer(ctx context.Context, input CreateCustomerInput, deps CreateCustomerDeps) ([]projections.CustomerRow, error) {
	c := customer.Customer{
		Firstname:     input.Firstname,
		Lastname:      input.Lastname,
		Streetaddress: input.Streetaddress,
		Postcode:      input.Postcode,
		City:          input.City,
		Email:         input.Email,
		Phone:         input.Phone,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := restapi.CustomerPayload{
		Firstname:     c.Firstname,
		Lastname:      c.Lastname,
		Streetaddress: c.Streetaddress,
		Postcode:      c.Postcode,
		City:          c.City,
		Email:         c.Email,
		Phone:         c.Phone,
	}
	if err := deps.API.CreateCustomer(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("customer_created", "name", c.FullName())

	customers, err := deps.API.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return projections.CustomerRows(customers), nil
}
