package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"trainerdesk/internal/adapters/restapi"
	"trainerdesk/internal/application/projections"
	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
)

// UpdateCustomerInput carries the edit form: the resource's own self href
// plus the full replacement record.
type UpdateCustomerInput struct {
	SelfHref string
	Fields   CreateCustomerInput
}

// UpdateCustomerDeps holds dependencies for UpdateCustomer.
type UpdateCustomerDeps struct {
	API CustomerWriteAPI
}

// ExecuteUpdateCustomer PUTs the full replacement record to the customer's
// self href, then re-fetches the collection.
// PRE: input.SelfHref addresses an existing customer
// POST: on success, returns the refreshed customer rows; *MutationError on
// write failure
func ExecuteUpdateCustomer(ctx context.Context, input UpdateCustomerInput, deps UpdateCustomerDeps) ([]projections.CustomerRow, error) {
	if input.SelfHref == "" {
		return nil, errors.New("customer link is missing")
	}
	c := customer.Customer{
		Firstname:     input.Fields.Firstname,
		Lastname:      input.Fields.Lastname,
		Streetaddress: input.Fields.Streetaddress,
		Postcode:      input.Fields.Postcode,
		City:          input.Fields.City,
		Email:         input.Fields.Email,
		Phone:         input.Fields.Phone,
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
	if err := deps.API.UpdateCustomer(ctx, hyperlink.Ref{Href: input.SelfHref}, p); err != nil {
		return nil, err
	}
	slog.Info("customer_updated", "href", input.SelfHref)

	customers, err := deps.API.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return projections.CustomerRows(customers), nil
}
