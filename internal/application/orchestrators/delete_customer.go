package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"trainerdesk/internal/application/projections"
)

// CustomerDeleteWarning is shown before a customer delete is confirmed: the
// upstream service cascade-deletes the customer's training sessions, so the
// user must be told what they are about to lose.
const CustomerDeleteWarning = "Deleting this customer also deletes all of their training sessions. This cannot be undone."

// DeleteCustomerInput carries the delete confirmation.
type DeleteCustomerInput struct {
	CustomerID string
	Confirmed  bool
}

// DeleteCustomerDeps holds dependencies for DeleteCustomer.
type DeleteCustomerDeps struct {
	API CustomerWriteAPI
}

// ExecuteDeleteCustomer DELETEs the customer, then re-fetches the collection.
// The server cascades the customer's trainings; this orchestrator does not
// delete them itself, but it refuses to run without explicit confirmation.
// PRE: input.Confirmed is true (the cascade warning was acknowledged)
// POST: on success, returns refreshed rows without the deleted customer;
// *MutationError on write failure
func ExecuteDeleteCustomer(ctx context.Context, input DeleteCustomerInput, deps DeleteCustomerDeps) ([]projections.CustomerRow, error) {
	if input.CustomerID == "" {
		return nil, errors.New("customer id is missing")
	}
	if !input.Confirmed {
		return nil, errors.New("delete must be confirmed")
	}

	if err := deps.API.DeleteCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	slog.Info("customer_deleted", "id", input.CustomerID)

	customers, err := deps.API.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return projections.CustomerRows(customers), nil
}
