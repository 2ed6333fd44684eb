package orchestrators

import (
	"context"

	"trainerdesk/internal/adapters/restapi"
	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// CustomerWriteAPI is the slice of the upstream client needed by customer
// mutations, including the re-fetch that follows every successful write.
type CustomerWriteAPI interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
	CreateCustomer(ctx context.Context, p restapi.CustomerPayload) error
	UpdateCustomer(ctx context.Context, self hyperlink.Ref, p restapi.CustomerPayload) error
	DeleteCustomer(ctx context.Context, id string) error
}

// TrainingWriteAPI is the slice of the upstream client needed by training
// mutations and the re-fetch + enrichment that follows.
type TrainingWriteAPI interface {
	ListTrainings(ctx context.Context) ([]training.Training, error)
	GetCustomerByRef(ctx context.Context, ref hyperlink.Ref) (customer.Customer, error)
	CreateTraining(ctx context.Context, p restapi.TrainingPayload) error
	DeleteTraining(ctx context.Context, id string) error
}
