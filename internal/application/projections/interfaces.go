package projections

import (
	"context"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// CustomerAPI is the slice of the upstream client needed by customer queries.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
}

// TrainingAPI is the slice of the upstream client needed by training queries.
type TrainingAPI interface {
	ListTrainings(ctx context.Context) ([]training.Training, error)
	GetCustomerByRef(ctx context.Context, ref hyperlink.Ref) (customer.Customer, error)
}

// CalendarAPI is the slice of the upstream client needed by the calendar
// query. The denormalized endpoint is preferred; the envelope endpoint plus
// enrichment is the fallback when it is unavailable.
type CalendarAPI interface {
	TrainingAPI
	ListTrainingsWithCustomers(ctx context.Context) ([]training.Training, error)
}
