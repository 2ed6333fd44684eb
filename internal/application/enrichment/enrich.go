package enrichment

import (
	"context"
	"log/slog"
	"sync"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// UnknownCustomer is the sentinel display name used when a per-training
// customer lookup fails.
const UnknownCustomer = "Unknown"

// CustomerResolver fetches a customer via its hyperlink reference.
type CustomerResolver interface {
	GetCustomerByRef(ctx context.Context, ref hyperlink.Ref) (customer.Customer, error)
}

// Enriched pairs a training with its derived customer display name.
type Enriched struct {
	training.Training
	CustomerName string
}

// EnrichTrainings resolves each training's linked customer concurrently and
// merges the derived display name.
// PRE: resolver is non-nil
// POST: output has len(trainings) entries in input order; entry k has
// CustomerName filled from the lookup, or UnknownCustomer if that lookup
// failed (logged, never escalated); trainings already carrying an embedded
// customer are not re-fetched
// INVARIANT: each lookup writes only its own output slot; one slow or failing
// lookup never blocks or fails the others
func EnrichTrainings(ctx context.Context, trainings []training.Training, resolver CustomerResolver) []Enriched {
	out := make([]Enriched, len(trainings))
	var wg sync.WaitGroup
	for i, tr := range trainings {
		out[i].Training = tr

		if tr.Customer != nil {
			out[i].CustomerName = tr.Customer.FullName()
			continue
		}
		wg.Add(1)
		go func(i int, ref hyperlink.Ref) {
			defer wg.Done()
			cust, err := resolver.GetCustomerByRef(ctx, ref)
			if err != nil {
				slog.Warn("enrichment_lookup_failed", "href", ref.Href, "error", err)
				out[i].CustomerName = UnknownCustomer
				return
			}
			out[i].Customer = &cust
			out[i].CustomerName = cust.FullName()
		}(i, tr.Links.Customer)
	}
	wg.Wait()
	return out
}
