package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

type mockResolver struct {
	failHrefs map[string]bool
	delay     time.Duration
	calls     atomic.Int64
}

// GetCustomerByRef returns a customer derived from the href, or an error for
// hrefs marked as failing.
// PRE: ref carries the customer href
// POST: returns a deterministic customer or an error
func (m *mockResolver) GetCustomerByRef(_ context.Context, ref hyperlink.Ref) (customer.Customer, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.failHrefs[ref.Href] {
		return customer.Customer{}, errors.New("lookup failed")
	}
	parts := strings.Split(ref.Href, "/")
	return customer.Customer{Firstname: "Customer", Lastname: parts[len(parts)-1]}, nil
}

func makeTrainings(n int) []training.Training {
	trainings := make([]training.Training, n)
	for i := range trainings {
		trainings[i] = training.Training{
			Activity: "Activity " + strconv.Itoa(i),
			Links: hyperlink.Links{
				Customer: hyperlink.Ref{Href: fmt.Sprintf("/api/customers/%d", i)},
			},
		}
	}
	return trainings
}

// TestEnrichTrainings_OneFailure_OthersPopulated verifies a single failing
// lookup yields the Unknown sentinel for that slot only, in input order.
func TestEnrichTrainings_OneFailure_OthersPopulated(t *testing.T) {
	const n = 5
	const failing = 2
	resolver := &mockResolver{failHrefs: map[string]bool{"/api/customers/2": true}}

	out := EnrichTrainings(context.Background(), makeTrainings(n), resolver)
	if len(out) != n {
		t.Fatalf("out=%d want %d", len(out), n)
	}
	for i, e := range out {
		if e.Activity != "Activity "+strconv.Itoa(i) {
			t.Fatalf("slot %d: order not preserved, activity=%q", i, e.Activity)
		}
		if i == failing {
			if e.CustomerName != UnknownCustomer {
				t.Fatalf("slot %d: name=%q want %q", i, e.CustomerName, UnknownCustomer)
			}
			continue
		}
		if want := "Customer " + strconv.Itoa(i); e.CustomerName != want {
			t.Fatalf("slot %d: name=%q want %q", i, e.CustomerName, want)
		}
	}
}

// TestEnrichTrainings_EmbeddedCustomer_SkipsLookup verifies trainings that
// already carry a customer are not re-fetched.
func TestEnrichTrainings_EmbeddedCustomer_SkipsLookup(t *testing.T) {
	resolver := &mockResolver{}
	trainings := []training.Training{{
		Activity: "Spinning",
		Customer: &customer.Customer{Firstname: "Lasse", Lastname: "Lahtinen"},
	}}

	out := EnrichTrainings(context.Background(), trainings, resolver)
	if got := resolver.calls.Load(); got != 0 {
		t.Fatalf("calls=%d want 0", got)
	}
	if out[0].CustomerName != "Lasse Lahtinen" {
		t.Fatalf("name=%q", out[0].CustomerName)
	}
}

// TestEnrichTrainings_LookupsRunConcurrently verifies the fan-out is issued
// together rather than serially.
func TestEnrichTrainings_LookupsRunConcurrently(t *testing.T) {
	const n = 8
	resolver := &mockResolver{delay: 50 * time.Millisecond}

	startAt := time.Now()
	EnrichTrainings(context.Background(), makeTrainings(n), resolver)
	elapsed := time.Since(startAt)

	// Serial execution would take n*delay = 400ms.
	if elapsed > 300*time.Millisecond {
		t.Fatalf("enrichment took %v, lookups appear serialized", elapsed)
	}
}

// TestEnrichTrainings_EmptyInput verifies the pipeline handles zero trainings.
func TestEnrichTrainings_EmptyInput(t *testing.T) {
	out := EnrichTrainings(context.Background(), nil, &mockResolver{})
	if len(out) != 0 {
		t.Fatalf("out=%d want 0", len(out))
	}
}
