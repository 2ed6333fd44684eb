package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

type mockCalendarAPI struct {
	mockTrainingAPI
	denormalized []training.Training
	denormErr    error
}

// ListTrainingsWithCustomers returns the seeded denormalized trainings.
// PRE: none
// POST: returns the seeded collection or the seeded error
func (m *mockCalendarAPI) ListTrainingsWithCustomers(_ context.Context) ([]training.Training, error) {
	return m.denormalized, m.denormErr
}

// TestQueryGetCalendar_DerivesEvents verifies start/end/title derivation
// from the denormalized endpoint.
func TestQueryGetCalendar_DerivesEvents(t *testing.T) {
	api := &mockCalendarAPI{denormalized: []training.Training{{
		Date:     "2024-03-05T10:00:00.000Z",
		Duration: 45,
		Activity: "Spinning",
		Customer: &customer.Customer{Firstname: "Lasse", Lastname: "Lahtinen"},
		Links:    hyperlink.Links{Self: hyperlink.Ref{Href: "/api/trainings/5"}},
	}}}

	res, err := QueryGetCalendar(context.Background(), GetCalendarDeps{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Events) != 1 {
		t.Fatalf("events=%d want 1", len(res.Events))
	}
	e := res.Events[0]
	if e.Title != "Spinning / Lasse Lahtinen" {
		t.Fatalf("title=%q", e.Title)
	}
	wantStart := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 5, 10, 45, 0, 0, time.UTC)
	if !e.Start.Equal(wantStart) || !e.End.Equal(wantEnd) {
		t.Fatalf("span=%v..%v want %v..%v", e.Start, e.End, wantStart, wantEnd)
	}
}

// TestQueryGetCalendar_SkipsUnparseableDates verifies broken dates are
// dropped rather than rendered as broken events.
func TestQueryGetCalendar_SkipsUnparseableDates(t *testing.T) {
	api := &mockCalendarAPI{denormalized: []training.Training{
		{Date: "garbage", Duration: 30, Activity: "Yoga"},
		{Date: "2024-03-05T10:00:00Z", Duration: 30, Activity: "Pilates",
			Links: hyperlink.Links{Self: hyperlink.Ref{Href: "/api/trainings/2"}}},
	}}

	res, err := QueryGetCalendar(context.Background(), GetCalendarDeps{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].Title != "Pilates" {
		t.Fatalf("events=%+v", res.Events)
	}
}

// TestQueryGetCalendar_FallsBackToEnvelopeEndpoint verifies the envelope +
// enrichment path when the denormalized endpoint fails.
func TestQueryGetCalendar_FallsBackToEnvelopeEndpoint(t *testing.T) {
	api := &mockCalendarAPI{
		denormErr: errors.New("404"),
		mockTrainingAPI: mockTrainingAPI{
			trainings: []training.Training{
				seedTraining("9", "2024-03-05T10:00:00Z", "Crossfit", 60, "/api/customers/1"),
			},
			customers: map[string]customer.Customer{
				"/api/customers/1": {Firstname: "Liisa", Lastname: "Virtanen"},
			},
		},
	}

	res, err := QueryGetCalendar(context.Background(), GetCalendarDeps{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Events) != 1 {
		t.Fatalf("events=%d want 1", len(res.Events))
	}
	if res.Events[0].Title != "Crossfit / Liisa Virtanen" {
		t.Fatalf("title=%q", res.Events[0].Title)
	}
}

// TestQueryGetCalendar_BothEndpointsFail_Propagates verifies a page-level
// error when no source is available.
func TestQueryGetCalendar_BothEndpointsFail_Propagates(t *testing.T) {
	api := &mockCalendarAPI{
		denormErr:       errors.New("404"),
		mockTrainingAPI: mockTrainingAPI{listErr: errors.New("boom")},
	}
	if _, err := QueryGetCalendar(context.Background(), GetCalendarDeps{API: api}); err == nil {
		t.Fatal("expected error")
	}
}
