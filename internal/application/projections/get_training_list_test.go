package projections

import (
	"context"
	"errors"
	"testing"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/application/listutil"
	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

type mockTrainingAPI struct {
	trainings []training.Training
	customers map[string]customer.Customer // by href
	listErr   error
}

// ListTrainings returns the seeded trainings or the seeded error.
// PRE: none
// POST: returns the seeded collection
func (m *mockTrainingAPI) ListTrainings(_ context.Context) ([]training.Training, error) {
	return m.trainings, m.listErr
}

// GetCustomerByRef resolves a seeded customer by href.
// PRE: ref carries the customer href
// POST: returns the seeded customer or an error for unknown hrefs
func (m *mockTrainingAPI) GetCustomerByRef(_ context.Context, ref hyperlink.Ref) (customer.Customer, error) {
	if c, ok := m.customers[ref.Href]; ok {
		return c, nil
	}
	return customer.Customer{}, errors.New("not found")
}

func seedTraining(id, iso, activity string, duration int, customerHref string) training.Training {
	return training.Training{
		Date:     iso,
		Duration: duration,
		Activity: activity,
		Links: hyperlink.Links{
			Self:     hyperlink.Ref{Href: "/api/trainings/" + id},
			Customer: hyperlink.Ref{Href: customerHref},
		},
	}
}

// TestQueryGetTrainingList_EnrichesWithCustomerNames verifies names resolve
// and a failing lookup yields Unknown in that slot only.
func TestQueryGetTrainingList_EnrichesWithCustomerNames(t *testing.T) {
	api := &mockTrainingAPI{
		trainings: []training.Training{
			seedTraining("1", "2024-03-05T10:00:00Z", "Spinning", 45, "/api/customers/1"),
			seedTraining("2", "2024-03-06T11:00:00Z", "Zumba", 60, "/api/customers/404"),
			seedTraining("3", "2024-03-07T12:00:00Z", "Crossfit", 30, "/api/customers/1"),
		},
		customers: map[string]customer.Customer{
			"/api/customers/1": {Firstname: "Liisa", Lastname: "Virtanen"},
		},
	}

	res, err := QueryGetTrainingList(context.Background(), GetTrainingListQuery{}, GetTrainingListDeps{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows=%d want 3", len(res.Rows))
	}
	if res.Rows[0].CustomerName != "Liisa Virtanen" {
		t.Fatalf("row 0 name=%q", res.Rows[0].CustomerName)
	}
	if res.Rows[1].CustomerName != enrichment.UnknownCustomer {
		t.Fatalf("row 1 name=%q want Unknown", res.Rows[1].CustomerName)
	}
	if res.Rows[2].CustomerName != "Liisa Virtanen" {
		t.Fatalf("row 2 name=%q", res.Rows[2].CustomerName)
	}
	// Input order preserved without a sort column.
	if res.Rows[0].ID != "1" || res.Rows[1].ID != "2" || res.Rows[2].ID != "3" {
		t.Fatalf("order not preserved: %+v", res.Rows)
	}
}

// TestQueryGetTrainingList_SortsByDateChronologically verifies date sorting
// uses the ISO timestamp, not the rendered dd.MM.yyyy string.
func TestQueryGetTrainingList_SortsByDateChronologically(t *testing.T) {
	// Rendered strings would sort 01.04 < 28.03; chronological order is the
	// other way around.
	api := &mockTrainingAPI{
		trainings: []training.Training{
			seedTraining("1", "2024-04-01T10:00:00Z", "A", 30, "/api/customers/404"),
			seedTraining("2", "2024-03-28T10:00:00Z", "B", 30, "/api/customers/404"),
		},
	}

	q := GetTrainingListQuery{List: listutil.ListParams{SortParams: listutil.SortParams{Sort: "date", Dir: "asc"}}}
	res, err := QueryGetTrainingList(context.Background(), q, GetTrainingListDeps{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rows[0].Date != "28.03.2024" || res.Rows[1].Date != "01.04.2024" {
		t.Fatalf("chronological sort wrong: %q, %q", res.Rows[0].Date, res.Rows[1].Date)
	}
}

// TestQueryGetTrainingList_FetchError_Propagates verifies collection fetch
// failures reach the page level.
func TestQueryGetTrainingList_FetchError_Propagates(t *testing.T) {
	api := &mockTrainingAPI{listErr: errors.New("boom")}
	_, err := QueryGetTrainingList(context.Background(), GetTrainingListQuery{}, GetTrainingListDeps{API: api})
	if err == nil {
		t.Fatal("expected error")
	}
}
