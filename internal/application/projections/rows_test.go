package projections

import (
	"testing"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// TestFormatDate_UTCPolicy verifies the fixed dd.MM.yyyy / HH:mm rendering
// in UTC, from the same underlying timestamp.
func TestFormatDate_UTCPolicy(t *testing.T) {
	iso := "2024-03-05T14:30:00.000Z"
	if got := FormatDate(iso); got != "05.03.2024" {
		t.Fatalf("date=%q want 05.03.2024", got)
	}
	if got := FormatTime(iso); got != "14:30" {
		t.Fatalf("time=%q want 14:30", got)
	}

	// Offset timestamps normalize to UTC in both columns.
	offset := "2024-03-05T23:30:00+02:00"
	if got := FormatDate(offset); got != "05.03.2024" {
		t.Fatalf("date=%q want 05.03.2024", got)
	}
	if got := FormatTime(offset); got != "21:30" {
		t.Fatalf("time=%q want 21:30", got)
	}
}

// TestFormatDate_Fallbacks verifies "-" for absent and the invalid literals
// for unparseable values, with no panic.
func TestFormatDate_Fallbacks(t *testing.T) {
	if got := FormatDate(""); got != AbsentValue {
		t.Fatalf("date=%q want %q", got, AbsentValue)
	}
	if got := FormatTime(""); got != AbsentValue {
		t.Fatalf("time=%q want %q", got, AbsentValue)
	}
	if got := FormatDate("yesterday"); got != InvalidDate {
		t.Fatalf("date=%q want %q", got, InvalidDate)
	}
	if got := FormatTime("yesterday"); got != InvalidTime {
		t.Fatalf("time=%q want %q", got, InvalidTime)
	}
}

// TestCustomerRows_ExtractsIDFromSelfLink verifies the synthesized id.
func TestCustomerRows_ExtractsIDFromSelfLink(t *testing.T) {
	customers := []customer.Customer{{
		Firstname: "Liisa",
		Lastname:  "Virtanen",
		Links:     hyperlink.Links{Self: hyperlink.Ref{Href: "http://x/api/customers/42"}},
	}}
	rows := CustomerRows(customers)
	if rows[0].ID != "42" || rows[0].FallbackID {
		t.Fatalf("id=%q fallback=%v want 42/false", rows[0].ID, rows[0].FallbackID)
	}
	if rows[0].SelfHref != "http://x/api/customers/42" {
		t.Fatalf("selfHref=%q", rows[0].SelfHref)
	}
}

// TestCustomerRows_MalformedSelfLink_MarksFallback verifies the degraded
// mode is visible on the row.
func TestCustomerRows_MalformedSelfLink_MarksFallback(t *testing.T) {
	rows := CustomerRows([]customer.Customer{{Firstname: "Liisa"}})
	if !rows[0].FallbackID {
		t.Fatal("expected fallback id flag")
	}
	if rows[0].ID == "" {
		t.Fatal("fallback id must still be set")
	}
}

// TestTrainingRows_ProjectsAllColumns verifies the full row shape.
func TestTrainingRows_ProjectsAllColumns(t *testing.T) {
	enriched := []enrichment.Enriched{{
		Training: training.Training{
			Date:     "2024-03-05T14:30:00.000Z",
			Duration: 60,
			Activity: "Zumba",
			Links:    hyperlink.Links{Self: hyperlink.Ref{Href: "/api/trainings/7"}},
		},
		CustomerName: "Liisa Virtanen",
	}}
	rows := TrainingRows(enriched)
	r := rows[0]
	if r.ID != "7" || r.Date != "05.03.2024" || r.Time != "14:30" ||
		r.Activity != "Zumba" || r.Duration != 60 || r.CustomerName != "Liisa Virtanen" {
		t.Fatalf("row=%+v", r)
	}
}
