package projections

import (
	"time"

	"trainerdesk/internal/application/enrichment"
	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
)

// Grid date/time formats. Both columns derive from the same underlying ISO
// timestamp and are normalized to UTC so rendered rows do not depend on the
// server's deployment timezone.
const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// Fallback literals matching the grid's rendering contract.
const (
	AbsentValue = "-"
	InvalidDate = "Invalid date"
	InvalidTime = "Invalid time"
)

// CustomerRow is the flattened, grid-ready representation of a customer.
type CustomerRow struct {
	ID            string `json:"id"`
	FallbackID    bool   `json:"fallbackId,omitempty"`
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Streetaddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SelfHref      string `json:"selfHref"`
}

// TrainingRow is the flattened, grid-ready representation of a training.
type TrainingRow struct {
	ID           string `json:"id"`
	FallbackID   bool   `json:"fallbackId,omitempty"`
	Date         string `json:"date"` // dd.MM.yyyy
	Time         string `json:"time"` // HH:mm, derived from the same date field
	Activity     string `json:"activity"`
	Duration     int    `json:"duration"`
	CustomerName string `json:"customerName"`
}

// CalendarEvent is the calendar-widget event model.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FormatDate renders an ISO timestamp as dd.MM.yyyy (UTC).
// POST: "-" for an absent value, "Invalid date" for an unparseable one;
// never an error
func FormatDate(iso string) string {
	if iso == "" {
		return AbsentValue
	}
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return InvalidDate
	}
	return ts.UTC().Format(dateLayout)
}

// FormatTime renders an ISO timestamp as HH:mm 24-hour (UTC), same fallback
// policy as FormatDate.
func FormatTime(iso string) string {
	if iso == "" {
		return AbsentValue
	}
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return InvalidTime
	}
	return ts.UTC().Format(timeLayout)
}

// CustomerRows projects customers into grid rows. Pure except for the
// identifier-extraction fallback's randomness and its diagnostic log.
func CustomerRows(customers []customer.Customer) []CustomerRow {
	rows := make([]CustomerRow, len(customers))
	for i, c := range customers {
		id, fallback := hyperlink.ResourceID(c.Links.Self)
		rows[i] = CustomerRow{
			ID:            id,
			FallbackID:    fallback,
			Firstname:     c.Firstname,
			Lastname:      c.Lastname,
			Streetaddress: c.Streetaddress,
			Postcode:      c.Postcode,
			City:          c.City,
			Email:         c.Email,
			Phone:         c.Phone,
			SelfHref:      c.Links.Self.Href,
		}
	}
	return rows
}

// TrainingRows projects enriched trainings into grid rows.
func TrainingRows(trainings []enrichment.Enriched) []TrainingRow {
	rows := make([]TrainingRow, len(trainings))
	for i, tr := range trainings {
		id, fallback := hyperlink.ResourceID(tr.Links.Self)
		rows[i] = TrainingRow{
			ID:           id,
			FallbackID:   fallback,
			Date:         FormatDate(tr.Date),
			Time:         FormatTime(tr.Date),
			Activity:     tr.Activity,
			Duration:     tr.Duration,
			CustomerName: tr.CustomerName,
		}
	}
	return rows
}
