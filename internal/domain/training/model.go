package training

import (
	"errors"
	"strings"
	"time"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
)

// MaxActivityLength bounds the free-text activity label.
const MaxActivityLength = 200

// Training represents a training session as served by the upstream API.
// Date is the raw ISO-8601 timestamp string; it stays a string until
// projection so that an unparseable value can still be rendered as
// "Invalid date" instead of failing the whole fetch.
type Training struct {
	Date     string          `json:"date"`
	Duration int             `json:"duration"` // minutes
	Activity string          `json:"activity"`
	Links    hyperlink.Links `json:"_links"`

	// Customer is set by the denormalized endpoint or by enrichment.
	Customer *customer.Customer `json:"customer,omitempty"`
}

// Validate checks form-level invariants before a create is sent.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (t *Training) Validate() error {
	if strings.TrimSpace(t.Activity) == "" {
		return errors.New("activity cannot be empty")
	}
	if len(t.Activity) > MaxActivityLength {
		return errors.New("activity cannot exceed 200 characters")
	}
	if t.Duration < 0 {
		return errors.New("duration cannot be negative")
	}
	if _, err := time.Parse(time.RFC3339, t.Date); err != nil {
		return errors.New("date must be an ISO-8601 timestamp")
	}
	return nil
}

// Start parses the session start time.
// PRE: none
// POST: returns the parsed time, or an error for absent/unparseable dates
func (t *Training) Start() (time.Time, error) {
	return time.Parse(time.RFC3339, t.Date)
}

// Span derives the calendar interval of the session.
// PRE: none
// POST: end = start + Duration minutes; error for absent/unparseable dates
// INVARIANT: a zero Duration yields end == start
func (t *Training) Span() (start, end time.Time, err error) {
	start, err = t.Start()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.Add(time.Duration(t.Duration) * time.Minute)
	return start, end, nil
}

// EventTitle composes the calendar event title: the activity alone, or
// "activity / Firstname Lastname" when the related customer is known.
func (t *Training) EventTitle() string {
	if t.Customer != nil {
		if name := t.Customer.FullName(); name != "" {
			return t.Activity + " / " + name
		}
	}
	return t.Activity
}
