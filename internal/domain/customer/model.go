package customer

import (
	"errors"
	"strings"

	"trainerdesk/internal/domain/hyperlink"
)

// Max length constants.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxPhoneLength   = 40
	MaxAddressLength = 200
)

// Customer represents a customer record as served by the upstream API.
// All attributes are free text; identity lives in Links.Self.
type Customer struct {
	Firstname     string          `json:"firstname"`
	Lastname      string          `json:"lastname"`
	Streetaddress string          `json:"streetaddress"`
	Postcode      string          `json:"postcode"`
	City          string          `json:"city"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Links         hyperlink.Links `json:"_links"`
}

// Validate checks form-level invariants before a create or update is sent.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Firstname) == "" {
		return errors.New("first name cannot be empty")
	}
	if strings.TrimSpace(c.Lastname) == "" {
		return errors.New("last name cannot be empty")
	}
	if len(c.Firstname) > MaxNameLength || len(c.Lastname) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if len(c.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return errors.New("email must contain @")
	}
	if len(c.Phone) > MaxPhoneLength {
		return errors.New("phone cannot exceed 40 characters")
	}
	if len(c.Streetaddress) > MaxAddressLength || len(c.City) > MaxAddressLength {
		return errors.New("address cannot exceed 200 characters")
	}
	return nil
}

// FullName returns "Firstname Lastname" for display.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.Firstname + " " + c.Lastname)
}
