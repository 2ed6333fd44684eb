package restapi

import (
	"context"
	"encoding/json"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
)

// CustomerPayload is the JSON body for customer create and update requests.
type CustomerPayload struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Streetaddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// ListCustomers fetches the customer collection.
// POST: returns the embedded customers, each still carrying raw _links;
// *NetworkError on transport/status failure, *ShapeError on a bad envelope
func (c *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	url := c.baseURL + "/customers"
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	raw, err := unwrapEmbedded(url, body, "customers")
	if err != nil {
		return nil, err
	}
	var customers []customer.Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, &ShapeError{URL: url, Detail: "customers array: " + err.Error()}
	}
	return customers, nil
}

// GetCustomerByRef fetches a single customer via its hyperlink reference.
// Used by the enrichment pipeline for per-training lookups.
func (c *Client) GetCustomerByRef(ctx context.Context, ref hyperlink.Ref) (customer.Customer, error) {
	body, err := c.getJSON(ctx, ref.Href)
	if err != nil {
		return customer.Customer{}, err
	}
	var cust customer.Customer
	if err := json.Unmarshal(body, &cust); err != nil {
		return customer.Customer{}, &ShapeError{URL: ref.Href, Detail: "customer: " + err.Error()}
	}
	return cust, nil
}

// CreateCustomer POSTs a new customer to the collection endpoint.
// POST: *MutationError on failure; the caller re-fetches on success
func (c *Client) CreateCustomer(ctx context.Context, p CustomerPayload) error {
	return c.send(ctx, "create customer", "POST", c.baseURL+"/customers", p)
}

// UpdateCustomer PUTs the full replacement record to the customer's own
// self href.
func (c *Client) UpdateCustomer(ctx context.Context, self hyperlink.Ref, p CustomerPayload) error {
	return c.send(ctx, "update customer", "PUT", self.Href, p)
}

// DeleteCustomer DELETEs the customer by identifier. The upstream service
// cascade-deletes the customer's trainings; callers must have warned the
// user beforehand.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.send(ctx, "delete customer", "DELETE", c.baseURL+"/customers/"+id, nil)
}
