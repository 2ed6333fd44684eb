package restapi

import (
	"context"
	"encoding/json"
	"strconv"

	"trainerdesk/internal/domain/customer"
	"trainerdesk/internal/domain/hyperlink"
	"trainerdesk/internal/domain/training"
)

// TrainingPayload is the JSON body for training create requests. Customer is
// the owning customer's self href, as the upstream service expects.
type TrainingPayload struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"`
}

// denormalizedTraining is the item shape of the /gettrainings endpoint: a
// flat array with a numeric id and an embedded customer, no hypermedia
// envelope. It is normalized into training.Training at this boundary so the
// rest of the code sees one canonical shape.
type denormalizedTraining struct {
	ID       int64              `json:"id"`
	Date     string             `json:"date"`
	Duration int                `json:"duration"`
	Activity string             `json:"activity"`
	Customer *customer.Customer `json:"customer"`
}

// ListTrainings fetches the training collection (hypermedia envelope).
// POST: returns the embedded trainings, each still carrying raw _links;
// customers are NOT resolved — run the enrichment pipeline for that
func (c *Client) ListTrainings(ctx context.Context) ([]training.Training, error) {
	url := c.baseURL + "/trainings"
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	raw, err := unwrapEmbedded(url, body, "trainings")
	if err != nil {
		return nil, err
	}
	var trainings []training.Training
	if err := json.Unmarshal(raw, &trainings); err != nil {
		return nil, &ShapeError{URL: url, Detail: "trainings array: " + err.Error()}
	}
	return trainings, nil
}

// ListTrainingsWithCustomers fetches the denormalized read endpoint used by
// the calendar view: a flat array with the customer embedded per item.
// POST: returns trainings with Customer set and a synthesized self link;
// *ShapeError if the body is not a JSON array
func (c *Client) ListTrainingsWithCustomers(ctx context.Context) ([]training.Training, error) {
	url := c.baseURL + "/gettrainings"
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	var items []denormalizedTraining
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &ShapeError{URL: url, Detail: "expected a flat training array: " + err.Error()}
	}
	trainings := make([]training.Training, len(items))
	for i, it := range items {
		trainings[i] = training.Training{
			Date:     it.Date,
			Duration: it.Duration,
			Activity: it.Activity,
			Customer: it.Customer,
			Links: hyperlink.Links{
				Self: hyperlink.Ref{Href: c.baseURL + "/trainings/" + strconv.FormatInt(it.ID, 10)},
			},
		}
	}
	return trainings, nil
}

// CreateTraining POSTs a new training session to the collection endpoint.
func (c *Client) CreateTraining(ctx context.Context, p TrainingPayload) error {
	return c.send(ctx, "create training", "POST", c.baseURL+"/trainings", p)
}

// DeleteTraining DELETEs the training by identifier.
func (c *Client) DeleteTraining(ctx context.Context, id string) error {
	return c.send(ctx, "delete training", "DELETE", c.baseURL+"/trainings/"+id, nil)
}
