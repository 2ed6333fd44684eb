package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tidwall/gjson"
)

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trainerdesk_upstream_requests_total",
	Help: "Requests issued against the upstream REST service.",
}, []string{"method", "outcome"})

// Client talks to the upstream personal-trainer REST service.
// A single failed attempt is terminal for that fetch cycle; the caller
// decides whether to show a page error. No retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given collection base, e.g.
// "https://customer-rest-service.example.com/api".
// PRE: baseURL is non-empty
// POST: client is ready for use; transport timeouts are the http.Client defaults
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// BaseURL returns the configured collection base.
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON performs a GET and returns the raw body.
// POST: non-2xx status or transport failure yields a *NetworkError
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues("GET", "transport_error").Inc()
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamRequests.WithLabelValues("GET", "bad_status").Inc()
		return nil, &NetworkError{URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequests.WithLabelValues("GET", "transport_error").Inc()
		return nil, &NetworkError{URL: url, Err: err}
	}
	upstreamRequests.WithLabelValues("GET", "ok").Inc()
	return body, nil
}

// unwrapEmbedded validates the hypermedia envelope and returns the raw JSON
// of the _embedded.<collection> array.
// POST: absence of _embedded or a non-array collection yields a *ShapeError
func unwrapEmbedded(url string, body []byte, collection string) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ShapeError{URL: url, Detail: "body is not valid JSON"}
	}
	v := gjson.GetBytes(body, "_embedded."+collection)
	if !v.Exists() {
		return nil, &ShapeError{URL: url, Detail: "_embedded." + collection + " is missing"}
	}
	if !v.IsArray() {
		return nil, &ShapeError{URL: url, Detail: "_embedded." + collection + " is not an array"}
	}
	return []byte(v.Raw), nil
}

// send issues a write (POST/PUT/DELETE) with a JSON body.
// POST: non-2xx status or transport failure yields a *MutationError
func (c *Client) send(ctx context.Context, op, method, url string, payload any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &MutationError{Op: op, URL: url, Err: fmt.Errorf("encoding payload: %w", err)}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &MutationError{Op: op, URL: url, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(method, "transport_error").Inc()
		return &MutationError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamRequests.WithLabelValues(method, "bad_status").Inc()
		return &MutationError{Op: op, URL: url, Status: resp.StatusCode}
	}
	upstreamRequests.WithLabelValues(method, "ok").Inc()
	return nil
}
