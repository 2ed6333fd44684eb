package restapi

import "fmt"

// NetworkError is a transport failure or a non-2xx status on a read request.
type NetworkError struct {
	URL    string
	Status int // 0 when the transport itself failed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s: unexpected status %d", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ShapeError means the response body parsed as JSON but did not match the
// expected envelope or array shape.
type ShapeError struct {
	URL    string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("response %s: invalid shape: %s", e.URL, e.Detail)
}

// MutationError means a create, update or delete request failed. It is always
// surfaced to the user as a blocking alert and never retried.
type MutationError struct {
	Op     string // "create customer", "delete training", ...
	URL    string
	Status int
	Err    error
}

func (e *MutationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s (%s): unexpected status %d", e.Op, e.URL, e.Status)
}

func (e *MutationError) Unwrap() error { return e.Err }
