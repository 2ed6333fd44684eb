package hyperlink

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Ref is a hypermedia link reference as returned by the upstream API.
type Ref struct {
	Href string `json:"href"`
}

// Links is the _links map carried by every upstream resource.
type Links struct {
	Self     Ref `json:"self"`
	Customer Ref `json:"customer,omitempty"`
	Training Ref `json:"training,omitempty"`
}

// ResourceID extracts the resource identifier from a self-referencing link.
// The identifier is the final /-delimited path segment of the href.
// PRE: none (malformed input is handled, never propagated)
// POST: returns (id, false) for a well-formed href; for an empty href or one
// without a usable final segment, returns (freshUUID, true). The fallback is
// unique per call but NOT stable across calls for the same resource, so
// callers must treat fallback=true as a degraded mode.
func ResourceID(ref Ref) (id string, fallback bool) {
	href := strings.TrimRight(ref.Href, "/")
	if href != "" {
		if i := strings.LastIndex(href, "/"); i >= 0 && i < len(href)-1 {
			return href[i+1:], false
		}
	}
	slog.Warn("hyperlink_id_fallback", "href", ref.Href)
	return uuid.New().String(), true
}
