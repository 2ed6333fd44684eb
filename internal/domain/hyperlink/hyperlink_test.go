package hyperlink

import "testing"

// TestResourceID_ValidHref_ReturnsFinalSegment verifies extraction of the id
// from absolute and relative hrefs.
func TestResourceID_ValidHref_ReturnsFinalSegment(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"http://localhost:8080/api/customers/42", "42"},
		{"/api/trainings/7", "7"},
		{"https://example.com/api/customers/42/", "42"},
		{"api/customers/abc-123", "abc-123"},
	}
	for _, c := range cases {
		id, fallback := ResourceID(Ref{Href: c.href})
		if fallback {
			t.Fatalf("href %q: unexpected fallback", c.href)
		}
		if id != c.want {
			t.Fatalf("href %q: id=%q want %q", c.href, id, c.want)
		}
	}
}

// TestResourceID_MalformedHref_FallsBackToUniqueID verifies the degraded mode:
// a syntactically valid identifier is returned and never an error.
func TestResourceID_MalformedHref_FallsBackToUniqueID(t *testing.T) {
	for _, href := range []string{"", "/", "///", "42"} {
		id, fallback := ResourceID(Ref{Href: href})
		if !fallback {
			t.Fatalf("href %q: expected fallback", href)
		}
		if id == "" {
			t.Fatalf("href %q: fallback id is empty", href)
		}
	}
}

// TestResourceID_FallbackIsUniquePerCall verifies two fallback invocations
// never collide.
func TestResourceID_FallbackIsUniquePerCall(t *testing.T) {
	a, _ := ResourceID(Ref{})
	b, _ := ResourceID(Ref{})
	if a == b {
		t.Fatalf("fallback ids collided: %q", a)
	}
}
