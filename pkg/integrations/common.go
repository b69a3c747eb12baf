package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single repository request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// JoinURL appends path segments to base, inserting exactly one "/" between
// parts. A trailing slash on the last segment is kept.
func JoinURL(base string, parts ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, p := range parts {
		trimmed := strings.Trim(p, "/")
		if trimmed == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(trimmed)
	}
	if n := len(parts); n > 0 && strings.HasSuffix(parts[n-1], "/") {
		b.WriteByte('/')
	}
	return b.String()
}
