package maven

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/matzehuels/pomcheck/pkg/buildinfo"
	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/integrations"
	"github.com/matzehuels/pomcheck/pkg/version"
)

// DefaultRepository is the public Maven Central repository root.
const DefaultRepository = "https://repo1.maven.org/maven2/"

// Fetcher retrieves the body of a URL. [integrations.Client] is the
// production implementation; tests substitute canned listings.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchError reports a coordinate whose listing could not be turned into an
// index. Err carries an [perrors.Error] whose code classifies the failure.
type FetchError struct {
	Coordinate string
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Coordinate, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client reads version listings from a Maven repository.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	fetcher Fetcher
	baseURL string
	timeout time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithRepository sets the repository root URL. Defaults to [DefaultRepository].
func WithRepository(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP fetcher.
// It has no effect together with [WithFetcher].
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithFetcher replaces the HTTP transport.
func WithFetcher(f Fetcher) Option {
	return func(c *Client) { c.fetcher = f }
}

// NewClient creates a repository client.
//
// Returns an error with code [perrors.ErrCodeInvalidInput] if the repository
// URL is not http or https.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{baseURL: DefaultRepository, timeout: integrations.DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	if err := perrors.ValidateURL(c.baseURL); err != nil {
		return nil, err
	}
	if c.fetcher == nil {
		c.fetcher = integrations.NewClient(c.timeout, map[string]string{
			"User-Agent": buildinfo.UserAgent(),
		})
	}
	return c, nil
}

// IndexURL returns the directory listing URL for a coordinate: the groupId
// with dots replaced by slashes, then the artifactId.
//
// Example: IndexURL("com.google.guava", "guava") on Maven Central returns
// "https://repo1.maven.org/maven2/com/google/guava/guava/".
func (c *Client) IndexURL(groupID, artifactID string) string {
	return integrations.JoinURL(c.baseURL, strings.ReplaceAll(groupID, ".", "/"), artifactID+"/")
}

// FetchIndex downloads the directory listing of groupID:artifactID and
// buckets every published version into a [version.Index].
//
// One request is made per call. Failures are returned as [*FetchError]:
//   - [perrors.ErrCodeNotFound] when the repository has no such directory
//   - [perrors.ErrCodeTimeout] when the request exceeded its timeout
//   - [perrors.ErrCodeNetwork] for transport failures and other statuses
//   - [perrors.ErrCodeNoVersions] when the listing holds no version links
//
// An invalid coordinate is rejected before any request with
// [perrors.ErrCodeInvalidCoordinate]. Context cancellation is returned
// unclassified so callers can tell it apart from a failed fetch.
func (c *Client) FetchIndex(ctx context.Context, groupID, artifactID string) (version.Index, error) {
	if err := perrors.ValidateCoordinate(groupID, artifactID); err != nil {
		return nil, err
	}

	url := c.IndexURL(groupID, artifactID)
	fail := func(err error) error {
		return &FetchError{Coordinate: groupID + ":" + artifactID, URL: url, Err: err}
	}

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fail(classify(err))
	}

	versions := ParseListing(body)
	if len(versions) == 0 {
		return nil, fail(perrors.New(perrors.ErrCodeNoVersions, "listing contains no versions"))
	}
	return version.NewIndex(versions), nil
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return perrors.Wrap(perrors.ErrCodeNotFound, err, "not published")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "request timed out")
	default:
		return perrors.Wrap(perrors.ErrCodeNetwork, err, "request failed")
	}
}
