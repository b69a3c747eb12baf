package upgrade

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/observability"
	"github.com/matzehuels/pomcheck/pkg/pom"
	"github.com/matzehuels/pomcheck/pkg/version"
)

const (
	// DefaultConcurrency is the number of index fetches in flight at once.
	DefaultConcurrency = 4

	// memoSize bounds the number of coordinates remembered by a Checker.
	memoSize = 4096
)

// IndexFetcher returns the version index of a coordinate.
// [maven.Client] implements it.
//
// [maven.Client]: github.com/matzehuels/pomcheck/pkg/integrations/maven.Client
type IndexFetcher interface {
	FetchIndex(ctx context.Context, groupID, artifactID string) (version.Index, error)
}

// Options configures a [Checker].
type Options struct {
	// Concurrency limits parallel fetches. Zero or negative selects
	// DefaultConcurrency; 1 fetches sequentially.
	Concurrency int

	// Logger receives diagnostics for unavailable coordinates. Nil discards.
	Logger func(string, ...any)
}

// Result pairs a dependency with its advice. When Err is non-nil the
// coordinate was unavailable and Report is the zero value.
type Result struct {
	Dependency pom.Dependency
	Report     Report
	Err        error
}

// Unavailable reports whether no advice could be computed.
func (r Result) Unavailable() bool { return r.Err != nil }

type fetched struct {
	index version.Index
	err   error
}

// Checker advises dependencies against indexes fetched from a repository.
//
// Each distinct coordinate is fetched once for the lifetime of the Checker,
// including coordinates whose fetch failed. A Checker is safe for
// concurrent use.
type Checker struct {
	fetcher     IndexFetcher
	concurrency int
	logger      func(string, ...any)
	memo        *lru.Cache[string, fetched]
}

// NewChecker creates a Checker that fetches indexes through fetcher.
func NewChecker(fetcher IndexFetcher, opts Options) (*Checker, error) {
	memo, err := lru.New[string, fetched](memoSize)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "create index memo")
	}
	c := &Checker{
		fetcher:     fetcher,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		memo:        memo,
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}
	if c.logger == nil {
		c.logger = func(string, ...any) {}
	}
	return c, nil
}

// Check advises every dependency and returns one Result per dependency in
// input order.
//
// Dependencies without a groupId or artifactId are not fetched and come back unavailable
// with code [perrors.ErrCodeInvalidCoordinate]. A failed fetch marks only its
// own coordinate unavailable. The returned error is non-nil only when ctx is
// canceled.
func (c *Checker) Check(ctx context.Context, deps []pom.Dependency) ([]Result, error) {
	start := time.Now()
	hooks := observability.Check()

	coords, order := distinct(deps)
	hooks.OnCheckStart(ctx, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, coord := range order {
		entry := coords[coord]
		g.Go(func() error {
			f, err := c.index(gctx, entry.GroupID, entry.ArtifactID)
			if err != nil {
				return err
			}
			entry.result = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, len(deps))
	upgradeable, unavailable := 0, 0
	for i, dep := range deps {
		results[i] = Result{Dependency: dep}
		if dep.GroupID == "" || dep.ArtifactID == "" {
			results[i].Err = perrors.New(perrors.ErrCodeInvalidCoordinate, "incomplete coordinate %q", dep.Coordinate())
			c.logger("skipping %q: incomplete coordinate", dep.Coordinate())
			unavailable++
			continue
		}
		f := coords[dep.Coordinate()].result
		if f.err != nil {
			results[i].Err = f.err
			c.logger("unable to find versions for %s, current version %s: %v", dep.Coordinate(), dep.Version, f.err)
			unavailable++
			continue
		}
		results[i].Report = Advise(dep, f.index)
		if results[i].Report.Upgradeable() {
			upgradeable++
		}
	}

	hooks.OnCheckComplete(ctx, upgradeable, unavailable, time.Since(start))
	return results, nil
}

// index returns the memoized fetch of a coordinate, fetching it on a miss.
// Only context cancellation is returned as an error; fetch failures are
// recorded in the result.
func (c *Checker) index(ctx context.Context, groupID, artifactID string) (fetched, error) {
	coord := groupID + ":" + artifactID
	cache := observability.Cache()
	if f, ok := c.memo.Get(coord); ok {
		cache.OnCacheHit(ctx, "index")
		return f, nil
	}
	cache.OnCacheMiss(ctx, "index")

	hooks := observability.Check()
	hooks.OnFetchStart(ctx, coord)
	start := time.Now()

	idx, err := c.fetcher.FetchIndex(ctx, groupID, artifactID)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return fetched{}, err
	}
	hooks.OnFetchComplete(ctx, coord, idx.Len(), time.Since(start), err)

	f := fetched{index: idx, err: err}
	c.memo.Add(coord, f)
	cache.OnCacheSet(ctx, "index", idx.Len())
	return f, nil
}

type coordinate struct {
	GroupID    string
	ArtifactID string
	result     fetched
}

// distinct returns the fetchable coordinates of deps keyed by
// "groupId:artifactId", plus their keys in first-seen order.
func distinct(deps []pom.Dependency) (map[string]*coordinate, []string) {
	coords := make(map[string]*coordinate)
	var order []string
	for _, dep := range deps {
		if dep.GroupID == "" || dep.ArtifactID == "" {
			continue
		}
		key := dep.Coordinate()
		if _, ok := coords[key]; ok {
			continue
		}
		coords[key] = &coordinate{GroupID: dep.GroupID, ArtifactID: dep.ArtifactID}
		order = append(order, key)
	}
	return coords, order
}
