// Package integrations provides the shared HTTP client used by repository
// clients.
//
// # Overview
//
// Each remote repository has its own subpackage built on [Client]:
//
//   - [maven]: Maven repository directory listings
//
// # Client Pattern
//
//	client, err := maven.NewClient(maven.WithTimeout(5 * time.Second))
//	if err != nil {
//	    return err
//	}
//	index, err := client.FetchIndex(ctx, "com.google.guava", "guava")
//
// [Client] handles:
//   - GET requests with default and per-request headers
//   - A bounded per-request timeout ([DefaultTimeout] unless configured)
//   - Status mapping to [ErrNotFound] and [ErrNetwork]
//   - HTTP events reported through [observability.HTTP]
//
// Requests are never retried and responses are never cached; a failure is
// returned to the caller as is.
//
// [maven]: github.com/matzehuels/pomcheck/pkg/integrations/maven
// [observability.HTTP]: github.com/matzehuels/pomcheck/pkg/observability.HTTP
package integrations
