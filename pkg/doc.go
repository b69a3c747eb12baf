// Package pkg provides the libraries behind pomcheck, a tool that reports
// available upgrades for the dependencies of Maven projects.
//
// # Architecture
//
// The typical data flow through pomcheck:
//
//	pom.xml files
//	     ↓
//	[pom] package (discover descriptors, resolve properties, yield dependencies)
//	     ↓
//	[upgrade] package (fetch each distinct coordinate once, bounded)
//	     ↓
//	[integrations/maven] package (repository listing → [version] index)
//	     ↓
//	[upgrade.Report] (latest same-minor, same-major and next-major versions)
//
// The [manifest] and [rewrite] packages close the loop: a manifest records
// every dependency and the property holding its version, and the rewriter
// writes edited versions back into the descriptors.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pomcheck/pkg/integrations/maven"
//	    "github.com/matzehuels/pomcheck/pkg/pom"
//	    "github.com/matzehuels/pomcheck/pkg/upgrade"
//	)
//
//	var deps []pom.Dependency
//	for dep, err := range pom.NewParser().Parse("pom.xml") {
//	    if err != nil {
//	        return err
//	    }
//	    deps = append(deps, dep)
//	}
//
//	client, _ := maven.NewClient()
//	checker, _ := upgrade.NewChecker(client, upgrade.Options{})
//	results, _ := checker.Check(context.Background(), deps)
//	for _, r := range results {
//	    for _, line := range r.Report.Lines() {
//	        fmt.Println(line)
//	    }
//	}
//
// # Main Packages
//
//   - [version]: version ordering and major/minor buckets
//   - [pom]: descriptor parsing and discovery
//   - [integrations]: shared HTTP client for repository requests
//   - [integrations/maven]: Maven repository directory listings
//   - [upgrade]: upgrade advice and the concurrent checker
//   - [manifest]: JSON manifest of declared dependencies
//   - [rewrite]: in-place property rewriting
//   - [errors]: structured error codes
//   - [observability]: hooks for check, cache and HTTP events
//   - [buildinfo]: build-time version information
package pkg
