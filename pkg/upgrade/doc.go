// Package upgrade computes available upgrades for declared dependencies.
//
// # Advice
//
// [Advise] compares one declared version against a [version.Index] and
// reports three candidates:
//
//   - the newest release of the same major.minor line
//   - the newest release of the same major line
//   - the newest release of every greater major line, ascending by major
//
// A dependency is upgradeable when any candidate differs from the declared
// version. Missing lines degrade gracefully: an absent minor line reports the
// line itself ("1.2"), an absent major line reports [NoData].
//
// # Checking Many Dependencies
//
// [Checker] fetches one index per distinct coordinate over a bounded pool of
// workers and advises every dependency against it. A coordinate that cannot
// be fetched is marked unavailable and never stops the run:
//
//	checker, err := upgrade.NewChecker(client, upgrade.Options{Concurrency: 4})
//	results, err := checker.Check(ctx, deps)
//	for _, r := range results {
//	    if r.Unavailable() {
//	        continue
//	    }
//	    for _, line := range r.Report.Lines() {
//	        fmt.Println(line)
//	    }
//	}
//
// Results keep the order of the input dependencies regardless of the order
// in which fetches complete.
//
// [version.Index]: github.com/matzehuels/pomcheck/pkg/version.Index
package upgrade
