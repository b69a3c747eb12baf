// Package version orders and buckets published artifact versions.
//
// # Ordering
//
// [Compare] splits a version at "." and "-" boundaries and compares the
// resulting segments position by position. Two numeric segments compare
// numerically, so "1.9.0" sorts before "1.10.0". As soon as either segment at
// a position is textual ("jre", "RC1", "Final"), the comparison is decided by
// the segment counts of the two full versions instead: the version with more
// segments sorts higher. When every compared position is equal, the longer
// version sorts higher as well.
//
// This is not Maven's ComparableVersion and not semantic versioning. Repository
// version strings carry vendor qualifiers that no single scheme handles, and
// the ordering favours being deterministic over being right for every scheme.
//
// # Buckets
//
// [NewIndex] groups versions by their major token ("2") and their major.minor
// token ("2.4"). Every bucket is sorted newest first with a stable sort, so
// versions that compare equal keep the order in which they were discovered:
//
//	idx := version.NewIndex([]string{"1.2.3", "1.2.4", "1.3.0", "2.0.0"})
//	idx.Bucket("1.2") // [1.2.4 1.2.3]
//	idx.Bucket("1")   // [1.3.0 1.2.4 1.2.3]
//	idx.Latest("2")   // 2.0.0, true
package version
