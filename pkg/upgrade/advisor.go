package upgrade

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/pomcheck/pkg/pom"
	"github.com/matzehuels/pomcheck/pkg/version"
)

// NoData is reported as LatestSameMajor when the repository publishes nothing
// in the declared major line.
const NoData = "n/a"

// unsetVersion stands in for a dependency without a declared version.
const unsetVersion = "0.0"

// Report is the upgrade advice for one declared dependency.
type Report struct {
	Dependency pom.Dependency

	// Major and MajorMinor are the bucket keys of the declared version.
	Major      string
	MajorMinor string

	// LatestSameMinor is the newest version of MajorMinor, or MajorMinor
	// itself when that line has no published versions.
	LatestSameMinor string
	// SameMinor is the full MajorMinor bucket, newest first.
	SameMinor []string

	// LatestSameMajor is the newest version of Major, or NoData.
	LatestSameMajor string

	// NextMajors holds the newest version of every greater major line,
	// ascending by major.
	NextMajors []string
}

// Declared returns the declared version.
func (r Report) Declared() string { return r.Dependency.Version }

// Upgradeable reports whether any candidate differs from the declared version.
func (r Report) Upgradeable() bool {
	v := r.Declared()
	return r.LatestSameMinor != v || r.LatestSameMajor != v || len(r.NextMajors) > 0
}

// Advise computes the upgrade candidates for dep from idx.
//
// A declared version without a minor part is looked up in minor line 0, and
// a dependency without a declared version is looked up as 0.0.
func Advise(dep pom.Dependency, idx version.Index) Report {
	v := dep.Version
	if v == "" {
		v = unsetVersion
	}
	major, majorMinor := version.Tokens(v)

	r := Report{
		Dependency:      dep,
		Major:           major,
		MajorMinor:      majorMinor,
		LatestSameMinor: majorMinor,
		LatestSameMajor: NoData,
		SameMinor:       idx.Bucket(majorMinor),
	}
	if latest, ok := idx.Latest(majorMinor); ok {
		r.LatestSameMinor = latest
	}
	if latest, ok := idx.Latest(major); ok {
		r.LatestSameMajor = latest
	}
	r.NextMajors = nextMajors(idx, major)
	return r
}

// nextMajors returns the latest version of each major line above major. A
// non-numeric declared major has no ordering against the index and yields nil.
func nextMajors(idx version.Index, major string) []string {
	current, err := strconv.Atoi(major)
	if err != nil {
		return nil
	}
	var out []string
	for _, key := range idx.Majors() {
		n, _ := strconv.Atoi(key)
		if n <= current {
			continue
		}
		if latest, ok := idx.Latest(key); ok {
			out = append(out, latest)
		}
	}
	return out
}

// Lines renders the report for display: a header naming the artifact and
// declared version, then one indented line per candidate that differs from
// it. A report that is not upgradeable renders no lines.
func (r Report) Lines() []string {
	if !r.Upgradeable() {
		return nil
	}
	declared := r.Declared()
	shown := declared
	if shown == "" {
		shown = "unspecified"
	}

	lines := []string{fmt.Sprintf("%s: using %s", r.Dependency.ArtifactID, shown)}
	if r.LatestSameMinor != declared {
		lines = append(lines, fmt.Sprintf(" -> next %s.x: %s %v", r.MajorMinor, r.LatestSameMinor, r.SameMinor))
	}
	if r.LatestSameMajor != declared {
		lines = append(lines, fmt.Sprintf(" -> next %s.x: %s", r.Major, r.LatestSameMajor))
	}
	if len(r.NextMajors) > 0 {
		lines = append(lines, fmt.Sprintf(" -> next: %v", r.NextMajors))
	}
	return lines
}
