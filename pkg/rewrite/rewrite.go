// Package rewrite updates property values in descriptor files in place.
//
// For every property name the text between <name> and the next </name> on
// the same line is replaced with the new value. The rest of the file,
// including formatting and comments, is left byte for byte unchanged.
package rewrite

import (
	"maps"
	"os"
	"regexp"
	"slices"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
)

type rule struct {
	pattern *regexp.Regexp
	value   []byte
}

// Rewriter applies a fixed set of property values to descriptors.
// It is safe for concurrent use.
type Rewriter struct {
	rules []rule
}

// New compiles a Rewriter for props, a property name to value map.
// Properties are applied in name order.
func New(props map[string]string) *Rewriter {
	rw := &Rewriter{}
	for _, name := range slices.Sorted(maps.Keys(props)) {
		quoted := regexp.QuoteMeta(name)
		rw.rules = append(rw.rules, rule{
			pattern: regexp.MustCompile(`(<` + quoted + `>)(.*?)(</` + quoted + `>)`),
			value:   []byte(props[name]),
		})
	}
	return rw
}

// Rewrite returns content with every property element's text replaced.
func (rw *Rewriter) Rewrite(content []byte) []byte {
	for _, r := range rw.rules {
		content = r.pattern.ReplaceAllFunc(content, func(m []byte) []byte {
			sub := r.pattern.FindSubmatch(m)
			out := make([]byte, 0, len(sub[1])+len(r.value)+len(sub[3]))
			out = append(out, sub[1]...)
			out = append(out, r.value...)
			return append(out, sub[3]...)
		})
	}
	return content
}

// Apply rewrites the file at path and reports whether its content changed.
// An unchanged file is not written.
func (rw *Rewriter) Apply(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "stat %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "read %s", path)
	}

	updated := rw.Rewrite(content)
	if string(updated) == string(content) {
		return false, nil
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
	}
	return true, nil
}

// Apply rewrites the file at path with props. See [Rewriter.Apply].
func Apply(path string, props map[string]string) (bool, error) {
	return New(props).Apply(path)
}
