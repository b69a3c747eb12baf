package pom

import (
	"regexp"
	"strings"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
)

// ProjectVersion is the property every descriptor defines implicitly.
const ProjectVersion = "project.version"

// propertyRef matches a ${name} reference at the start of a version string.
var propertyRef = regexp.MustCompile(`^\$\{(.*?)\}`)

// Properties maps property names to their literal values for one descriptor.
type Properties map[string]string

func newProperties(pom *pomProject) Properties {
	props := make(Properties)

	version := strings.TrimSpace(pom.Version)
	if version == "" && pom.Parent != nil {
		version = strings.TrimSpace(pom.Parent.Version)
	}
	props[ProjectVersion] = version

	// Later blocks and later entries win.
	for _, block := range pom.Properties {
		for _, p := range block.Entries {
			props[p.XMLName.Local] = strings.TrimSpace(p.Value)
		}
	}
	return props
}

// Resolve returns the literal for a declared version. When v starts with a
// ${name} reference the whole string is replaced by the value of name, and
// name is returned as variable. The value is not expanded again.
//
// Referencing a property that is not defined returns an error with code
// [perrors.ErrCodeUnresolvedProperty].
func (p Properties) Resolve(v string) (value, variable string, err error) {
	m := propertyRef.FindStringSubmatch(v)
	if m == nil {
		return v, "", nil
	}
	name := m[1]
	value, ok := p[name]
	if !ok {
		return "", name, perrors.New(perrors.ErrCodeUnresolvedProperty, "property %q is not defined", name)
	}
	return value, name, nil
}
