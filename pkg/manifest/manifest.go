package manifest

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/pom"
)

// Entry is the recorded state of one artifact.
type Entry struct {
	// Name is the property holding the version, nil for a literal version.
	Name    *string `json:"name"`
	Version string  `json:"version"`
}

// Manifest maps groupId to artifactId to [Entry].
type Manifest map[string]map[string]Entry

// Build records deps in a new manifest. A coordinate seen more than once
// keeps its last occurrence.
func Build(deps []pom.Dependency) Manifest {
	m := make(Manifest)
	for _, d := range deps {
		m.Add(d)
	}
	return m
}

// Add records d, replacing any earlier entry for the same coordinate.
func (m Manifest) Add(d pom.Dependency) {
	group, ok := m[d.GroupID]
	if !ok {
		group = make(map[string]Entry)
		m[d.GroupID] = group
	}
	e := Entry{Version: d.Version}
	if d.VersionVariable != "" {
		name := d.VersionVariable
		e.Name = &name
	}
	group[d.ArtifactID] = e
}

// Len returns the number of recorded artifacts.
func (m Manifest) Len() int {
	n := 0
	for _, group := range m {
		n += len(group)
	}
	return n
}

// Properties returns the property name to version map of every entry whose
// version comes from a property. When two entries share a property the one
// sorted last by coordinate wins.
func (m Manifest) Properties() map[string]string {
	props := make(map[string]string)
	for _, d := range m.Coordinates() {
		if d.VersionVariable != "" {
			props[d.VersionVariable] = d.Version
		}
	}
	return props
}

// Coordinates returns every entry as a dependency, sorted by groupId then
// artifactId.
func (m Manifest) Coordinates() []pom.Dependency {
	var deps []pom.Dependency
	for _, groupID := range slices.Sorted(maps.Keys(m)) {
		group := m[groupID]
		for _, artifactID := range slices.Sorted(maps.Keys(group)) {
			e := group[artifactID]
			d := pom.Dependency{GroupID: groupID, ArtifactID: artifactID, Version: e.Version}
			if e.Name != nil {
				d.VersionVariable = *e.Name
			}
			deps = append(deps, d)
		}
	}
	return deps
}

// Write encodes m as indented JSON with sorted keys.
func (m Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode manifest")
	}
	return nil
}

// Save writes m to a file at path, replacing its contents.
func (m Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeConfig, err, "create %s", path)
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a manifest from r.
//
// Returns an error with code [perrors.ErrCodeInvalidManifest] if the JSON is
// malformed or does not have the group/artifact/entry shape.
func Read(r io.Reader) (Manifest, error) {
	m, err := decode(r)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return m, nil
}

func decode(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(Manifest)
	}
	return m, nil
}

// Load reads the manifest file at path.
//
// Returns an error with code [perrors.ErrCodeFileNotFound] if the file does
// not exist and [perrors.ErrCodeInvalidManifest] if it cannot be decoded.
func Load(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeConfig, err, "open %s", path)
	}
	defer f.Close()

	m, err := decode(f)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidManifest, err, "decode %s", path)
	}
	return m, nil
}
