package pom

import (
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"

	"golang.org/x/net/html/charset"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
)

// defaultPluginGroups lists build plugins that are commonly declared without
// a groupId.
var defaultPluginGroups = map[string]string{
	"maven-surefire-plugin": "org.apache.maven.plugins",
	"maven-compiler-plugin": "org.apache.maven.plugins",
	"maven-failsafe-plugin": "org.apache.maven.plugins",
}

// DefaultPluginGroups returns a copy of the built-in artifactId to groupId
// table used for plugins that omit their groupId.
func DefaultPluginGroups() map[string]string {
	return maps.Clone(defaultPluginGroups)
}

// Option configures a [Parser].
type Option func(*Parser)

// WithPluginGroups replaces the plugin groupId fallback table. The map is
// copied; later changes by the caller do not affect the parser.
func WithPluginGroups(groups map[string]string) Option {
	return func(p *Parser) {
		p.pluginGroups = maps.Clone(groups)
		if p.pluginGroups == nil {
			p.pluginGroups = map[string]string{}
		}
	}
}

// WithLogger sets the callback used for non-fatal warnings such as an
// unresolved groupId.
func WithLogger(logger func(string, ...any)) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser extracts dependencies from pom.xml descriptors.
// A Parser holds no per-file state and is safe for concurrent use.
type Parser struct {
	pluginGroups map[string]string
	logger       func(string, ...any)
}

// NewParser creates a Parser using [DefaultPluginGroups] unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		pluginGroups: DefaultPluginGroups(),
		logger:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the dependencies declared in the descriptor at path.
//
// The file is read when iteration starts. Dependencies come first, build
// plugins second, each in document order. An error ends the sequence for this
// descriptor: an unreadable or malformed file, an entry without artifactId, or
// a version referencing an undefined property.
func (p *Parser) Parse(path string) iter.Seq2[Dependency, error] {
	return func(yield func(Dependency, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Dependency{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path))
			return
		}
		defer f.Close()

		for dep, err := range p.ParseReader(path, f) {
			if !yield(dep, err) {
				return
			}
		}
	}
}

// ParseReader is like [Parse] but reads the descriptor from r.
// The name is only used in error messages.
func (p *Parser) ParseReader(name string, r io.Reader) iter.Seq2[Dependency, error] {
	return func(yield func(Dependency, error) bool) {
		pom, err := decode(name, r)
		if err != nil {
			yield(Dependency{}, err)
			return
		}

		// Properties may be declared after the dependencies that use them.
		props := newProperties(pom)

		for _, block := range pom.Dependencies {
			for _, entry := range block.Entries {
				dep, err := p.extract(name, entry, props)
				if !yield(dep, err) || err != nil {
					return
				}
			}
		}
		for _, build := range pom.Build {
			for _, block := range build.Plugins {
				for _, entry := range block.Entries {
					dep, err := p.extract(name, entry, props)
					if !yield(dep, err) || err != nil {
						return
					}
				}
			}
		}
	}
}

// ParseAll chains [Parser.Parse] over paths. A descriptor that fails is
// reported once through the error value and the sequence moves on to the next
// path; the consumer stops the whole walk by breaking out of the loop.
func (p *Parser) ParseAll(paths iter.Seq[string]) iter.Seq2[Dependency, error] {
	return func(yield func(Dependency, error) bool) {
		for path := range paths {
			for dep, err := range p.Parse(path) {
				if !yield(dep, err) {
					return
				}
			}
		}
	}
}

// newDecoder returns an XML decoder that converts declared non-UTF-8
// charsets such as ISO-8859-1 and resolves HTML entity names.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity
	return d
}

func decode(name string, r io.Reader) (*pomProject, error) {
	var pom pomProject
	if err := newDecoder(r).Decode(&pom); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidDescriptor, err, "parse %s", name)
	}
	if pom.XMLName.Local != "project" {
		return nil, perrors.New(perrors.ErrCodeInvalidDescriptor, "%s: root element is <%s>, want <project>", name, pom.XMLName.Local)
	}
	if ns := pom.XMLName.Space; ns != "" && ns != Namespace {
		return nil, perrors.New(perrors.ErrCodeInvalidDescriptor, "%s: unexpected namespace %q", name, ns)
	}
	return &pom, nil
}

func (p *Parser) extract(name string, entry pomDependency, props Properties) (Dependency, error) {
	artifactID := text(entry.ArtifactID)
	if artifactID == "" {
		return Dependency{}, perrors.New(perrors.ErrCodeMissingArtifactID, "%s: dependency without artifactId", name)
	}

	groupID := text(entry.GroupID)
	if groupID == "" {
		groupID = p.pluginGroups[artifactID]
	}
	if groupID == "" {
		p.logger("%s: no groupId for %s", name, artifactID)
	}

	version, variable, err := props.Resolve(text(entry.Version))
	if err != nil {
		return Dependency{}, fmt.Errorf("%s: %s: %w", name, artifactID, err)
	}

	return Dependency{
		GroupID:         groupID,
		ArtifactID:      artifactID,
		VersionVariable: variable,
		Version:         version,
	}, nil
}
