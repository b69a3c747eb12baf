package pom

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
)

const testPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>my-app</artifactId>
  <version>1.4.0</version>

  <dependencies>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>${guava.version}</version>
    </dependency>
    <dependency>
      <groupId>com.example</groupId>
      <artifactId>my-app-core</artifactId>
      <version>${project.version}</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13.2</version>
      <scope>test</scope>
    </dependency>
    <dependency>
      <groupId>org.slf4j</groupId>
      <artifactId>slf4j-api</artifactId>
    </dependency>
  </dependencies>

  <build>
    <plugins>
      <plugin>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>${compiler.version}</version>
      </plugin>
      <plugin>
        <groupId>org.codehaus.mojo</groupId>
        <artifactId>exec-maven-plugin</artifactId>
        <version>3.1.0</version>
      </plugin>
    </plugins>
  </build>

  <properties>
    <guava.version>31.1-jre</guava.version>
    <compiler.version>3.11.0</compiler.version>
  </properties>
</project>`

func writePOM(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pom.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(t *testing.T, p *Parser, path string) ([]Dependency, error) {
	t.Helper()
	var deps []Dependency
	for dep, err := range p.Parse(path) {
		if err != nil {
			return deps, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func TestParser_Parse(t *testing.T) {
	path := writePOM(t, t.TempDir(), testPOM)

	got, err := collect(t, NewParser(), path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Dependency{
		{GroupID: "com.google.guava", ArtifactID: "guava", VersionVariable: "guava.version", Version: "31.1-jre"},
		{GroupID: "com.example", ArtifactID: "my-app-core", VersionVariable: "project.version", Version: "1.4.0"},
		{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2"},
		{GroupID: "org.slf4j", ArtifactID: "slf4j-api"},
		{GroupID: "org.apache.maven.plugins", ArtifactID: "maven-compiler-plugin", VersionVariable: "compiler.version", Version: "3.11.0"},
		{GroupID: "org.codehaus.mojo", ArtifactID: "exec-maven-plugin", Version: "3.1.0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_PropertyRoundTrip(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <properties><foo.version>3.1</foo.version></properties>
  <dependencies>
    <dependency>
      <groupId>org.foo</groupId>
      <artifactId>foo</artifactId>
      <version>${foo.version}</version>
    </dependency>
  </dependencies>
</project>`

	got, err := collect(t, NewParser(), writePOM(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d dependencies, want 1", len(got))
	}
	if got[0].Version != "3.1" || got[0].VersionVariable != "foo.version" {
		t.Errorf("got version %q from %q, want 3.1 from foo.version", got[0].Version, got[0].VersionVariable)
	}
}

func TestParser_SingleLevelSubstitution(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <properties>
    <base.version>2.0</base.version>
    <lib.version>${base.version}</lib.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.lib</groupId>
      <artifactId>lib</artifactId>
      <version>${lib.version}</version>
    </dependency>
  </dependencies>
</project>`

	got, err := collect(t, NewParser(), writePOM(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got[0].Version != "${base.version}" {
		t.Errorf("Version = %q, want the unexpanded ${base.version}", got[0].Version)
	}
}

func TestParser_UnresolvedProperty(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <dependencies>
    <dependency><groupId>a</groupId><artifactId>first</artifactId><version>1.0</version></dependency>
    <dependency><groupId>b</groupId><artifactId>second</artifactId><version>${missing.version}</version></dependency>
    <dependency><groupId>c</groupId><artifactId>third</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`

	got, err := collect(t, NewParser(), writePOM(t, t.TempDir(), content))
	if !perrors.Is(err, perrors.ErrCodeUnresolvedProperty) {
		t.Fatalf("err = %v, want %s", err, perrors.ErrCodeUnresolvedProperty)
	}
	if !strings.Contains(err.Error(), "second") {
		t.Errorf("error %q should name the artifact", err)
	}
	if len(got) != 1 || got[0].ArtifactID != "first" {
		t.Errorf("got %v before the error, want only first", got)
	}
}

func TestParser_MissingArtifactID(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <dependencies>
    <dependency><groupId>a</groupId><version>1.0</version></dependency>
  </dependencies>
</project>`

	_, err := collect(t, NewParser(), writePOM(t, t.TempDir(), content))
	if !perrors.Is(err, perrors.ErrCodeMissingArtifactID) {
		t.Errorf("err = %v, want %s", err, perrors.ErrCodeMissingArtifactID)
	}
}

func TestParser_UnknownPluginGroup(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <build><plugins>
    <plugin><artifactId>maven-jar-plugin</artifactId><version>3.3.0</version></plugin>
  </plugins></build>
</project>`

	var warnings []string
	p := NewParser(WithLogger(func(format string, args ...any) {
		warnings = append(warnings, format)
	}))

	got, err := collect(t, p, writePOM(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 1 || got[0].GroupID != "" || got[0].ArtifactID != "maven-jar-plugin" {
		t.Errorf("got %+v, want maven-jar-plugin without a group", got)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestParser_WithPluginGroups(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <version>1.0</version>
  <build><plugins>
    <plugin><artifactId>maven-jar-plugin</artifactId><version>3.3.0</version></plugin>
    <plugin><artifactId>maven-compiler-plugin</artifactId><version>3.11.0</version></plugin>
  </plugins></build>
</project>`

	groups := map[string]string{"maven-jar-plugin": "org.apache.maven.plugins"}
	p := NewParser(WithPluginGroups(groups))
	groups["maven-compiler-plugin"] = "mutated.after.construction"

	got, err := collect(t, p, writePOM(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got[0].GroupID != "org.apache.maven.plugins" {
		t.Errorf("maven-jar-plugin group = %q, want org.apache.maven.plugins", got[0].GroupID)
	}
	if got[1].GroupID != "" {
		t.Errorf("maven-compiler-plugin group = %q, want empty (table replaced)", got[1].GroupID)
	}
}

func TestParser_ParentVersion(t *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent><groupId>com.example</groupId><artifactId>parent</artifactId><version>7.2</version></parent>
  <dependencies>
    <dependency><groupId>com.example</groupId><artifactId>sibling</artifactId><version>${project.version}</version></dependency>
  </dependencies>
</project>`

	got, err := collect(t, NewParser(), writePOM(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got[0].Version != "7.2" {
		t.Errorf("Version = %q, want 7.2 inherited from parent", got[0].Version)
	}
}

func TestParser_InvalidDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `<project><dependencies>`},
		{"wrong root", `<settings xmlns="http://maven.apache.org/POM/4.0.0"/>`},
		{"wrong namespace", `<project xmlns="http://example.com/other"><version>1</version></project>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, NewParser(), writePOM(t, t.TempDir(), tt.content))
			if !perrors.Is(err, perrors.ErrCodeInvalidDescriptor) {
				t.Errorf("err = %v, want %s", err, perrors.ErrCodeInvalidDescriptor)
			}
		})
	}
}

func TestParser_Latin1Descriptor(t *testing.T) {
	// "\xe9" is é in ISO-8859-1 and invalid on its own in UTF-8.
	const latin1 = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<project xmlns=\"http://maven.apache.org/POM/4.0.0\">\n" +
		"  <name>Caf\xe9 service &copy; ACME</name>\n" +
		"  <properties><junit.version>4.12</junit.version></properties>\n" +
		"  <dependencies>\n" +
		"    <dependency>\n" +
		"      <groupId>junit</groupId>\n" +
		"      <artifactId>junit</artifactId>\n" +
		"      <version>${junit.version}</version>\n" +
		"    </dependency>\n" +
		"  </dependencies>\n" +
		"</project>\n"
	path := writePOM(t, t.TempDir(), latin1)

	got, err := collect(t, NewParser(), path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Dependency{{GroupID: "junit", ArtifactID: "junit", VersionVariable: "junit.version", Version: "4.12"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_MissingFile(t *testing.T) {
	_, err := collect(t, NewParser(), filepath.Join(t.TempDir(), "pom.xml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, perrors.ErrCodeFileNotFound)
	}
}

func TestParser_StopsEarly(t *testing.T) {
	path := writePOM(t, t.TempDir(), testPOM)

	count := 0
	for _, err := range NewParser().Parse(path) {
		if err != nil {
			t.Fatal(err)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestParser_ParseAll(t *testing.T) {
	good := writePOM(t, t.TempDir(), testPOM)
	bad := writePOM(t, t.TempDir(), `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <dependencies><dependency><groupId>x</groupId><artifactId>x</artifactId><version>${nope}</version></dependency></dependencies>
</project>`)
	missing := filepath.Join(t.TempDir(), "pom.xml")

	var artifacts []string
	errCount := 0
	for dep, err := range NewParser().ParseAll(slices.Values([]string{missing, bad, good})) {
		if err != nil {
			errCount++
			continue
		}
		artifacts = append(artifacts, dep.ArtifactID)
	}

	if errCount != 2 {
		t.Errorf("got %d errors, want 2", errCount)
	}
	if len(artifacts) != 6 {
		t.Errorf("got %d dependencies from the good descriptor, want 6: %v", len(artifacts), artifacts)
	}
}

func TestParser_ParseAllLazy(t *testing.T) {
	first := writePOM(t, t.TempDir(), testPOM)

	visited := 0
	paths := func(yield func(string) bool) {
		for _, p := range []string{first, "never-opened/pom.xml"} {
			visited++
			if !yield(p) {
				return
			}
		}
	}

	for _, err := range NewParser().ParseAll(paths) {
		if err != nil {
			t.Fatal(err)
		}
		break
	}
	if visited != 1 {
		t.Errorf("visited %d paths, want 1", visited)
	}
}

func TestDefaultPluginGroupsIsCopy(t *testing.T) {
	groups := DefaultPluginGroups()
	groups["maven-surefire-plugin"] = "changed"

	if got := DefaultPluginGroups()["maven-surefire-plugin"]; got != "org.apache.maven.plugins" {
		t.Errorf("default table was mutated: %q", got)
	}
}

func TestDependency_Coordinate(t *testing.T) {
	d := Dependency{GroupID: "com.google.guava", ArtifactID: "guava"}
	if got := d.Coordinate(); got != "com.google.guava:guava" {
		t.Errorf("Coordinate() = %q, want com.google.guava:guava", got)
	}
}
