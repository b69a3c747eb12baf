package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/manifest"
	"github.com/matzehuels/pomcheck/pkg/observability"
)

const commandPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <properties>
    <junit.version>4.12</junit.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>${junit.version}</version>
    </dependency>
    <dependency>
      <groupId>org.apache.commons</groupId>
      <artifactId>commons-lang3</artifactId>
      <version>3.12.0</version>
    </dependency>
  </dependencies>
</project>`

const junitListing = `<html><body><pre>
<a href="../">../</a>
<a href="4.12/">4.12/</a>
<a href="4.13.1/">4.13.1/</a>
<a href="4.13.2/">4.13.2/</a>
<a href="5.0/">5.0/</a>
<a href="maven-metadata.xml">maven-metadata.xml</a>
</pre></body></html>`

// inProject runs the test from a fresh directory holding commandPOM so no
// pomcheck.toml or .env from the working tree is picked up.
func inProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(commandPOM), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(observability.Reset)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// requestLog counts repository requests by path.
type requestLog struct {
	mu     sync.Mutex
	counts map[string]int
}

func (l *requestLog) count(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[path]
}

func junitRepository(t *testing.T) (string, *requestLog) {
	t.Helper()
	requests := &requestLog{counts: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.mu.Lock()
		requests.counts[r.URL.Path]++
		requests.mu.Unlock()
		if r.URL.Path == "/maven2/junit/junit/" {
			w.Write([]byte(junitListing))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/maven2/", requests
}

func TestExtractCommand(t *testing.T) {
	inProject(t)

	out, err := execute(t, "extract")
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	got, err := manifest.Read(strings.NewReader(out))
	if err != nil {
		t.Fatalf("extract output is not a manifest: %v\n%s", err, out)
	}
	name := "junit.version"
	want := manifest.Manifest{
		"junit":              {"junit": {Name: &name, Version: "4.12"}},
		"org.apache.commons": {"commons-lang3": {Version: "3.12.0"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractCommandOutputFile(t *testing.T) {
	dir := inProject(t)
	path := filepath.Join(dir, "deps.json")

	out, err := execute(t, "extract", "-o", path)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if !strings.Contains(out, "Wrote 2 artifacts") || !strings.Contains(out, path) {
		t.Errorf("extract output = %q", out)
	}

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestCheckCommand(t *testing.T) {
	inProject(t)
	repo, _ := junitRepository(t)

	out, err := execute(t, "check", "--repository", repo)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}

	for _, want := range []string{
		"pom.xml",
		"junit: using 4.12",
		" -> next 4.x: 4.13.2",
		" -> next: [5.0]",
		"2 checked",
		"1 upgradeable",
		"1 unavailable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "commons-lang3: using") {
		t.Errorf("unavailable artifact reported as upgradeable:\n%s", out)
	}
}

func TestCheckCommandModules(t *testing.T) {
	dir := inProject(t)
	if err := os.Remove(filepath.Join(dir, "pom.xml")); err != nil {
		t.Fatal(err)
	}
	for _, module := range []string{"svc-a", "svc-b"} {
		if err := os.MkdirAll(filepath.Join(dir, module), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, module, "pom.xml"), []byte(commandPOM), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	repo, requests := junitRepository(t)

	out, err := execute(t, "check", "--repository", repo)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}

	a := strings.Index(out, filepath.Join("svc-a", "pom.xml"))
	b := strings.Index(out, filepath.Join("svc-b", "pom.xml"))
	if a < 0 || b < 0 {
		t.Fatalf("check output does not name both modules:\n%s", out)
	}
	if strings.Count(out, "junit: using 4.12") != 2 {
		t.Errorf("want one junit report per module:\n%s", out)
	}
	if first := strings.Index(out, "junit: using 4.12"); first < a || first > b {
		t.Errorf("svc-a report not under its heading:\n%s", out)
	}
	if !strings.Contains(out, "4 checked") || !strings.Contains(out, "2 unavailable") {
		t.Errorf("check summary wrong:\n%s", out)
	}

	for _, path := range []string{"/maven2/junit/junit/", "/maven2/org/apache/commons/commons-lang3/"} {
		if n := requests.count(path); n != 1 {
			t.Errorf("%s requested %d times, want 1", path, n)
		}
	}
}

func TestCheckCommandManifest(t *testing.T) {
	dir := inProject(t)
	repo, _ := junitRepository(t)
	path := filepath.Join(dir, "deps.json")
	if _, err := execute(t, "extract", "-o", path); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "check", "--repository", repo, "--manifest", path)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "junit: using 4.12") {
		t.Errorf("check output = %q", out)
	}

	_, err = execute(t, "check", "--manifest", path, dir)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("check with paths and manifest error = %v, want %s", err, perrors.ErrCodeInvalidInput)
	}
}

func TestCheckCommandNoDependencies(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(observability.Reset)

	out, err := execute(t, "check")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "No dependencies found") {
		t.Errorf("check output = %q", out)
	}
}

func TestCheckCommandInvalidRepository(t *testing.T) {
	inProject(t)

	_, err := execute(t, "check", "--repository", "ftp://example.com/")
	if !perrors.Is(err, perrors.ErrCodeConfig) {
		t.Errorf("check error = %v, want %s", err, perrors.ErrCodeConfig)
	}
}

func TestReplaceCommand(t *testing.T) {
	dir := inProject(t)
	path := filepath.Join(dir, "deps.json")
	if _, err := execute(t, "extract", "-o", path); err != nil {
		t.Fatal(err)
	}

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	e := m["junit"]["junit"]
	e.Version = "4.13.2"
	m["junit"]["junit"] = e
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envManifest, path)

	out, err := execute(t, "replace")
	if err != nil {
		t.Fatalf("replace error = %v", err)
	}
	if !strings.Contains(out, "[UPDT]") {
		t.Errorf("replace output = %q, want [UPDT]", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pom.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<junit.version>4.13.2</junit.version>") {
		t.Errorf("pom.xml not rewritten:\n%s", data)
	}

	out, err = execute(t, "replace")
	if err != nil {
		t.Fatalf("second replace error = %v", err)
	}
	if !strings.Contains(out, "[KEEP]") {
		t.Errorf("second replace output = %q, want [KEEP]", out)
	}
}

func TestReplaceCommandErrors(t *testing.T) {
	dir := inProject(t)

	t.Run("unset env", func(t *testing.T) {
		t.Setenv(envManifest, "")
		_, err := execute(t, "replace")
		if !perrors.Is(err, perrors.ErrCodeConfig) {
			t.Errorf("replace error = %v, want %s", err, perrors.ErrCodeConfig)
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		t.Setenv(envManifest, filepath.Join(dir, "absent.json"))
		_, err := execute(t, "replace")
		if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
			t.Errorf("replace error = %v, want %s", err, perrors.ErrCodeFileNotFound)
		}
	})

	t.Run("no properties", func(t *testing.T) {
		path := filepath.Join(dir, "literal.json")
		if err := os.WriteFile(path, []byte(`{"g": {"a": {"name": null, "version": "1.0"}}}`), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(envManifest, path)
		_, err := execute(t, "replace")
		if !perrors.Is(err, perrors.ErrCodeConfig) {
			t.Errorf("replace error = %v, want %s", err, perrors.ErrCodeConfig)
		}
	})
}

func TestCompletionCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(observability.Reset)

	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, "pomcheck") {
		t.Errorf("bash completion does not mention pomcheck")
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unknown shell")
	}
}
