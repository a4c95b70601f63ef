package template

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/labforge-labs/labforge/internal/tracker"
)

func testValues() Values {
	return Values{
		PkgName:      "widgets",
		Team:         "acme",
		BaseImage:    "rocker/r-ver",
		ImageVersion: "v1.0.0",
		AuthorName:   "Ada Lovelace",
		AuthorEmail:  "ada@example.com",
		Today:        "2026-03-14",
	}
}

func testEngine(t *testing.T, files map[string]string) (*Engine, *tracker.Tracker, string) {
	t.Helper()
	root := fstest.MapFS{}
	for name, content := range files {
		root[name] = &fstest.MapFile{Data: []byte(content)}
	}
	projectRoot := t.TempDir()
	tr := tracker.New(projectRoot)
	return NewWithRoot(root, tr, testValues()), tr, projectRoot
}

func TestMaterializeSubstitutesKnownVars(t *testing.T) {
	eng, _, root := testEngine(t, map[string]string{
		"DESCRIPTION": "Package: ${PKG_NAME}\nAuthor: ${AUTHOR_NAME}\nDate: ${TODAY}\n",
	})
	var out bytes.Buffer

	dest := filepath.Join(root, "DESCRIPTION")
	if err := eng.Materialize(&out, "DESCRIPTION", dest, "package descriptor"); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	want := "Package: widgets\nAuthor: Ada Lovelace\nDate: 2026-03-14\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestMaterializeLeavesUnknownTokens(t *testing.T) {
	eng, _, root := testEngine(t, map[string]string{
		"profile": "name=${PKG_NAME} raw=${UNKNOWN_VAR} shell=${HOME}\n",
	})
	var out bytes.Buffer

	dest := filepath.Join(root, "profile")
	if err := eng.Materialize(&out, "profile", dest, ""); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}

	got, _ := os.ReadFile(dest)
	if !strings.Contains(string(got), "raw=${UNKNOWN_VAR}") {
		t.Errorf("unknown token was rewritten: %q", got)
	}
	if !strings.Contains(string(got), "shell=${HOME}") {
		t.Errorf("out-of-set token was rewritten: %q", got)
	}
	if !strings.Contains(string(got), "name=widgets") {
		t.Errorf("known token was not substituted: %q", got)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	eng, _, root := testEngine(t, map[string]string{"f": "generated ${PKG_NAME}\n"})
	var out bytes.Buffer

	dest := filepath.Join(root, "f")
	if err := os.WriteFile(dest, []byte("user edits\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Both calls succeed, neither touches the existing file.
	for i := 0; i < 2; i++ {
		if err := eng.Materialize(&out, "f", dest, ""); err != nil {
			t.Fatalf("Materialize() #%d error: %v", i, err)
		}
	}

	got, _ := os.ReadFile(dest)
	if string(got) != "user edits\n" {
		t.Errorf("existing file was overwritten: %q", got)
	}
	if !strings.Contains(out.String(), "[SKIP]") {
		t.Errorf("output missing [SKIP] line:\n%s", out.String())
	}
}

func TestMaterializeTemplateNotFound(t *testing.T) {
	eng, _, root := testEngine(t, nil)

	err := eng.Materialize(os.Stderr, "nope", filepath.Join(root, "nope"), "")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("error = %v, want ErrTemplateNotFound", err)
	}
}

func TestMaterializeCreatesParentDirs(t *testing.T) {
	eng, _, root := testEngine(t, map[string]string{"wf": "on: push\n"})
	var out bytes.Buffer

	dest := filepath.Join(root, ".github", "workflows", "ci.yml")
	if err := eng.Materialize(&out, "wf", dest, ""); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestMaterializeLeavesNoTempFile(t *testing.T) {
	eng, _, root := testEngine(t, map[string]string{"f": "x ${PKG_NAME}\n"})
	dest := filepath.Join(root, "f")

	if err := eng.Materialize(os.Stderr, "f", dest, ""); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary staging file left behind")
	}
}

func TestMaterializeUnresolvableValues(t *testing.T) {
	root := fstest.MapFS{"f": &fstest.MapFile{Data: []byte("${PKG_NAME}")}}
	projectRoot := t.TempDir()
	vals := testValues()
	vals.Team = "" // required value left unset
	eng := NewWithRoot(root, tracker.New(projectRoot), vals)

	dest := filepath.Join(projectRoot, "f")
	if err := eng.Materialize(os.Stderr, "f", dest, ""); err == nil {
		t.Fatal("expected error for unresolvable placeholder value")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination should not exist after failed resolution")
	}
}

func TestOptionalValuesGetDefaults(t *testing.T) {
	vals := Values{
		PkgName:      "widgets",
		Team:         "acme",
		BaseImage:    "rocker/r-ver",
		ImageVersion: "v1.0.0",
	}
	set, err := vals.placeholderSet()
	if err != nil {
		t.Fatalf("placeholderSet() error: %v", err)
	}
	if set[VarAuthorName] != "Unknown Author" {
		t.Errorf("AUTHOR_NAME default = %q", set[VarAuthorName])
	}
	if set[VarContainerUser] != "analyst" {
		t.Errorf("CONTAINER_USER default = %q", set[VarContainerUser])
	}
	if set[VarToday] == "" {
		t.Error("TODAY default should be populated")
	}
}

func TestInstallTracksExactlyOnce(t *testing.T) {
	eng, tr, root := testEngine(t, map[string]string{"f": "x ${PKG_NAME}\n"})
	var out bytes.Buffer

	dest := filepath.Join(root, "f")
	if err := eng.Install(&out, "f", dest, "stub"); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	entries, err := tr.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger length = %d, want 1", len(entries))
	}
	if entries[0].Kind != tracker.KindTemplate || entries[0].Template != "f" {
		t.Errorf("entry = %+v, want template-derived from %q", entries[0], "f")
	}

	// Repeat install skips the copy and adds no second entry.
	if err := eng.Install(&out, "f", dest, "stub"); err != nil {
		t.Fatalf("Install() repeat error: %v", err)
	}
	entries, _ = tr.Load()
	if len(entries) != 1 {
		t.Errorf("ledger length after repeat = %d, want 1", len(entries))
	}
}

func TestBuiltinTemplatesAreComplete(t *testing.T) {
	projectRoot := t.TempDir()
	eng := New(tracker.New(projectRoot), testValues())

	names, err := eng.Names()
	if err != nil {
		t.Fatalf("Names() error: %v", err)
	}

	want := []string{"DESCRIPTION", "Dockerfile", "Makefile", "Rprofile", "gitignore"}
	for _, name := range want {
		found := false
		for _, got := range names {
			if got == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("builtin template %q missing (have %v)", name, names)
		}
	}

	// The Dockerfile template materializes with all tokens resolved except
	// deliberate passthroughs.
	dest := filepath.Join(projectRoot, "Dockerfile")
	if err := eng.Materialize(os.Stderr, "Dockerfile", dest, ""); err != nil {
		t.Fatalf("Materialize(Dockerfile) error: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if !strings.Contains(string(got), "FROM rocker/r-ver") {
		t.Errorf("Dockerfile base image not substituted:\n%s", got)
	}
}
