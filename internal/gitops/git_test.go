package gitops

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/labforge-labs/labforge/internal/runner"
)

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	g := New(runner.NewRecorder(), dir)

	if g.IsRepo() {
		t.Error("IsRepo() = true without .git")
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if !g.IsRepo() {
		t.Error("IsRepo() = false with .git present")
	}
}

func TestCommandConstruction(t *testing.T) {
	rec := runner.NewRecorder()
	var out bytes.Buffer
	g := New(rec, "/work/study1")
	ctx := context.Background()

	if err := g.Init(ctx, &out, &out); err != nil {
		t.Fatal(err)
	}
	if err := g.StageAll(ctx, &out, &out); err != nil {
		t.Fatal(err)
	}
	if err := g.Commit(ctx, &out, &out, "Initial workspace scaffold"); err != nil {
		t.Fatal(err)
	}
	if err := g.RenameBranch(ctx, &out, &out, DefaultBranch); err != nil {
		t.Fatal(err)
	}
	if err := g.AddRemote(ctx, &out, &out, "origin", "https://github.com/acme/study1.git"); err != nil {
		t.Fatal(err)
	}
	if err := g.Push(ctx, &out, &out, "origin", DefaultBranch); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"git init",
		"git add -A",
		"git commit -m Initial workspace scaffold",
		"git branch -M main",
		"git remote add origin https://github.com/acme/study1.git",
		"git push -u origin main",
	}
	if len(rec.Calls) != len(want) {
		t.Fatalf("Calls = %v, want %v", rec.Calls, want)
	}
	for i := range want {
		if rec.Calls[i] != want[i] {
			t.Errorf("Calls[%d] = %q, want %q", i, rec.Calls[i], want[i])
		}
	}
}

func TestHasStagedChanges(t *testing.T) {
	// `git diff --cached --quiet` exits non-zero exactly when something is
	// staged.
	rec := runner.NewRecorder()
	g := New(rec, "/work")

	if g.HasStagedChanges(context.Background()) {
		t.Error("HasStagedChanges() = true on a clean index")
	}

	rec.Failures["git diff --cached --quiet"] = errors.New("exit status 1")
	if !g.HasStagedChanges(context.Background()) {
		t.Error("HasStagedChanges() = false with staged changes")
	}
}
