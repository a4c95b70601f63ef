package remote

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/labforge-labs/labforge/internal/runner"
)

func TestInstalledAndAuthenticated(t *testing.T) {
	rec := runner.NewRecorder()
	g := New(rec)

	if !g.Installed() {
		t.Error("Installed() = false with gh on PATH")
	}
	if !g.Authenticated(context.Background()) {
		t.Error("Authenticated() = false with valid credentials")
	}

	rec.MissingTools["gh"] = true
	rec.Failures["gh auth status"] = errors.New("not logged in")
	if g.Installed() {
		t.Error("Installed() = true with gh missing")
	}
	if g.Authenticated(context.Background()) {
		t.Error("Authenticated() = true without credentials")
	}
}

func TestRepoExists(t *testing.T) {
	rec := runner.NewRecorder()
	g := New(rec)

	if !g.RepoExists(context.Background(), "acme/study1") {
		t.Error("RepoExists() = false for an existing repository")
	}

	rec.Failures["gh repo view"] = errors.New("not found")
	if g.RepoExists(context.Background(), "acme/study1") {
		t.Error("RepoExists() = true for a missing repository")
	}
}

func TestAccountExists(t *testing.T) {
	rec := runner.NewRecorder()
	g := New(rec)

	if !g.AccountExists(context.Background(), "acme") {
		t.Error("AccountExists() = false for a reachable account")
	}
	if got := rec.Calls[0]; got != "gh api users/acme" {
		t.Errorf("call = %q", got)
	}
}

func TestCreateRepo(t *testing.T) {
	rec := runner.NewRecorder()
	var out bytes.Buffer

	err := New(rec).CreateRepo(context.Background(), &out, &out, "acme/study1", "workspace")
	if err != nil {
		t.Fatalf("CreateRepo() error: %v", err)
	}

	want := "gh repo create acme/study1 --private --description workspace"
	if len(rec.Calls) != 1 || rec.Calls[0] != want {
		t.Errorf("Calls = %v, want %q", rec.Calls, want)
	}
}

func TestRepoURL(t *testing.T) {
	if got := RepoURL("acme/study1"); got != "https://github.com/acme/study1.git" {
		t.Errorf("RepoURL() = %q", got)
	}
}
