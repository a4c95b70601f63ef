package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsKnownKey(t *testing.T) {
	for _, key := range Keys {
		if !IsKnownKey(key) {
			t.Errorf("IsKnownKey(%q) = false", key)
		}
	}
	if IsKnownKey("color-scheme") {
		t.Error("IsKnownKey accepted an unknown key")
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Set("color-scheme", "dark"); err == nil {
		t.Error("Set accepted an unknown key")
	}
}

func TestSetGetRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	Load()

	if err := Set(KeyTeam, "acme"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := Get(KeyTeam); got != "acme" {
		t.Errorf("Get(team) = %q, want acme", got)
	}

	if _, err := os.Stat(FilePath()); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if filepath.Base(Dir()) != ".labforge" {
		t.Errorf("Dir() = %q, want a .labforge directory", Dir())
	}
	if filepath.Base(FilePath()) != "config.yaml" {
		t.Errorf("FilePath() = %q, want config.yaml", FilePath())
	}
}
