package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/labforge-labs/labforge/internal/runner"
)

func TestInstalled(t *testing.T) {
	rec := runner.NewRecorder()
	if !New(rec).Installed() {
		t.Error("Installed() = false with docker on PATH")
	}

	rec.MissingTools["docker"] = true
	if New(rec).Installed() {
		t.Error("Installed() = true with docker missing")
	}
}

func TestDaemonReachable(t *testing.T) {
	rec := runner.NewRecorder()
	if !New(rec).DaemonReachable(context.Background()) {
		t.Error("DaemonReachable() = false with a healthy daemon")
	}

	rec.Failures["docker info"] = errors.New("cannot connect")
	if New(rec).DaemonReachable(context.Background()) {
		t.Error("DaemonReachable() = true with an unreachable daemon")
	}
}

func TestLoggedIn(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   bool
	}{
		{"username present", "someone", true},
		{"empty output", "", false},
		{"template miss", "<no value>", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runner.NewRecorder()
			rec.Outputs["docker info"] = tc.output
			if got := New(rec).LoggedIn(context.Background()); got != tc.want {
				t.Errorf("LoggedIn() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildArguments(t *testing.T) {
	rec := runner.NewRecorder()
	var out bytes.Buffer

	err := New(rec).Build(context.Background(), &out, &out, BuildOptions{
		Dir:          "/work/study1",
		BaseImage:    "rocker/r-ver",
		Team:         "acme",
		Project:      "study1",
		BuildMode:    "standard",
		VersionedTag: "acme/study1core-shell:v1.0.0",
		LatestTag:    "acme/study1core-shell:latest",
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := "docker build" +
		" --build-arg BASE_IMAGE=rocker/r-ver" +
		" --build-arg TEAM=acme" +
		" --build-arg PROJECT=study1" +
		" --build-arg BUILD_MODE=standard" +
		" -t acme/study1core-shell:v1.0.0" +
		" -t acme/study1core-shell:latest ."
	if len(rec.Calls) != 1 || rec.Calls[0] != want {
		t.Errorf("Calls = %v\nwant  %q", rec.Calls, want)
	}
}

func TestBuildFailure(t *testing.T) {
	rec := runner.NewRecorder()
	rec.Failures["docker build"] = errors.New("exit status 1")
	var out bytes.Buffer

	err := New(rec).Build(context.Background(), &out, &out, BuildOptions{
		Dir: "/work", VersionedTag: "a/bcore-shell:v1.0.0", LatestTag: "a/bcore-shell:latest",
	})

	var toolErr *runner.ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %v, want *ExternalToolError", err)
	}
	if toolErr.Tool != "docker" {
		t.Errorf("Tool = %q, want docker", toolErr.Tool)
	}
}

func TestPushAndRemove(t *testing.T) {
	rec := runner.NewRecorder()
	var out bytes.Buffer
	d := New(rec)

	if err := d.Push(context.Background(), &out, &out, "acme/x:latest"); err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if err := d.RemoveImage(context.Background(), &out, &out, "acme/x:latest"); err != nil {
		t.Fatalf("RemoveImage() error: %v", err)
	}

	want := []string{"docker push acme/x:latest", "docker rmi acme/x:latest"}
	if len(rec.Calls) != 2 || rec.Calls[0] != want[0] || rec.Calls[1] != want[1] {
		t.Errorf("Calls = %v, want %v", rec.Calls, want)
	}
}

func TestLocalRepositories(t *testing.T) {
	rec := runner.NewRecorder()
	rec.Outputs["docker images"] = "acme/study1core-shell\nrocker/r-ver"

	repos, err := New(rec).LocalRepositories(context.Background())
	if err != nil {
		t.Fatalf("LocalRepositories() error: %v", err)
	}
	if len(repos) != 2 || repos[0] != "acme/study1core-shell" {
		t.Errorf("repos = %v", repos)
	}

	t.Run("no images", func(t *testing.T) {
		repos, err := New(runner.NewRecorder()).LocalRepositories(context.Background())
		if err != nil || repos != nil {
			t.Errorf("LocalRepositories() = %v, %v; want nil, nil", repos, err)
		}
	})
}
