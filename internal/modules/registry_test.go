package modules

import (
	"errors"
	"strings"
	"testing"
)

// testSource builds a source where every module records its activation order
// into the shared log slice.
func testSource(name string, log *[]string, defs map[string][]string) Source {
	src := Source{Name: name, Defs: make(map[string]*Module)}
	for modName, requires := range defs {
		modName, requires := modName, requires
		src.Defs[modName] = &Module{
			Name:     modName,
			Requires: requires,
			Init: func(_ *Registry) error {
				*log = append(*log, modName)
				return nil
			},
		}
	}
	return src
}

func TestActivateOrdersDependenciesFirst(t *testing.T) {
	var log []string
	src := testSource("builtin", &log, map[string][]string{
		"tracker":  nil,
		"template": {"tracker"},
		"pipeline": {"template", "tracker"},
	})

	r := NewRegistry(src)
	if err := r.Activate("pipeline"); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	want := []string{"tracker", "template", "pipeline"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("activation order = %v, want %v", log, want)
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	var log []string
	src := testSource("builtin", &log, map[string][]string{"tracker": nil})

	r := NewRegistry(src)
	for i := 0; i < 5; i++ {
		if err := r.Activate("tracker"); err != nil {
			t.Fatalf("Activate() #%d error: %v", i, err)
		}
	}

	if got := r.LoadCount("tracker"); got != 1 {
		t.Errorf("LoadCount = %d, want 1", got)
	}
	if len(log) != 1 {
		t.Errorf("module body ran %d times, want 1", len(log))
	}
	if !r.IsActive("tracker") {
		t.Error("IsActive = false, want true")
	}
}

func TestActivateSharedDependencyLoadsOnce(t *testing.T) {
	var log []string
	src := testSource("builtin", &log, map[string][]string{
		"tracker":  nil,
		"template": {"tracker"},
		"dotfiles": {"tracker"},
	})

	r := NewRegistry(src)
	if err := r.Activate("template", "dotfiles"); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	if got := r.LoadCount("tracker"); got != 1 {
		t.Errorf("shared dependency loaded %d times, want 1", got)
	}
}

func TestActivateUnknownModule(t *testing.T) {
	r := NewRegistry(
		Source{Name: "builtin", Defs: map[string]*Module{}},
		Source{Name: "custom", Defs: map[string]*Module{}},
	)

	err := r.Activate("nope")
	if err == nil {
		t.Fatal("expected error for unknown module")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type = %T, want *ResolutionError", err)
	}
	if resErr.Name != "nope" {
		t.Errorf("Name = %q, want %q", resErr.Name, "nope")
	}
	if len(resErr.Searched) != 2 {
		t.Errorf("Searched = %v, want both sources", resErr.Searched)
	}
}

func TestActivateDetectsCycle(t *testing.T) {
	var log []string

	t.Run("direct self-dependency", func(t *testing.T) {
		src := testSource("builtin", &log, map[string][]string{"a": {"a"}})
		r := NewRegistry(src)

		var cycErr *CyclicDependencyError
		if err := r.Activate("a"); !errors.As(err, &cycErr) {
			t.Fatalf("error = %v, want *CyclicDependencyError", err)
		}
	})

	t.Run("transitive cycle", func(t *testing.T) {
		src := testSource("builtin", &log, map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		})
		r := NewRegistry(src)

		err := r.Activate("a")
		var cycErr *CyclicDependencyError
		if !errors.As(err, &cycErr) {
			t.Fatalf("error = %v, want *CyclicDependencyError", err)
		}
		if len(cycErr.Chain) != 4 || cycErr.Chain[0] != "a" || cycErr.Chain[3] != "a" {
			t.Errorf("Chain = %v, want a -> b -> c -> a", cycErr.Chain)
		}
	})
}

func TestSourcePrecedence(t *testing.T) {
	var log []string
	installed := Source{Name: "builtin", Defs: map[string]*Module{
		"tracker": {Name: "tracker", Init: func(_ *Registry) error {
			log = append(log, "builtin")
			return nil
		}},
	}}
	dev := Source{Name: "custom", Defs: map[string]*Module{
		"tracker": {Name: "tracker", Init: func(_ *Registry) error {
			log = append(log, "custom")
			return nil
		}},
		"extra": {Name: "extra", Init: func(_ *Registry) error {
			log = append(log, "extra")
			return nil
		}},
	}}

	r := NewRegistry(installed, dev)
	if err := r.Activate("tracker", "extra"); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	// The builtin definition shadows the custom one; "extra" only
	// exists in the custom source.
	want := "builtin,extra"
	if got := strings.Join(log, ","); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestActivateModuleBodyCanActivate(t *testing.T) {
	var log []string
	src := Source{Name: "builtin", Defs: map[string]*Module{
		"leaf": {Name: "leaf", Init: func(_ *Registry) error {
			log = append(log, "leaf")
			return nil
		}},
		"root": {Name: "root", Init: func(r *Registry) error {
			// A module body may activate further modules itself.
			if err := r.Activate("leaf"); err != nil {
				return err
			}
			log = append(log, "root")
			return nil
		}},
	}}

	r := NewRegistry(src)
	if err := r.Activate("root"); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if strings.Join(log, ",") != "leaf,root" {
		t.Errorf("log = %v, want leaf then root", log)
	}
}

func TestActivateInitFailure(t *testing.T) {
	src := Source{Name: "builtin", Defs: map[string]*Module{
		"bad": {Name: "bad", Init: func(_ *Registry) error {
			return errors.New("boom")
		}},
	}}

	r := NewRegistry(src)
	if err := r.Activate("bad"); err == nil {
		t.Fatal("expected error from failing module body")
	}
	if r.IsActive("bad") {
		t.Error("failed module should not be marked active")
	}
}
