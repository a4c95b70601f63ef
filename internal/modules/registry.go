package modules

import "fmt"

// Registry owns activation state for one run. Activation is permanent for the
// Registry's lifetime; independent runs (and tests) use independent registries.
type Registry struct {
	sources    []Source
	active     map[string]bool
	inProgress map[string]bool
	loadCounts map[string]int
}

// NewRegistry creates a Registry that resolves definitions across the given
// sources in order.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{
		sources:    sources,
		active:     make(map[string]bool),
		inProgress: make(map[string]bool),
		loadCounts: make(map[string]int),
	}
}

// AddSource appends a lower-precedence source to the registry.
func (r *Registry) AddSource(s Source) {
	r.sources = append(r.sources, s)
}

// Activate activates each named module in order. Modules already active are
// skipped; a module's declared dependencies are activated before its own body
// runs, transitively. Returns a *ResolutionError for unknown names and a
// *CyclicDependencyError when a module depends on itself, directly or not.
func (r *Registry) Activate(names ...string) error {
	for _, name := range names {
		if err := r.activate(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// IsActive reports whether the named module has been activated.
func (r *Registry) IsActive(name string) bool {
	return r.active[name]
}

// LoadCount returns how many times the named module's body has run.
// It is 0 or 1 for any module in a well-behaved registry.
func (r *Registry) LoadCount(name string) int {
	return r.loadCounts[name]
}

func (r *Registry) activate(name string, chain []string) error {
	if r.active[name] {
		return nil
	}
	if r.inProgress[name] {
		return &CyclicDependencyError{Chain: append(append([]string{}, chain...), name)}
	}

	mod, err := r.resolve(name)
	if err != nil {
		return err
	}

	r.inProgress[name] = true
	defer delete(r.inProgress, name)

	chain = append(chain, name)
	for _, dep := range mod.Requires {
		if err := r.activate(dep, chain); err != nil {
			return err
		}
	}

	r.loadCounts[name]++
	if mod.Init != nil {
		if err := mod.Init(r); err != nil {
			return fmt.Errorf("activating module %s: %w", name, err)
		}
	}

	r.active[name] = true
	return nil
}

// resolve looks the name up across sources in order.
func (r *Registry) resolve(name string) (*Module, error) {
	searched := make([]string, 0, len(r.sources))
	for _, src := range r.sources {
		searched = append(searched, src.Name)
		if mod, ok := src.Defs[name]; ok {
			return mod, nil
		}
	}
	return nil, &ResolutionError{Name: name, Searched: searched}
}
