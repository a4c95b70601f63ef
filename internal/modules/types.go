package modules

import (
	"fmt"
	"strings"
)

// Module is a named activation unit. Requires lists the modules that must be
// active before Init runs. Init receives the owning Registry so a module body
// may activate further modules itself.
type Module struct {
	Name     string
	Requires []string
	Init     func(r *Registry) error
}

// Source contributes module definitions to a Registry. Sources are consulted
// in registration order, so an earlier source shadows a later one.
type Source struct {
	Name string
	Defs map[string]*Module
}

// ResolutionError reports a module name that no source could resolve.
type ResolutionError struct {
	Name     string
	Searched []string // source names, in consultation order
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("module %q not found (searched sources: %s)",
		e.Name, strings.Join(e.Searched, ", "))
}

// CyclicDependencyError reports a dependency chain that loops back on itself.
type CyclicDependencyError struct {
	Chain []string // activation path ending at the repeated module
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic module dependency: %s", strings.Join(e.Chain, " -> "))
}
