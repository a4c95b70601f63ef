package cli

import (
	"fmt"

	"github.com/labforge-labs/labforge/internal/config"
	"github.com/labforge-labs/labforge/internal/modules"
	"github.com/labforge-labs/labforge/internal/template"
	"github.com/labforge-labs/labforge/internal/tracker"
)

// Foundation module names. Every command activates the modules it needs;
// dependencies guarantee config/tracker/template come up first no matter
// which entry command ran.
const (
	moduleConfig   = "config"
	moduleTracker  = "tracker"
	moduleTemplate = "template"
	modulePipeline = "pipeline"
)

// registry holds the process's module state. It is an explicit object, not
// ambient state, so tests can build their own isolated registries.
var registry = modules.NewRegistry(builtinSource())

// activate brings up the named modules, dependency-ordered and at most once.
func activate(names ...string) error {
	if err := registry.Activate(names...); err != nil {
		return fmt.Errorf("activating modules: %w", err)
	}
	return nil
}

// builtinSource defines the installed module set. One-time subsystem
// initialization lives in the Init bodies: reading configuration, compiling
// the ledger schema, checking the embedded template root.
func builtinSource() modules.Source {
	return modules.Source{
		Name: "builtin",
		Defs: map[string]*modules.Module{
			moduleConfig: {
				Name: moduleConfig,
				Init: func(_ *modules.Registry) error {
					config.Load()
					return nil
				},
			},
			moduleTracker: {
				Name:     moduleTracker,
				Requires: []string{moduleConfig},
				Init: func(_ *modules.Registry) error {
					// Compile the ledger schema up front so a broken
					// embedded schema fails loudly, not mid-run.
					_, err := tracker.Validate(nil)
					return err
				},
			},
			moduleTemplate: {
				Name:     moduleTemplate,
				Requires: []string{moduleTracker},
				Init: func(_ *modules.Registry) error {
					eng := template.New(nil, template.Values{})
					names, err := eng.Names()
					if err != nil {
						return err
					}
					if len(names) == 0 {
						return fmt.Errorf("embedded template root is empty")
					}
					return nil
				},
			},
			modulePipeline: {
				Name:     modulePipeline,
				Requires: []string{moduleTracker, moduleTemplate},
			},
		},
	}
}
