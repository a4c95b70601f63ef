package template

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/labforge-labs/labforge/internal/tracker"
)

//go:embed templates
var builtinFS embed.FS

// ErrTemplateNotFound reports a template name missing from the template root.
var ErrTemplateNotFound = errors.New("template not found")

// SubstitutionError reports a failure while staging or renaming the
// substituted file. The destination is left untouched.
type SubstitutionError struct {
	Dest string
	Err  error
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("substituting into %s: %v", e.Dest, e.Err)
}

func (e *SubstitutionError) Unwrap() error { return e.Err }

// placeholderPattern matches ${NAME} tokens eligible for substitution.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Engine materializes templates from a template root into a project tree.
type Engine struct {
	root    fs.FS
	tracker *tracker.Tracker
	values  Values
}

// New returns an Engine over the built-in embedded templates.
func New(tr *tracker.Tracker, values Values) *Engine {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		// The embedded tree always contains templates/; this cannot
		// happen outside a broken build.
		panic(err)
	}
	return &Engine{root: sub, tracker: tr, values: values}
}

// NewWithRoot returns an Engine reading templates from an arbitrary FS,
// used for user-supplied template directories and tests.
func NewWithRoot(root fs.FS, tr *tracker.Tracker, values Values) *Engine {
	return &Engine{root: root, tracker: tr, values: values}
}

// Names lists the available template names in the root.
func (e *Engine) Names() ([]string, error) {
	entries, err := fs.ReadDir(e.root, ".")
	if err != nil {
		return nil, fmt.Errorf("reading template root: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Materialize copies the named template to dest with placeholders
// substituted. An existing destination is left untouched and reported as
// success. The substituted content is staged in a temporary file and renamed
// into place, so dest is never observable in a half-substituted state.
// The caller is responsible for tracking the artifact; Install does both.
func (e *Engine) Materialize(w io.Writer, template, dest, description string) error {
	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", dest)
		return nil
	}

	raw, err := fs.ReadFile(e.root, path.Clean(template))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, template)
	}

	vars, err := e.values.placeholderSet()
	if err != nil {
		return err
	}
	content := expand(raw, vars)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", dest, err)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return &SubstitutionError{Dest: dest, Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp) // best-effort
		return &SubstitutionError{Dest: dest, Err: err}
	}

	if description == "" {
		description = template
	}
	fmt.Fprintf(w, "  [ OK ] Created %s (%s)\n", dest, description)
	return nil
}

// Install materializes the named template and records it in the tracker as
// one unit. A tracking failure after a successful write is reported as a
// warning line, not an error, because the file already exists.
func (e *Engine) Install(w io.Writer, template, dest, description string) error {
	_, statErr := os.Stat(dest)
	if err := e.Materialize(w, template, dest, description); err != nil {
		return err
	}

	// Only track when this call actually created the file.
	if statErr == nil {
		return nil
	}
	if err := e.tracker.TrackTemplate(dest, template); err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	}
	return nil
}

// expand substitutes known ${VAR} placeholders. Tokens whose name is not in
// vars pass through unchanged.
func expand(content []byte, vars map[string]string) []byte {
	return placeholderPattern.ReplaceAllFunc(content, func(token []byte) []byte {
		name := string(token[2 : len(token)-1])
		if val, ok := vars[name]; ok {
			return []byte(val)
		}
		return token
	})
}
