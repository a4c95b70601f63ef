package tracker

import "fmt"

// Kind classifies a tracked artifact.
type Kind string

const (
	KindFile     Kind = "file"
	KindDir      Kind = "directory"
	KindSymlink  Kind = "symlink"
	KindTemplate Kind = "template"
	KindImage    Kind = "image"
	KindRepo     Kind = "repository"
)

// Entry is one ledger item. Target is set for symlinks, Template for
// template-derived files. Ledger order is creation order.
type Entry struct {
	Kind      Kind   `yaml:"kind"`
	Path      string `yaml:"path"`
	Target    string `yaml:"target,omitempty"`
	Template  string `yaml:"template,omitempty"`
	CreatedAt string `yaml:"created_at"`
}

// TrackingWarning wraps a ledger write failure. The creation that triggered
// the write already happened, so callers log the warning and continue.
type TrackingWarning struct {
	Entry Entry
	Err   error
}

func (w *TrackingWarning) Error() string {
	return fmt.Sprintf("tracking %s %s failed (artifact was still created): %v",
		w.Entry.Kind, w.Entry.Path, w.Err)
}

func (w *TrackingWarning) Unwrap() error { return w.Err }
