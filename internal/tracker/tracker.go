package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labforge-labs/labforge/internal/branding"
	"go.yaml.in/yaml/v3"
)

const manifestFileName = "manifest.yaml"

// Tracker appends ledger entries for one project. Single writer; entries are
// appended as YAML sequence items so the ledger file is a plain YAML list.
type Tracker struct {
	manifestPath string

	// now is swapped in tests for stable timestamps.
	now func() time.Time
}

// New returns a Tracker for the project rooted at projectRoot.
func New(projectRoot string) *Tracker {
	return &Tracker{
		manifestPath: ManifestPath(projectRoot),
		now:          time.Now,
	}
}

// ManifestPath returns the ledger location for a project root
// (<root>/.labforge/manifest.yaml).
func ManifestPath(projectRoot string) string {
	return filepath.Join(projectRoot, branding.HomeDir(), manifestFileName)
}

// Path returns the ledger file path this Tracker writes to.
func (t *Tracker) Path() string {
	return t.manifestPath
}

// Track appends one entry to the ledger. The artifact it describes has
// already been created; on a ledger I/O failure Track returns a
// *TrackingWarning that callers log and otherwise ignore.
func (t *Tracker) Track(entry Entry) error {
	if entry.CreatedAt == "" {
		entry.CreatedAt = t.now().UTC().Format(time.RFC3339)
	}

	if err := t.append(entry); err != nil {
		return &TrackingWarning{Entry: entry, Err: err}
	}
	return nil
}

// TrackFile records a plain created file.
func (t *Tracker) TrackFile(path string) error {
	return t.Track(Entry{Kind: KindFile, Path: path})
}

// TrackDir records a created directory.
func (t *Tracker) TrackDir(path string) error {
	return t.Track(Entry{Kind: KindDir, Path: path})
}

// TrackSymlink records a created symlink and its target.
func (t *Tracker) TrackSymlink(path, target string) error {
	return t.Track(Entry{Kind: KindSymlink, Path: path, Target: target})
}

// TrackTemplate records a template-derived file and its originating template.
func (t *Tracker) TrackTemplate(path, template string) error {
	return t.Track(Entry{Kind: KindTemplate, Path: path, Template: template})
}

// TrackImage records a built container image tag.
func (t *Tracker) TrackImage(tag string) error {
	return t.Track(Entry{Kind: KindImage, Path: tag})
}

// TrackRepo records a created remote repository slug.
func (t *Tracker) TrackRepo(slug string) error {
	return t.Track(Entry{Kind: KindRepo, Path: slug})
}

// Load reads the full ledger. A missing ledger is an empty ledger.
func (t *Tracker) Load() ([]Entry, error) {
	data, err := os.ReadFile(t.manifestPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", t.manifestPath, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", t.manifestPath, err)
	}
	return entries, nil
}

// Reversed returns the entries in reverse ledger order, the order uninstall
// removes them in: later artifacts (files inside directories, remote objects)
// come before the artifacts that contain or precede them.
func Reversed(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// append writes the entry as a one-item YAML sequence with O_APPEND, so the
// ledger file stays a single valid YAML list.
func (t *Tracker) append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(t.manifestPath), 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	data, err := yaml.Marshal([]Entry{entry})
	if err != nil {
		return fmt.Errorf("encoding manifest entry: %w", err)
	}

	f, err := os.OpenFile(t.manifestPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("appending manifest entry: %w", err)
	}
	return f.Close()
}
