// Package tracker maintains the append-only manifest ledger of everything
// the scaffolder creates: files, directories, symlinks, template-derived
// files, built image tags, and remote repositories. The ledger lives at
// <project>/.labforge/manifest.yaml as a YAML sequence with one item
// appended per successful creation, and is consumed in reverse order by
// uninstall. A failed ledger write after a successful creation is a
// warning, never a rollback: the filesystem change is real even if the
// record of it is lost.
package tracker
