// Package dotfiles stages a user's dotfiles into a scaffolded project. Files
// are copied (or symlinked, when live editing is wanted) from a source
// directory into the project root, and every staged file is recorded in the
// manifest ledger so uninstall can remove it.
package dotfiles
