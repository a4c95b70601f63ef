// Package pipeline implements the team-initialization workflow: prerequisite
// validation, parameter validation, project structure creation, template
// staging, container image builds and publication, local version-control
// initialization, and remote repository creation. Steps run strictly in
// order behind a single confirmation gate; the first failing step aborts the
// remainder, and the manifest ledger records everything created so a later
// uninstall can reverse it.
package pipeline
