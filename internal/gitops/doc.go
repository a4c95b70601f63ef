// Package gitops drives the version-control engine through the git CLI:
// repository initialization, staging, change detection, committing, branch
// renaming, remote wiring, and pushing with upstream tracking.
package gitops
