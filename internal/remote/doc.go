// Package remote drives the repository host through the gh CLI:
// authentication status, repository existence checks, private repository
// creation, and best-effort account/organization reachability probes.
package remote
