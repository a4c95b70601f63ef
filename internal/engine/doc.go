// Package engine drives the container engine through its docker CLI: daemon
// reachability checks, image builds with named build arguments, dual tagging
// (versioned + latest), registry pushes, and local image listing.
package engine
