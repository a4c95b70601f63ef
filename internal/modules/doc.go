// Package modules provides load-once, dependency-ordered activation of named
// engine modules. A Registry resolves module definitions across ordered
// sources (builtin first, then user-supplied overrides), activates each
// module's declared dependencies before its own body runs, and guarantees a
// module is activated at most once per Registry. Dependency cycles are
// detected and reported rather than recursed into.
package modules
