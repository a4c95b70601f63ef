// Package template materializes project files from named templates with
// placeholder substitution. Only a fixed set of ${VAR} placeholders is
// substituted; any other ${...}-shaped text passes through byte-for-byte.
// Materialization never overwrites an existing destination, and each file is
// written transactionally: the fully substituted content is staged in a
// temporary file and renamed into place only on success.
package template
