// Package registry resolves request-type identifiers to their schemas. The
// Default registry is loaded once from the embedded catalog and is read-only
// for the lifetime of the process.
package registry
