// Package match finds near misses among identifiers, for "did you mean"
// hints in diagnostics and errors.
package match
