// Package decl defines the input model of the generator: record declarations
// and their ordered member lists, as handed over by a declaration source.
//
// Two sources exist:
//   - the Go source loader in package analyze, which turns struct types into
//     declarations
//   - the YAML manifest loader in this package, which describes declarations
//     without any Go source
//
// Key types:
//   - Declaration: record name, kind, modifiers, type parameters, members
//   - Member: one declared member (field, method, nested type)
//   - Kind: value/reference aggregates are records, everything else is not
package decl
