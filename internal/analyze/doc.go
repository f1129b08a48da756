// Package analyze is the Go source declaration source.
//
// It loads packages with golang.org/x/tools/go/packages (or parses single
// files with go/parser) and turns selected type declarations into
// decl.Declaration values:
//   - types are selected by a //wither:generate directive or by name
//   - struct fields become members in declaration order
//   - the `wither` struct tag marks computed, private, public, readonly and
//     defaulted fields
//   - methods become method members, for collision checks downstream
//   - packages referenced by field types become declaration imports
//
// Files previously written by the generator are ignored, so regeneration
// does not see its own output.
package analyze
