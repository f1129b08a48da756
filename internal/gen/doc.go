// Package gen provides deterministic Go code generation for constructors and
// withers.
//
// Generation uses text/template and golang.org/x/tools/imports for readable,
// gofmt-formatted output. One file is written per source file:
//
//	user.go  →  user_with.go
//
// Generated patterns:
//   - Full-field constructor (NewUser) assigning every representable field
//   - Constructor contract (UserConstructor) for non-final reference records
//   - One wither per non-private field (WithName) calling the constructor
//   - Pointer receivers and results for reference records
//   - Explicit instantiation for generic records (NewPage[T])
package gen
