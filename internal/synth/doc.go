// Package synth turns a record declaration into the members generated for it:
// one full-field constructor and one wither method per eligible field.
//
// Pipeline:
//  1. Extract: member list → ordered field descriptors (stored fields only)
//  2. Validate: duplicate names always fail; unrepresentable fields fail in
//     strict mode
//  3. Constructor: every representable field, in declaration order
//  4. Withers: one per representable, non-private field; each calls the
//     constructor with the receiver's fields and the new value
//
// Everything here is a pure function of its input declaration; results are
// safe to compute concurrently and are never cached.
package synth
