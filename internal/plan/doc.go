// Package plan provides the resolution pipeline that produces a ResolvedPlan
// consumed by code generation.
//
// Resolution pipeline:
//  1. Collect declarations from the Go loader or a manifest
//  2. Assemble each declaration concurrently (constructor + withers)
//  3. Keep results in input order, skipping non-record kinds
//  4. Merge diagnostics (duplicates, unrepresentable fields, skipped kinds)
package plan
