// Package diagnostic provides structured errors, warnings, and notes
// produced while analyzing declarations and synthesizing members.
//
// Key capabilities:
//   - Duplicate and unrepresentable field reports
//   - Generated-name collision reports
//   - Notes for skipped (non-record) declarations
package diagnostic
