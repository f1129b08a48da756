// Package naming derives Go identifiers for generated code from declared
// names: exported and unexported forms, prefixed function and method names,
// collision-free local parameter names, receiver names, and file names.
//
// Identifiers are split into CamelCase tokens; only the leading token changes
// case, so "userID" becomes "UserID" and "URLPath" becomes "urlPath".
// Common initialisms are kept upper-case when exported ("id" → "ID").
package naming
