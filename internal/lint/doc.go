// Package lint runs house-style checks over JSON Schema documents.
//
// A Check is a plain function value with an ID and a default severity.
// Checks are collected in an explicit, ordered Registry and run by a Linter
// against each file, in registry order. Issues are diagnostic.Diagnostic
// values whose Code is the check ID.
//
// Key behaviours:
//   - Unreadable files and malformed JSON are reported as issues, not errors
//   - A panicking check becomes a "check-error" issue and the run continues
//   - Truncated traversal is reported as a "traversal-depth-limit" warning
package lint
