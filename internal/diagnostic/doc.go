// Package diagnostic provides structured errors, warnings and notes for the
// schema tools.
//
// Key uses:
//   - Lint issues reported by house-style checks
//   - Advisory bundle warnings (e.g. a bundle the schema compiler rejects)
//   - Traversal notes such as depth-limit truncation
package diagnostic
