// Package bundle assembles a corpus of JSON Schema documents into a single
// self-contained schema.
//
// Every document is embedded under the dialect's definitions keyword
// ("$defs" or "definitions") by name, and every $ref is rewritten to point
// at the embedded copy. Two checks guard the result:
//   - PreCheck: every external $ref names a file in the corpus
//   - PostCheck: every internal pointer resolves inside the bundle
//
// The bundle is written twice beside the root schema, once pretty-printed
// and once minified without nested $comment members.
package bundle
