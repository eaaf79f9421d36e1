// Package corpus loads a directory of JSON Schema documents together with
// the root document they are bundled into.
//
// Members are discovered with a non-recursive glob, read concurrently and
// parsed into order-preserving trees. Each document is named after its file
// ("a.schema.json" is "a"); names must be unique across the corpus.
package corpus
