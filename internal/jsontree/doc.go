// Package jsontree provides an ordered, tagged-variant model of JSON documents.
//
// encoding/json decodes objects into Go maps, which lose member order. Schema
// documents are read, rewritten and written back, and the written form must keep
// the order the authors chose, so documents are held in this package's tree
// instead.
//
// # Variants
//
//   - Null, Bool, Number, String: scalar leaves
//   - *Array: ordered items
//   - *Object: members in insertion order, unique keys
//
// Number keeps the literal text of the source so that numbers round-trip
// without float conversion.
//
// # Encoding
//
// Marshal writes compact JSON; MarshalIndent writes indented JSON in the
// same layout as JSON.stringify with an indent argument. Neither escapes
// HTML characters.
package jsontree
