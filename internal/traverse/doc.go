// Package traverse provides the cycle-safe walk shared by the bundler's
// reference discovery, the pointer checks and every lint check.
//
// Paths are for reporting only. They are never used as pointers:
//
//	$                        the root
//	$.properties.name        identifier-like member names
//	$["meta:enum"]["a.b"]    any other member name, JSON-quoted
//	$.allOf[0]               array items
//
// ParsePath inverts FormatPath, so a path always maps back to one key sequence.
package traverse
