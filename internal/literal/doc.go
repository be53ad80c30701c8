// Package literal holds the value model shared by the document graph, the
// class registry and the paged default resolver.
//
// A literal is a cty.Value. A data type is a named tag (for example "float"
// or "audio") that maps to the cty.Type its literals must have; data types
// that carry no literal (audio buffers, triggers) map to cty.NilType.
package literal
