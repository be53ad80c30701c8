// Package document defines the persisted, authoritative graph of a single
// audio-authoring document.
//
// A Document owns its members (graph-level inputs, outputs and variables with
// per-page default values) and one Graph per page. Every cross-reference is an
// identifier from the ids package resolved through the owning Document, never
// a pointer into another structure.
//
// Documents are mutated only through edit sessions of the builder package,
// which work on a Clone and bump the version when the session commits. Code
// outside the builder should treat a Document as read-only.
package document
