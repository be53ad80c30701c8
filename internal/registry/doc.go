// Package registry holds the class and data type definitions that document
// nodes refer to by name.
//
// A class declares an ordered list of input and output vertices. Each vertex
// names a data type; the registry maps data type names to their literal type
// and canonical default. The synchronization engine consults the registry to
// shape the pins of an editable node and to fall back to a data type's
// default when no authored value applies.
//
// The registry is populated once at startup, by Go modules that implement
// Module and by class manifests loaded from HCL, and is then validated so that
// every vertex refers to a known data type with a convertible default. After
// validation it is treated as read-only and may be shared between documents.
package registry
