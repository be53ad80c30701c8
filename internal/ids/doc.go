// internal/ids/doc.go

/*
Package ids provides opaque, comparable identifiers for every entity the
document and editable graphs share: nodes, connections, members, pages,
comments and pins.

Each identifier is a UUID wrapped in a distinct Go type, so a NodeID cannot be
passed where a PageID is expected. Identifiers are plain values and are used as
map keys everywhere; no pointer identity crosses package boundaries.

Loaders derive identifiers from stable names with Derive, which keeps them
stable across save and load. The reserved Default page is the nil UUID.
*/
package ids
