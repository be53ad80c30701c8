// Package editgraph is the transient, UI-facing mirror of one page of a
// document graph.
//
// Nodes, pins, connections and comments are addressed by the same
// identifiers as their document counterparts and are created and removed
// only by the synchronization engine. Fields such as a node's Title or Dirty
// flag are never persisted and can always be rebuilt from the document and
// the class registry.
//
// A Graph is owned by exactly one session and is not safe for concurrent use.
package editgraph
