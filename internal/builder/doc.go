/*
Package builder owns the mutation of a document.

Every change to a document.Document happens inside an edit session opened with
Builder.Edit. The session works on a private clone of the document; when the
session function returns nil the clone replaces the committed document and the
version is bumped, and when it returns an error the clone is discarded. Readers
holding the previous snapshot keep a consistent view, so a synchronization pass
never observes a half-applied edit.

# Responsibilities

The builder is responsible for:
  - Node lifecycle: adding class and member nodes with a snapshot of their
    vertex shape, moving, commenting and removing them.
  - Connections: linking an output vertex to an input vertex. An input accepts
    one connection; connecting an already fed input replaces the old link.
    Data type compatibility is deliberately not checked here, it is reported
    by synchronization and validation instead.
  - Members: adding, renaming (vertex references and connections follow in
    the same session) and removing members, and editing their per-page
    defaults. The Default page entry can be changed but never removed.
  - Pages: adding a page graph as a copy of another page, removing it and
    choosing the build page.

# Relationship with Other Components

  - document: the model being mutated.
  - registry: consulted through ClassLookup to snapshot vertices and coerce
    literals to their data type.
  - paged: NormalizeMemberDefaults persists normalization against a page
    registry after page settings change.
  - session: runs edit sessions and synchronization on the document's actor
    goroutine.
*/
package builder
