/*
Package session runs open documents.

A Session owns one document: its builder, its editable graph and the engine
that keeps the two in step. Every request is executed on the session's own
goroutine, so edits and synchronization passes on one document never overlap
while different documents proceed in parallel.

A Workspace holds the open sessions of a project. It resolves preset
references between them, re-synchronizes documents that reference an edited
document, and applies page settings changes to every session at once.
*/
package session
