// Package paged resolves and maintains the per-page default values of graph
// members.
//
// A member carries at most one default per page. Resolver answers which value
// applies for a requested page by walking the page registry's fallback chain,
// keeps a member's collection consistent with the registry when pages are
// renamed, re-created or removed, and refreshes a cached collection from the
// authoritative one stored in the document.
package paged
