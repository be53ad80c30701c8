// Package pages provides the page registry: the ordered list of page
// (platform variant) definitions, the active build and audition pages, and
// the fallback chain consulted when a member has no override for a page.
//
// A Registry is an immutable snapshot. The Manager owns the current snapshot,
// rebuilds it from a Source on Reload and notifies subscribers so open
// documents can re-normalize their page defaults. The Watcher reloads the
// Manager when the settings file changes on disk.
package pages
