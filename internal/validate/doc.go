// Package validate checks a document against the class registry without
// touching any editable graph. It reports every problem it finds rather than
// stopping at the first, so that a loader or the command line can show the
// complete list at once.
package validate
