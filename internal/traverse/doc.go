// Package traverse provides a depth-first walk that uses an explicit work
// stack instead of recursion, so graphs of any depth can be walked without
// growing the goroutine stack.
package traverse
