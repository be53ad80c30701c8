// Package notify publishes synchronization reports to interested listeners.
//
// A Publisher receives every report that changed an editable graph. The
// socket.io publisher emits them to a remote editor front end; Nop discards
// them; Recorder keeps them in memory for tests and the command line summary.
package notify
