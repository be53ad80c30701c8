// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: load a project,
// open every document in a workspace, synchronize them and optionally keep
// following page settings changes. It is decoupled from any specific
// entrypoint like a CLI or server.
package app
