// Package cli provides the interactive finkeeper command-line client.
//
// It wires configuration, the local SQLite store, the API client, the
// background syncer and an interactive REPL. Every edit is saved locally
// first and works offline; the syncer pushes changes to the server once a
// session exists and the server is reachable.
//
// Key features:
//   - Register / Login / Logout
//   - Categories and transactions: list, add, edit, delete
//   - Sync status, manual sync, retry of abandoned records
//   - Pull from the server and S3 backup
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
