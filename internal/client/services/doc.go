// Package services holds the client's application services: the local-first
// repositories for categories and transactions, and session handling.
//
// A Repository commits every write to the local SQLite store first and
// records what the server is still owed in the sync side-table. The syncer
// package later calls Propagate for each due record.
package services
