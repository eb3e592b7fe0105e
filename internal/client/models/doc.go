// Package models holds the client-side domain types: the finance entities
// kept in the local store, the per-entity sync record, and the error
// taxonomy shared by the store, the transport and the repositories.
package models
