// Package syncstate persists the sync side-table: one record per
// (kind, local id) describing the remote call still owed for that entity.
//
// Outcomes of remote attempts are written with CompareAndPut /
// CompareAndDelete, which only succeed while the record's revision is the one
// the attempt started from. Local writes bump the revision with Put.
package syncstate
