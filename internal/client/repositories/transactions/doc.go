// Package transactions is the local store for transactions. Amounts are kept
// as decimal strings and timestamps as unix milliseconds (UTC). Ordering and
// error semantics match the categories store.
package transactions
