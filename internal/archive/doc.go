// Package archive batches auction events into Postgres.
//
// Append-only inserts (never update), flushed on a ticker or when the batch
// fills. The archive is optional and strictly best-effort: the file snapshot
// in package store is the authoritative state, this is the audit trail.
package archive
