// Package repositories implements SQLite persistence for the submission journal.
//
// Every batch sent to the create topics endpoint is recorded, whatever its outcome,
// together with the payload rows it carried. The journal backs the admin dashboard and
// the history command, and is the diagnostic record for transport failures that the
// topics screen does not surface.
//
// Key Implementations:
//   - [SubmissionRepository] : append-only journal with course and status queries
//   - [JournalAdapter] : adapts the repository to the batch submitter's journal interface
//
// Sequence numbers provide stable, human-readable ordering (e.g., submission #42) independent
// of UUIDs and creation timestamps. [NextSequence] increments per-table counters stored in
// dedicated sequence tables.
package repositories
