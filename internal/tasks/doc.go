// Package tasks sends batches of course topics to the LMS backend with progress reporting.
//
// # Submitting
//
// [Submitter.Submit] runs one attempt:
//
//  1. Gate: the list must pass [models.IsSubmittable], otherwise the outcome is [Rejected]
//  2. Build: [models.BuildPayload] assigns topicID by position
//  3. Dispatch: one POST through [services.TopicCreator], never retried
//  4. Journal: the attempt is written to the optional [SubmissionJournal]
//
// A [Succeeded] outcome carries a fresh list in Next. A [Failed] outcome carries the
// submitted list unchanged so nothing the user typed is lost.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default to prevent blocking.
package tasks
