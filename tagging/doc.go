// Package tagging replaces note tags with keywords extracted by an AI provider.
//
// Two entry points share one Tagger:
//   - Pipeline tags notes asynchronously on a bounded worker pool. Errors are
//     logged and never reach the caller.
//   - Retagger walks every note of a user in batches, retrying failed
//     extractions with exponential backoff and saving a checkpoint after each
//     batch so an interrupted run resumes where it stopped.
package tagging
