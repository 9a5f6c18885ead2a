// Package pipeline orchestrates the per-repository crawl work.
//
// The Runner fans repository URLs across a bounded worker pool
// (errgroup with a concurrency limit) and runs each URL through the
// fixed sequence: fetch README, extract display name, duplicate check
// against the startup snapshot, normalize, append to the CSV store.
//
// Design decision: Worker faults are isolated per repository. A task
// never returns an error into the errgroup because that would cancel
// sibling workers; failures are recorded in the task's Result instead.
// The only error Run returns is context cancellation.
package pipeline
