/*
Package ports defines the driven ports (interfaces) used around the tape engine.

These interfaces decouple the runner and the transports from concrete storage
backends, so a run can be persisted in memory, in Redis or in SQLite without the
caller noticing.

# Key Interfaces

  - SnapshotStore: Responsible for persisting and loading run snapshots.
*/
package ports
