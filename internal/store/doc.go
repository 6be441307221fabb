// Package store records processing runs in SQLite.
//
// Responsibilities: open the database and apply the embedded schema
// migrations, write a run with its centerlines and mapping records in one
// transaction, and read runs back.
// Key types: Store, RunSummary.
//
// Dependency rule: store may depend on batch, wall and mapping; nothing in
// the core pipeline depends on store.
package store
