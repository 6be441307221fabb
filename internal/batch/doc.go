// Package batch is the in-process data contract around the wall pipeline:
// an input Batch of raw lines, axes and frames, and the Result document
// produced by running the processor and the mapper over it.
//
// Key types: Batch, Result, WallMapping.
//
// Dependency rule: batch may depend on wall, mapping and fsutil; the core
// packages never depend on batch.
package batch
