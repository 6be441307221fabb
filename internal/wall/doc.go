// Package wall reconstructs wall centerlines from raw floor-plan lines.
//
// Responsibilities: angle normalisation and bucketing, collinear segment
// merge, parallel boundary pairing, centerline generation, single-line
// promotion, opening/gap recovery, centerline de-overlap, optional axis
// snapping, corner auto-extension, grid extension and grid break, and
// de-duplication.
// Key types: RawLine, WallSegment, SegmentArena, CenterLine, AxisLine,
// Config, Processor.
//
// Every stage is deterministic: angle buckets are visited in ascending key
// order and their members in ascending SegmentID order. The greedy stages
// commit on the first best candidate and never backtrack, so that order is
// part of the contract.
//
// Dependency rule: wall may depend on geom and geoalgo, never on mapping.
package wall
