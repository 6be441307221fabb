// Package mapping finds the structural frame members that lie under a wall
// centerline and how much of each frame the wall covers.
//
// Key types: Frame, Record, Coverage, Config, Mapper.
//
// The mapper reads the frame inventory and never mutates it. The records it
// returns are ordered by position along the wall so load distribution can
// walk them in physical order. "No frame found" is not an error: a single
// Record with Coverage New says a member has to be created.
//
// Dependency rule: mapping depends on geom and geoalgo only; it knows
// nothing about how centerlines were produced.
package mapping
