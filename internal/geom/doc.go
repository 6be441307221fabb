// Package geom holds the 2D and 3D value types the wall pipeline and the
// frame mapper are built on.
//
// Key types: Point2D, Point3D, LineSegment2D.
//
// All values are immutable; every operation returns a new value. Vector
// algebra is delegated to gonum's spatial/r2 and spatial/r3 packages.
// Comparisons never use exact equality: callers pass a tolerance or use
// Epsilon.
package geom
