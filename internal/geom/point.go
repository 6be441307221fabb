package geom

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the shared floating-point tolerance for zero-length and
// coincidence tests. Drawing units are millimetres, so 1e-6 is far below
// anything a digitiser produces.
const Epsilon = 1e-6

// Point2D is a 2D point or vector in drawing units.
type Point2D r2.Vec

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D { return Point2D{X: x, Y: y} }

func (p Point2D) vec() r2.Vec { return r2.Vec(p) }

// Add returns p+q.
func (p Point2D) Add(q Point2D) Point2D { return Point2D(r2.Add(p.vec(), q.vec())) }

// Sub returns p-q.
func (p Point2D) Sub(q Point2D) Point2D { return Point2D(r2.Sub(p.vec(), q.vec())) }

// Scale returns f*p.
func (p Point2D) Scale(f float64) Point2D { return Point2D(r2.Scale(f, p.vec())) }

// Dot returns the dot product p·q.
func (p Point2D) Dot(q Point2D) float64 { return r2.Dot(p.vec(), q.vec()) }

// Cross returns the z component of the 3D cross product p×q.
func (p Point2D) Cross(q Point2D) float64 { return r2.Cross(p.vec(), q.vec()) }

// Norm returns the Euclidean length of p.
func (p Point2D) Norm() float64 { return r2.Norm(p.vec()) }

// Unit returns p scaled to unit length. A zero-length vector is returned
// unchanged rather than turning into NaN.
func (p Point2D) Unit() Point2D {
	if p.Norm() < Epsilon {
		return p
	}
	return Point2D(r2.Unit(p.vec()))
}

// Perp returns p rotated a quarter turn counter-clockwise.
func (p Point2D) Perp() Point2D { return Point2D{X: -p.Y, Y: p.X} }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point2D) DistanceTo(q Point2D) float64 { return p.Sub(q).Norm() }

// ApproxEqual reports whether p and q coincide within tol on both axes.
func (p Point2D) ApproxEqual(q Point2D, tol float64) bool {
	return scalar.EqualWithinAbs(p.X, q.X, tol) && scalar.EqualWithinAbs(p.Y, q.Y, tol)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point2D) String() string { return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y) }

// MarshalJSON encodes the point as a two-element array [x, y].
func (p Point2D) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a two-element array [x, y].
func (p *Point2D) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("point must be [x, y]: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Point3D is a 3D point in model units, used for structural frame endpoints.
type Point3D r3.Vec

// Pt3 is shorthand for Point3D{X: x, Y: y, Z: z}.
func Pt3(x, y, z float64) Point3D { return Point3D{X: x, Y: y, Z: z} }

// XY drops the Z component.
func (p Point3D) XY() Point2D { return Point2D{X: p.X, Y: p.Y} }

// Sub returns p-q.
func (p Point3D) Sub(q Point3D) Point3D { return Point3D(r3.Sub(r3.Vec(p), r3.Vec(q))) }

// Norm returns the Euclidean length of p.
func (p Point3D) Norm() float64 { return r3.Norm(r3.Vec(p)) }

// MarshalJSON encodes the point as [x, y, z].
func (p Point3D) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{p.X, p.Y, p.Z})
}

// UnmarshalJSON decodes [x, y, z].
func (p *Point3D) UnmarshalJSON(data []byte) error {
	var xyz [3]float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return fmt.Errorf("point must be [x, y, z]: %w", err)
	}
	p.X, p.Y, p.Z = xyz[0], xyz[1], xyz[2]
	return nil
}
