// Package geoalgo contains the stateless geometry algorithms shared by the
// wall pipeline and the frame mapper: point/segment and point/line
// distances, segment and line intersection, parallel and perpendicular
// tests with an angular tolerance, 1D interval arithmetic on projected
// segments, collinearity, and collinear-segment merge.
//
// Angles passed in are in degrees; distances are in drawing units.
package geoalgo
