// pkg/geo/searchpoint.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import gomath "math"

// SearchPoint pairs a geographic point with its projected integer
// coordinate. Path solvers operate entirely on the projected coordinate;
// the GeoPoint is carried along so the chosen vertex can be reported back
// to callers and used for further great-circle math (e.g. start/finish
// cylinder radius subtraction).
type SearchPoint struct {
	Point     Point
	Projected [2]int32
}

// NewSearchPoint projects p under pr and pairs the two.
func NewSearchPoint(pr Projection, p Point) SearchPoint {
	return SearchPoint{Point: p, Projected: pr.ProjectInteger(p)}
}

// Equal compares SearchPoints by their projected coordinate only, per
// spec: two boundary samples that land on the same projected grid cell
// are considered the same vertex regardless of float wobble in the
// underlying GeoPoint.
func (s SearchPoint) Equal(other SearchPoint) bool {
	return s.Projected == other.Projected
}

// DistanceSquared returns the squared Euclidean distance (in meters²)
// between two SearchPoints' projected coordinates. Used for cheap
// relative comparisons (e.g. the incremental-rescan threshold test)
// without incurring a sqrt.
func DistanceSquared(a, b [2]int32) int64 {
	dx := int64(a[0] - b[0])
	dy := int64(a[1] - b[1])
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance (meters) between two projected
// coordinates.
func Distance(a, b [2]int32) float64 {
	dx := float64(a[0] - b[0])
	dy := float64(a[1] - b[1])
	return gomath.Sqrt(dx*dx + dy*dy)
}
