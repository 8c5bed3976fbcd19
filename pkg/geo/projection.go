// pkg/geo/projection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import gomath "math"

// Box is an axis-aligned bounding box in latitude/longitude (radians).
type Box struct {
	SW, NE Point
}

// BoxFromPoints returns the smallest Box containing all of pts. If pts is
// empty the result is an inverted box (SW at +Inf, NE at -Inf); callers
// are expected to guard against an empty task.
func BoxFromPoints(pts []Point) Box {
	b := Box{
		SW: NewPointRadians(gomath.Inf(1), gomath.Inf(1)),
		NE: NewPointRadians(gomath.Inf(-1), gomath.Inf(-1)),
	}
	for _, p := range pts {
		b.SW.Lat = gomath.Min(b.SW.Lat, p.Lat)
		b.SW.Lon = gomath.Min(b.SW.Lon, p.Lon)
		b.NE.Lat = gomath.Max(b.NE.Lat, p.Lat)
		b.NE.Lon = gomath.Max(b.NE.Lon, p.Lon)
	}
	return b
}

// Center returns the midpoint of the box, used as the origin for a
// Projection derived from it.
func (b Box) Center() Point {
	return NewPointRadians((b.SW.Lat+b.NE.Lat)/2, (b.SW.Lon+b.NE.Lon)/2)
}

// Projection maps GeoPoints to signed integer Cartesian coordinates
// (meters from an origin, locally flat) for fast bounding-box overlap
// tests and path-solver distance computations. It is derived from the
// task's bounding Box and is stable while the task's point set is stable;
// recompute it (via NewProjection) whenever the task's geometry changes
// structurally.
type Projection struct {
	origin             Point
	metersPerRadianLon float64 // scaled by cos(origin.Lat) for local flatness
}

// NewProjection derives a Projection centered on box's midpoint.
func NewProjection(box Box) Projection {
	origin := box.Center()
	return Projection{
		origin:             origin,
		metersPerRadianLon: EarthRadiusMeters * gomath.Cos(origin.Lat),
	}
}

// ProjectInteger returns p's position in the projection as integer meters
// from the origin: x = longitude axis, y = latitude axis.
func (pr Projection) ProjectInteger(p Point) [2]int32 {
	x := (p.Lon - pr.origin.Lon) * pr.metersPerRadianLon
	y := (p.Lat - pr.origin.Lat) * EarthRadiusMeters
	return [2]int32{int32(gomath.Round(x)), int32(gomath.Round(y))}
}

// BoundingBox is an axis-aligned box in projected (integer meter)
// coordinates, inflated by a small margin so that adjacent-cell overlap
// tests are conservative (spec.md 4.E's "nearby" test).
type BoundingBox struct {
	Center [2]int32
	Radius int32
}

// NewBoundingBox returns the BoundingBox that covers pts under projection
// pr, inflated by 1 unit as spec.md 4.A requires.
func NewBoundingBox(pr Projection, pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	first := pr.ProjectInteger(pts[0])
	minX, maxX := first[0], first[0]
	minY, maxY := first[1], first[1]
	for _, p := range pts[1:] {
		c := pr.ProjectInteger(p)
		if c[0] < minX {
			minX = c[0]
		}
		if c[0] > maxX {
			maxX = c[0]
		}
		if c[1] < minY {
			minY = c[1]
		}
		if c[1] > maxY {
			maxY = c[1]
		}
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	halfX, halfY := (maxX-minX)/2, (maxY-minY)/2
	radius := halfX
	if halfY > radius {
		radius = halfY
	}
	return BoundingBox{Center: [2]int32{cx, cy}, Radius: radius + 1}
}

// Overlaps reports whether two (inflated) bounding boxes intersect, using
// a simple axis-aligned Chebyshev-distance test.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	dx := b.Center[0] - other.Center[0]
	if dx < 0 {
		dx = -dx
	}
	dy := b.Center[1] - other.Center[1]
	if dy < 0 {
		dy = -dy
	}
	return dx <= b.Radius+other.Radius && dy <= b.Radius+other.Radius
}
