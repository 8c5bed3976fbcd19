// pkg/geo/point.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo provides the geometric primitives the task engine is built
// on: geopoints in radians, great-circle distance and bearing, and the
// flat (locally planar) projection used for fast integer bounding-box and
// path-solver arithmetic.
package geo

import (
	gomath "math"
)

// EarthRadiusMeters is the mean earth radius used throughout, matching
// the value used for great-circle distance elsewhere in the corpus.
const EarthRadiusMeters = 6371000.0

// Point is a position in latitude/longitude, stored in radians. The zero
// value is not a valid point; Valid must be set explicitly by a
// constructor.
type Point struct {
	Lat, Lon float64
	Valid    bool
}

// NewPointRadians returns a valid Point from latitude/longitude in radians.
func NewPointRadians(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon, Valid: true}
}

// NewPointDegrees returns a valid Point from latitude/longitude in degrees.
func NewPointDegrees(latDeg, lonDeg float64) Point {
	return NewPointRadians(latDeg*gomath.Pi/180, lonDeg*gomath.Pi/180)
}

// IsValid reports whether p was produced by a constructor (as opposed to
// being a bare zero value).
func (p Point) IsValid() bool {
	return p.Valid
}

// DegreesLat and DegreesLon return p's coordinates in degrees, for display.
func (p Point) DegreesLat() float64 { return p.Lat * 180 / gomath.Pi }
func (p Point) DegreesLon() float64 { return p.Lon * 180 / gomath.Pi }

// Distance returns the great-circle distance between p and other, in
// meters, via the haversine formula.
func (p Point) Distance(other Point) float64 {
	dLat := other.Lat - p.Lat
	dLon := other.Lon - p.Lon

	sinDLat2 := gomath.Sin(dLat / 2)
	sinDLon2 := gomath.Sin(dLon / 2)
	a := sinDLat2*sinDLat2 + gomath.Cos(p.Lat)*gomath.Cos(other.Lat)*sinDLon2*sinDLon2
	c := 2 * gomath.Atan2(gomath.Sqrt(a), gomath.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Bearing returns the initial bearing (radians, 0 = north, clockwise)
// of the great-circle path from p to other.
func (p Point) Bearing(other Point) float64 {
	dLon := other.Lon - p.Lon
	y := gomath.Sin(dLon) * gomath.Cos(other.Lat)
	x := gomath.Cos(p.Lat)*gomath.Sin(other.Lat) - gomath.Sin(p.Lat)*gomath.Cos(other.Lat)*gomath.Cos(dLon)
	return gomath.Atan2(y, x)
}

// Destination returns the point at distance d (meters) along the great
// circle from p with initial bearing brng (radians, 0 = north, clockwise).
// This is the direct geodesic problem; used to sample observation zone
// boundaries around a center point.
func (p Point) Destination(brng, d float64) Point {
	angDist := d / EarthRadiusMeters

	lat2 := gomath.Asin(gomath.Sin(p.Lat)*gomath.Cos(angDist) +
		gomath.Cos(p.Lat)*gomath.Sin(angDist)*gomath.Cos(brng))
	lon2 := p.Lon + gomath.Atan2(
		gomath.Sin(brng)*gomath.Sin(angDist)*gomath.Cos(p.Lat),
		gomath.Cos(angDist)-gomath.Sin(p.Lat)*gomath.Sin(lat2))

	return NewPointRadians(lat2, lon2)
}

// IntermediatePoint returns the point at distance d (meters) along the
// great circle from p toward other. Used to move a scored point from an
// observation zone's center onto its boundary, per FAI Annex A radius
// subtraction rules.
func (p Point) IntermediatePoint(other Point, d float64) Point {
	return p.Destination(p.Bearing(other), d)
}

// PointInPolygon reports whether p lies inside the polygon pts (a closed
// ring, given in order, first vertex not repeated), via the standard
// even-odd ray-casting test against lon/lat treated as a flat plane. Used
// for Custom observation zone containment, where the polygon is small
// enough that the flat-plane approximation is negligible.
func PointInPolygon(p Point, pts []Point) bool {
	inside := false
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0.Lat <= p.Lat && p.Lat < p1.Lat) || (p1.Lat <= p.Lat && p.Lat < p0.Lat) {
			x := p0.Lon + (p.Lat-p0.Lat)*(p1.Lon-p0.Lon)/(p1.Lat-p0.Lat)
			if x > p.Lon {
				inside = !inside
			}
		}
	}
	return inside
}
