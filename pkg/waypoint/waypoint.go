// pkg/waypoint/waypoint.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package waypoint provides the minimal read-only Waypoints collaborator
// spec.md 6 declares as an external boundary interface: deduplication of
// waypoints by name on Commit. Persistence and the waypoint database
// itself are out of scope (spec.md 1); this package only implements the
// in-memory lookup surface the task engine consumes.
package waypoint

import (
	"math"

	"github.com/google/uuid"
	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/task"
	"github.com/paulmach/orb"
)

// Point is a concrete task.Waypoint: a named location identified by a
// stable UUID, stored as an orb.Point (lon, lat in degrees) for
// interoperability with the rest of the pack's geospatial tooling and
// converted to pkg/geo's radian representation on read.
type Point struct {
	ID     uuid.UUID
	WPName string
	Loc    orb.Point // degrees: [lon, lat]
}

// New returns a Point at the given latitude/longitude (degrees), with a
// freshly generated identity.
func New(name string, latDeg, lonDeg float64) *Point {
	return &Point{
		ID:     uuid.New(),
		WPName: name,
		Loc:    orb.Point{lonDeg, latDeg},
	}
}

func (p *Point) Name() string { return p.WPName }

func (p *Point) Location() geo.Point {
	return geo.NewPointRadians(p.Loc[1]*math.Pi/180, p.Loc[0]*math.Pi/180)
}

// Database is an in-memory Waypoints collaborator: a set of known
// waypoints keyed by name, used by CheckExistsOrAppend to deduplicate on
// Commit (spec.md 6).
type Database struct {
	byName map[string]*Point
}

// NewDatabase returns an empty waypoint database.
func NewDatabase() *Database {
	return &Database{byName: make(map[string]*Point)}
}

// Add registers p, overwriting any existing waypoint of the same name.
func (d *Database) Add(p *Point) {
	d.byName[p.WPName] = p
}

// CheckExistsOrAppend implements task.Waypoints: if a waypoint with the
// same name is already known, the existing instance is returned
// (deduplicating identity); otherwise w is registered and returned as-is.
func (d *Database) CheckExistsOrAppend(w task.Waypoint) task.Waypoint {
	name := w.Name()
	if existing, ok := d.byName[name]; ok {
		return existing
	}
	if p, ok := w.(*Point); ok {
		d.byName[name] = p
		return p
	}
	// Not a *Point (e.g. a test stub): wrap it in a Point so identity is
	// still stable across subsequent lookups by name.
	loc := w.Location()
	p := &Point{ID: uuid.New(), WPName: name, Loc: orb.Point{loc.DegreesLon(), loc.DegreesLat()}}
	d.byName[name] = p
	return p
}

var _ task.Waypoint = (*Point)(nil)
