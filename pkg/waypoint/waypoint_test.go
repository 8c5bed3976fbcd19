// pkg/waypoint/waypoint_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package waypoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocationRoundTrips(t *testing.T) {
	p := New("ALPHA", 51.5, -0.1)
	loc := p.Location()
	require.InDelta(t, 51.5, loc.DegreesLat(), 1e-9)
	require.InDelta(t, -0.1, loc.DegreesLon(), 1e-9)
}

func TestCheckExistsOrAppendDeduplicatesByName(t *testing.T) {
	db := NewDatabase()
	a := New("ALPHA", 0, 0)
	db.Add(a)

	dup := New("ALPHA", 1, 1) // same name, different location
	got := db.CheckExistsOrAppend(dup)

	require.Same(t, a, got)
	require.Equal(t, 0.0, got.Location().DegreesLat())
}

func TestCheckExistsOrAppendRegistersNewWaypoint(t *testing.T) {
	db := NewDatabase()
	b := New("BRAVO", 2, 2)
	got := db.CheckExistsOrAppend(b)
	require.Same(t, b, got)

	again := db.CheckExistsOrAppend(New("BRAVO", 9, 9))
	require.Same(t, b, again)
}
