// pkg/oz/zone_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package oz

import (
	"math"
	"testing"

	"github.com/mmp/glidetask/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestCylinderContains(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewCylinder(center, 500)

	inside := center.Destination(0, 400)
	outside := center.Destination(0, 600)

	require.True(t, z.Contains(inside))
	require.False(t, z.Contains(outside))
}

func TestCylinderIsNotArea(t *testing.T) {
	z := NewCylinder(geo.NewPointDegrees(51, 0), 500)
	require.False(t, z.Kind.IsArea())
}

func TestFAISectorRespectsHalfAngle(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewFAISector(center, 1000, math.Pi/4) // 45 degrees
	z.SetAxis(0)                               // bisector points north

	within := center.Destination(0.1, 800)
	outside := center.Destination(math.Pi/2, 800) // due east, outside 45deg cone

	require.True(t, z.Contains(within))
	require.False(t, z.Contains(outside))
}

func TestKeyholeInnerCylinderUnrestricted(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewKeyhole(center, 200, 2000, math.Pi/6)
	z.SetAxis(0)

	anyDirection := center.Destination(math.Pi, 150) // due south, inside inner radius
	require.True(t, z.Contains(anyDirection))
}

func TestKeyholeOuterSectorRespectsAngle(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewKeyhole(center, 200, 2000, math.Pi/6)
	z.SetAxis(0)

	within := center.Destination(0, 1500)
	outside := center.Destination(math.Pi, 1500) // due south, beyond inner radius, off-axis
	require.True(t, z.Contains(within))
	require.False(t, z.Contains(outside))
}

func TestNominalBoundaryCylinderPointsAtRadius(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewCylinder(center, 500)
	box := geo.BoxFromPoints([]geo.Point{center.Destination(0, 600), center.Destination(math.Pi, 600)})
	pr := geo.NewProjection(box)

	boundary := z.NominalBoundary(pr, 8)
	require.Len(t, boundary, 8)
	for _, sp := range boundary {
		require.InDelta(t, 500, center.Distance(sp.Point), 2)
	}
}

func TestAreaBoundaryPrunesMonotonically(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	prev := geo.NewPointDegrees(50.9, 0.0)
	z := NewFAISector(center, 2000, math.Pi/3)
	z.SetAxis(0)

	box := geo.BoxFromPoints([]geo.Point{prev, center.Destination(0, 2500)})
	pr := geo.NewProjection(box)

	initial := z.Boundary(pr, 16, prev)

	// Simulate a fix deep inside the zone, closer to the far edge than the
	// near edge relative to prev.
	deepFix := center.Destination(0, 1500)
	z.Observe(deepFix, prev)

	pruned := z.Boundary(pr, 16, prev)
	require.LessOrEqual(t, len(pruned), len(initial))
}

func TestAreaBoundaryNeverPrunesToEmpty(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	prev := geo.NewPointDegrees(50.9, 0.0)
	z := NewFAISector(center, 2000, math.Pi/3)
	z.SetAxis(0)

	box := geo.BoxFromPoints([]geo.Point{prev, center.Destination(0, 2500)})
	pr := geo.NewProjection(box)

	// Observe a fix beyond every nominal boundary point, forcing the
	// "keep at least one" fallback.
	farFix := center.Destination(0, 100000)
	z.Observe(farFix, prev)

	boundary := z.Boundary(pr, 16, prev)
	require.Len(t, boundary, 1)
}

func TestResetPruningRestoresNominal(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	prev := geo.NewPointDegrees(50.9, 0.0)
	z := NewFAISector(center, 2000, math.Pi/3)
	z.SetAxis(0)

	box := geo.BoxFromPoints([]geo.Point{prev, center.Destination(0, 2500)})
	pr := geo.NewProjection(box)

	deepFix := center.Destination(0, 1500)
	z.Observe(deepFix, prev)
	require.True(t, z.haveAchievedDepth)

	z.ResetPruning()
	require.False(t, z.haveAchievedDepth)
	require.Equal(t, len(z.NominalBoundary(pr, 16)), len(z.Boundary(pr, 16, prev)))
}

func TestTransitionEnterAndExit(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewCylinder(center, 500)

	outside := center.Destination(0, 600)
	inside := center.Destination(0, 400)

	require.True(t, TransitionEnter(z, inside, outside))
	require.False(t, TransitionEnter(z, outside, inside))

	require.True(t, TransitionExit(z, outside, inside, false, false))
	require.False(t, TransitionExit(z, inside, outside, false, false))
}

func TestTransitionExitGatedByPEV(t *testing.T) {
	center := geo.NewPointDegrees(51.0, 0.0)
	z := NewCylinder(center, 500)

	outside := center.Destination(0, 600)
	inside := center.Destination(0, 400)

	// Gate is active and not yet ready: exit must not register.
	require.False(t, TransitionExit(z, outside, inside, true, false))
	// Gate active and ready: exit registers.
	require.True(t, TransitionExit(z, outside, inside, true, true))
}

func TestCustomPolygonContains(t *testing.T) {
	verts := []geo.Point{
		geo.NewPointDegrees(51.0, 0.0),
		geo.NewPointDegrees(51.0, 0.1),
		geo.NewPointDegrees(51.1, 0.1),
		geo.NewPointDegrees(51.1, 0.0),
	}
	z := NewCustom(verts)

	inside := geo.NewPointDegrees(51.05, 0.05)
	outside := geo.NewPointDegrees(52.0, 2.0)

	require.True(t, z.Contains(inside))
	require.False(t, z.Contains(outside))
}
