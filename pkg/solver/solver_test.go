// pkg/solver/solver_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package solver

import (
	"testing"

	"github.com/mmp/glidetask/pkg/geo"
	"github.com/stretchr/testify/require"
)

func layerAt(pr geo.Projection, pts ...geo.Point) Layer {
	l := make(Layer, len(pts))
	for i, p := range pts {
		l[i] = geo.NewSearchPoint(pr, p)
	}
	return l
}

func testProjection() geo.Projection {
	box := geo.BoxFromPoints([]geo.Point{
		geo.NewPointDegrees(50.9, -0.1),
		geo.NewPointDegrees(51.1, 0.1),
	})
	return geo.NewProjection(box)
}

func TestDistanceMinStraightLine(t *testing.T) {
	pr := testProjection()
	start := geo.NewPointDegrees(51.0, 0.0)
	a := geo.NewPointDegrees(51.0, 0.01)
	b := geo.NewPointDegrees(51.0, 0.02)

	layers := []Layer{layerAt(pr, a), layerAt(pr, b)}
	res := DistanceMin(start, pr, layers)

	want := start.Distance(a) + a.Distance(b)
	require.InDelta(t, want, res.Total, 5)
	require.Len(t, res.Chosen, 2)
}

func TestDistanceMinPicksCloserVertex(t *testing.T) {
	pr := testProjection()
	start := geo.NewPointDegrees(51.0, 0.0)
	near := geo.NewPointDegrees(51.0, 0.005)
	far := geo.NewPointDegrees(51.0, 0.05)

	layers := []Layer{layerAt(pr, far, near)}
	res := DistanceMin(start, pr, layers)

	require.InDelta(t, start.Distance(near), res.Total, 5)
}

func TestDistanceMaxPicksFartherVertex(t *testing.T) {
	pr := testProjection()
	a0 := geo.NewPointDegrees(51.0, 0.0)
	near := geo.NewPointDegrees(51.0, 0.005)
	far := geo.NewPointDegrees(51.0, 0.05)

	layers := []Layer{layerAt(pr, a0), layerAt(pr, near, far)}
	res := DistanceMax(layers)

	want := a0.Distance(far)
	require.InDelta(t, want, res.Total, 5)
}

func TestDistanceMinNeverExceedsDistanceMax(t *testing.T) {
	// Testable property 5 from spec.md 8: ScanDistanceMin <= ScanDistanceMax
	// over the same boundaries, for N >= 2.
	pr := testProjection()
	start := geo.NewPointDegrees(51.0, 0.0)
	p1a := geo.NewPointDegrees(51.0, 0.01)
	p1b := geo.NewPointDegrees(51.0, 0.015)
	p2a := geo.NewPointDegrees(51.0, 0.02)
	p2b := geo.NewPointDegrees(51.0, 0.03)

	minLayers := []Layer{layerAt(pr, p1a, p1b), layerAt(pr, p2a, p2b)}
	minRes := DistanceMin(start, pr, minLayers)

	maxLayers := []Layer{layerAt(pr, p1a, p1b), layerAt(pr, p2a, p2b)}
	maxRes := DistanceMax(maxLayers)

	require.LessOrEqual(t, minRes.Total, maxRes.Total+1e-6)
}

func TestEmptyLayersReturnZero(t *testing.T) {
	pr := testProjection()
	res := DistanceMin(geo.NewPointDegrees(51, 0), pr, nil)
	require.Equal(t, Result{}, res)

	res2 := DistanceMax(nil)
	require.Equal(t, Result{}, res2)
}

func TestDistanceMaxSkipsUnreachableLayer(t *testing.T) {
	// A layer with zero candidates can't be traversed; downstream layers
	// should simply have no finite path, and DistanceMax should not panic.
	pr := testProjection()
	a0 := geo.NewPointDegrees(51.0, 0.0)
	layers := []Layer{layerAt(pr, a0), {}, layerAt(pr, geo.NewPointDegrees(51, 0.02))}
	res := DistanceMax(layers)
	require.Equal(t, Result{}, res)
}
