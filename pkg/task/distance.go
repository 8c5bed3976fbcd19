// pkg/task/distance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/oz"
	"github.com/mmp/glidetask/pkg/solver"
)

// incrementalSkipThresholdSquared is the "below threshold, skip" radius
// from spec.md 4.D: a projected squared distance of 1 or less never
// triggers a resolve.
const incrementalSkipThresholdSquared = int64(1)

// incrementalPercentThreshold and incrementalMinDistance implement the
// 5% / 2000 m rule from spec.md 4.D.
const incrementalPercentThreshold = 0.05
const incrementalMinDistance = 2000.0

// ScanDistanceMin returns the minimum remaining task distance from loc
// through the boundary of every task point from the active index onward,
// per spec.md 4.D. When full is false, the incremental-reuse heuristic
// may return the cached result from the last full solve without invoking
// the solver.
func (ot *OrderedTask) ScanDistanceMin(loc geo.Point, full bool) float64 {
	if len(ot.points) == 0 || ot.active >= len(ot.points) {
		return 0
	}

	if !full && ot.haveLastMin && !ot.forceFullUpdate {
		locProj := ot.projection.ProjectInteger(loc)
		lastProj := ot.projection.ProjectInteger(ot.lastMinLocation)
		if geo.DistanceSquared(locProj, lastProj) <= incrementalSkipThresholdSquared {
			return ot.lastMinDistance
		}

		oldDist := ot.lastMinLocation.Distance(ot.points[ot.active].Waypoint.Location())
		newDist := loc.Distance(ot.points[ot.active].Waypoint.Location())
		if oldDist > incrementalMinDistance && newDist > incrementalMinDistance {
			delta := newDist - oldDist
			if delta < 0 {
				delta = -delta
			}
			if delta/oldDist < incrementalPercentThreshold {
				return ot.lastMinDistance
			}
		}
	}

	layers := make([]solver.Layer, 0, len(ot.points)-ot.active)
	for i := ot.active; i < len(ot.points); i++ {
		layers = append(layers, solver.Layer(ot.minBoundaryFor(i)))
	}

	res := solver.DistanceMin(loc, ot.projection, layers)
	ot.applyMinResult(res)

	ot.lastMinLocation = loc
	ot.lastMinDistance = res.Total
	ot.haveLastMin = true
	ot.forceFullUpdate = false

	return res.Total
}

// minBoundaryFor returns the boundary points used for DistanceMin layer i.
// When start/finish cylinder radius subtraction is enabled, the start and
// finish layers use the zone's full nominal boundary sample (for a
// cylinder, the same ring as BoundaryPoints); the solve does not use the
// cylinder centers. subtractRadii adjusts the reported points afterwards.
func (ot *OrderedTask) minBoundaryFor(i int) []geo.SearchPoint {
	p := ot.points[i]
	if ot.settings.SubtractStartFinishCylinderRadius && (i == 0 || i == len(ot.points)-1) {
		return p.NominalPoints(ot.projection, ot.boundarySamples())
	}
	return p.BoundaryPoints()
}

func (ot *OrderedTask) applyMinResult(res solver.Result) {
	for i, sp := range res.Chosen {
		idx := ot.active + i
		if idx < len(ot.points) {
			ot.points[idx].SetSearchMin(sp)
		}
	}
	ot.subtractRadii(res.Chosen, ot.active)
}

// ScanDistanceMax returns the maximum achievable task distance from
// task_points[0] through the boundary of every task point, per spec.md
// 4.D. useSampled selects between the current (pruned) boundary_points
// and the full nominal boundary.
func (ot *OrderedTask) ScanDistanceMax(useSampled bool) float64 {
	if len(ot.points) == 0 {
		return 0
	}

	layers := make([]solver.Layer, len(ot.points))
	for i, p := range ot.points {
		if useSampled {
			layers[i] = solver.Layer(ot.minBoundaryFor(i))
		} else {
			layers[i] = solver.Layer(p.NominalPoints(ot.projection, ot.boundarySamples()))
		}
	}

	res := solver.DistanceMax(layers)
	for i, sp := range res.Chosen {
		if i < len(ot.points) {
			if useSampled {
				ot.points[i].SetSearchMax(sp)
			} else {
				ot.points[i].SetSearchMaxTotal(sp)
			}
		}
	}
	ot.subtractRadii(res.Chosen, 0)
	if ot.settings.SubtractStartFinishCylinderRadius && len(res.Chosen) > 0 {
		// The start/finish points were moved, so re-measure the path
		// through the reported points.
		res.Total = 0
		for i := 1; i < len(res.Chosen); i++ {
			res.Total += geo.Distance(res.Chosen[i-1].Projected, res.Chosen[i].Projected)
		}
	}

	return res.Total
}

// ScanDistanceNominal returns the task's planned total distance through
// every point's full nominal boundary (start/finish cylinder radius
// subtraction applied), the "declared distance" used before any flight
// has begun.
func (ot *OrderedTask) ScanDistanceNominal() float64 {
	return ot.ScanDistanceMax(false)
}

// subtractRadii implements the FAI Annex A 6.3 cylinder-radius
// subtraction (spec.md 4.D): after solving, replace the reported
// start/finish point of a cylinder zone with the point one radius from the
// cylinder's center toward the adjacent chosen point, using
// IntermediatePoint. offset is the index of chosen[0] within ot.points
// (0 for DistanceMax's full-task solve, ot.active for DistanceMin's
// partial solve).
func (ot *OrderedTask) subtractRadii(chosen []geo.SearchPoint, offset int) {
	if !ot.settings.SubtractStartFinishCylinderRadius || len(chosen) == 0 {
		return
	}

	if offset == 0 {
		ot.shiftCylinderPoint(chosen, offset, 0, 1)
	}
	last := len(chosen) - 1
	if offset+last == len(ot.points)-1 {
		ot.shiftCylinderPoint(chosen, offset, last, last-1)
	}
}

func (ot *OrderedTask) shiftCylinderPoint(chosen []geo.SearchPoint, offset, at, toward int) {
	if at < 0 || at >= len(chosen) || toward < 0 || toward >= len(chosen) {
		return
	}
	taskIdx := offset + at // chosen is aligned with a contiguous run of ot.points starting at the solve's offset
	if taskIdx < 0 || taskIdx >= len(ot.points) {
		return
	}
	p := ot.points[taskIdx]
	if p.Zone.Kind != oz.Cylinder {
		return
	}
	shifted := p.Waypoint.Location().IntermediatePoint(chosen[toward].Point, p.Zone.Radius)
	chosen[at] = geo.NewSearchPoint(ot.projection, shifted)
}
