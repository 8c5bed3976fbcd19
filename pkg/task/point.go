// pkg/task/point.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package task implements the ordered-task state machine: TaskPoint,
// OrderedTask, the transition engine, and the stats that feed scoring and
// navigation. Task points are a tagged struct (capability dispatch via
// Kind), not a class hierarchy, and neighbour links are indices into the
// owning OrderedTask's slice rather than pointers, per the redesign notes
// this engine was built against.
package task

import (
	"math"

	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/oz"
)

const noNeighbour = -1

// TaskPoint is one node in the ordered task: a waypoint reference, an
// observation zone, its kind, and the mutable per-flight sample state
// spec.md 3 lists.
type TaskPoint struct {
	Waypoint Waypoint
	Zone     *oz.Zone
	Kind     Kind

	hasEntered bool
	hasExited  bool

	scoredState    AircraftState
	hasScoredState bool

	boundaryPoints   []geo.SearchPoint // remaining-reachable; pruned
	sampleNearPoints []geo.Point       // fixes accumulated inside/near the OZ

	boundingBox geo.BoundingBox

	prevIndex int // index of previous neighbour in owning slice, or noNeighbour
	nextIndex int // index of next neighbour, or noNeighbour

	// prevNeighbourLocation caches the previous task point's waypoint
	// location, the reference AAT area-pruning measures achieved depth
	// from (spec.md 4.D); refreshed by SetNeighbours.
	prevNeighbourLocation geo.Point

	active activeRelative

	// Solver write-back, per spec.md 4.C.
	searchMin      geo.SearchPoint
	searchMax      geo.SearchPoint
	searchMaxTotal geo.SearchPoint
}

// NewTaskPoint constructs a TaskPoint from a waypoint and observation zone.
// Neighbours, bounding box and boundary points are populated by
// SetNeighbours/UpdateOZ once the point is inserted into an OrderedTask.
func NewTaskPoint(wp Waypoint, z *oz.Zone, kind Kind) *TaskPoint {
	return &TaskPoint{
		Waypoint:  wp,
		Zone:      z,
		Kind:      kind,
		prevIndex: noNeighbour,
		nextIndex: noNeighbour,
	}
}

// HasEntered and HasExited report the latched enter/exit state; they
// never reset to false except via OrderedTask.Reset.
func (tp *TaskPoint) HasEntered() bool { return tp.hasEntered }
func (tp *TaskPoint) HasExited() bool  { return tp.hasExited }

// ScoredState returns the AircraftState snapshot chosen to represent this
// point's scoring transition, and whether one has been recorded yet.
func (tp *TaskPoint) ScoredState() (AircraftState, bool) {
	return tp.scoredState, tp.hasScoredState
}

// BoundaryPoints returns the current remaining-reachable boundary sample
// (shrinks over the flight for AAT points); the solver's primary input.
func (tp *TaskPoint) BoundaryPoints() []geo.SearchPoint {
	return tp.boundaryPoints
}

// NominalPoints returns the full, unpruned boundary sample regardless of
// flight history; used for planned-total DistanceMax solves and for
// start/finish cylinder-radius subtraction (spec.md 4.D).
func (tp *TaskPoint) NominalPoints(pr geo.Projection, n int) []geo.SearchPoint {
	return tp.Zone.NominalBoundary(pr, n)
}

// BoundingBox returns the cached projected bounding box of this point's
// current boundary, refreshed by UpdateOZ.
func (tp *TaskPoint) BoundingBox() geo.BoundingBox {
	return tp.boundingBox
}

// AsAAT returns this point as its AAT-specific view when its Kind is
// IntermediateAAT, and false otherwise. This is the capability accessor
// spec.md 9 calls for in place of a dynamic downcast.
func (tp *TaskPoint) AsAAT() (*TaskPoint, bool) {
	if tp.Kind.IsAAT() {
		return tp, true
	}
	return nil, false
}

// SetNeighbours records the non-owning prev/next slot indices and, for
// shapes whose geometry depends on the bisector of the incoming/outgoing
// legs (FAI sector, keyhole, line), recomputes the zone's Axis.
func (tp *TaskPoint) SetNeighbours(prevIndex, nextIndex int, prev, next *TaskPoint) {
	tp.prevIndex, tp.nextIndex = prevIndex, nextIndex

	if prev != nil {
		tp.prevNeighbourLocation = prev.Waypoint.Location()
	} else {
		tp.prevNeighbourLocation = tp.Waypoint.Location()
	}

	if prev == nil && next == nil {
		return
	}
	var inBearing, outBearing float64
	haveIn, haveOut := false, false
	if prev != nil {
		inBearing = prev.Waypoint.Location().Bearing(tp.Waypoint.Location())
		haveIn = true
	}
	if next != nil {
		outBearing = tp.Waypoint.Location().Bearing(next.Waypoint.Location())
		haveOut = true
	}

	switch {
	case haveIn && haveOut:
		tp.Zone.SetAxis(bisect(inBearing, outBearing))
	case haveIn:
		tp.Zone.SetAxis(inBearing)
	case haveOut:
		tp.Zone.SetAxis(outBearing)
	}
}

// bisect returns the bearing bisecting the incoming leg's reciprocal and
// the outgoing leg: the direction a sector "opens toward" when a glider
// flies in along `in` and is meant to continue out along `out`.
func bisect(in, out float64) float64 {
	reciprocalIn := normalizeAngle(in + math.Pi)
	return normalizeAngle(reciprocalIn + normalizeAngle(out-reciprocalIn)/2)
}

func normalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	for a < 0 {
		a += twoPi
	}
	for a >= twoPi {
		a -= twoPi
	}
	return a
}

// ScanActive recomputes this point's position relative to the active
// index, per spec.md 4.C.
func (tp *TaskPoint) ScanActive(myIndex, active int) {
	switch {
	case myIndex < active:
		tp.active = BeforeActive
	case myIndex == active:
		tp.active = CurrentActive
	default:
		tp.active = AfterActive
	}
}

// Active returns the cached active-relative state set by the last
// ScanActive call.
func (tp *TaskPoint) Active() activeRelative {
	return tp.active
}

// UpdateOZ recomputes cached OZ boundary/bounding-box state under the
// current projection; called after every structural change or whenever
// the task's projection is refreshed.
func (tp *TaskPoint) UpdateOZ(pr geo.Projection, samples int) {
	tp.boundaryPoints = tp.Zone.Boundary(pr, samples, tp.prevNeighbourLocation)
	pts := make([]geo.Point, len(tp.boundaryPoints))
	for i, sp := range tp.boundaryPoints {
		pts[i] = sp.Point
	}
	if len(pts) > 0 {
		tp.boundingBox = geo.NewBoundingBox(pr, pts)
	}
}

// UpdateSampleNear appends state to the achieved sub-polygon when it is
// inside or near the zone, and re-derives the boundary. Returns true if
// the scored shape changed, which the caller must treat as requiring a
// full path resolve (spec.md 4.C).
func (tp *TaskPoint) UpdateSampleNear(state AircraftState, pr geo.Projection, samples int) bool {
	if !tp.Kind.IsAAT() || !tp.Zone.Contains(state.Location) {
		return false
	}
	before := len(tp.boundaryPoints)
	tp.sampleNearPoints = append(tp.sampleNearPoints, state.Location)
	tp.Zone.Observe(state.Location, tp.prevNeighbourLocation)
	tp.boundaryPoints = tp.Zone.Boundary(pr, samples, tp.prevNeighbourLocation)
	return len(tp.boundaryPoints) != before
}

// UpdateSampleFar is the no-op counterpart of UpdateSampleNear for fixes
// outside the zone's bounding box: nothing to accumulate, but present so
// callers can treat both cases uniformly per spec.md 4.C.
func (tp *TaskPoint) UpdateSampleFar(AircraftState) bool {
	return false
}

// latchEnter/latchExit record a scoring-relevant transition. scoringEdge
// tells whether this edge is the point's scoring edge (enter for
// Intermediate/Finish, exit for Start); only then is scoredState set, per
// spec.md 3.
func (tp *TaskPoint) latchEnter(state AircraftState, scoringEdge bool) {
	tp.hasEntered = true
	if scoringEdge {
		tp.scoredState = state
		tp.hasScoredState = true
	}
}

func (tp *TaskPoint) latchExit(state AircraftState, scoringEdge bool) {
	tp.hasExited = true
	if scoringEdge {
		tp.scoredState = state
		tp.hasScoredState = true
	}
}

// reset clears all per-flight sample state, restoring the point to its
// pre-flight condition; called by OrderedTask.Reset.
func (tp *TaskPoint) reset() {
	tp.hasEntered = false
	tp.hasExited = false
	tp.hasScoredState = false
	tp.scoredState = AircraftState{}
	tp.sampleNearPoints = nil
	tp.Zone.ResetPruning()
}

// SetSearchMin/SetSearchMax/SetSearchMaxTotal are the solver's write-back
// of the chosen boundary vertex for this layer, per spec.md 4.C.
func (tp *TaskPoint) SetSearchMin(sp geo.SearchPoint)      { tp.searchMin = sp }
func (tp *TaskPoint) SetSearchMax(sp geo.SearchPoint)      { tp.searchMax = sp }
func (tp *TaskPoint) SetSearchMaxTotal(sp geo.SearchPoint) { tp.searchMaxTotal = sp }

func (tp *TaskPoint) SearchMin() geo.SearchPoint      { return tp.searchMin }
func (tp *TaskPoint) SearchMax() geo.SearchPoint      { return tp.searchMax }
func (tp *TaskPoint) SearchMaxTotal() geo.SearchPoint { return tp.searchMaxTotal }

// clone copies the task point's waypoint, kind and zone, allocating a
// fresh zone, per spec.md 5's allocation discipline ("cloning a TaskPoint
// allocates a fresh OZ"). The per-flight state (entered/exited latches,
// scored state, samples, boundary points) and neighbour links are not
// copied; the zone copy keeps any area pruning the original had.
func (tp *TaskPoint) clone() *TaskPoint {
	zCopy := *tp.Zone
	nc := &TaskPoint{
		Waypoint:  tp.Waypoint,
		Zone:      &zCopy,
		Kind:      tp.Kind,
		prevIndex: noNeighbour,
		nextIndex: noNeighbour,
	}
	return nc
}
