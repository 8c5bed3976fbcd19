// pkg/task/ordered_task.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/log"
	"github.com/mmp/glidetask/pkg/startgate"
	"github.com/mmp/glidetask/pkg/util"
)

// OrderedTask is the facade of spec.md 4.G/3: an ordered vector of
// TaskPoints, a parallel vector of optional (alternative) start points, a
// projection, settings, the two lazily-constructed solver accessors'
// cached results, and the published Stats snapshot.
type OrderedTask struct {
	lg *log.Logger

	points         []*TaskPoint
	optionalStarts []*TaskPoint

	projection geo.Projection
	bounds     geo.Box

	settings OrderedTaskSettings
	gate     *startgate.Gate
	advance  taskAdvance
	events   TaskEvents
	waypoints Waypoints

	active int

	forceFullUpdate bool

	// Incremental-reuse state for ScanDistanceMin, per spec.md 4.D.
	lastMinLocation geo.Point
	haveLastMin     bool
	lastMinDistance float64

	stats   Stats
	statsMu util.LoggingMutex
}

// NewOrderedTask returns an empty OrderedTask ready for mutation.
func NewOrderedTask(settings OrderedTaskSettings, events TaskEvents, waypoints Waypoints, lg *log.Logger) *OrderedTask {
	if events == nil {
		events = NullTaskEvents{}
	}
	ot := &OrderedTask{
		lg:        lg,
		settings:  settings,
		events:    events,
		waypoints: waypoints,
		gate: startgate.NewGate(settings.ScorePEV, settings.PEVStartWaitTime, settings.PEVStartWindow,
			settings.StartOpenTime, settings.StartCloseTime),
	}
	return ot
}

// Len returns the number of task points.
func (ot *OrderedTask) Len() int { return len(ot.points) }

// Point returns the task point at index i, or nil if out of range.
func (ot *OrderedTask) Point(i int) *TaskPoint {
	if i < 0 || i >= len(ot.points) {
		return nil
	}
	return ot.points[i]
}

// Active returns the current active task-point index.
func (ot *OrderedTask) Active() int { return ot.active }

// Append adds p to the end of the task.
func (ot *OrderedTask) Append(p *TaskPoint) bool {
	return ot.Insert(p, len(ot.points))
}

// Insert places p at index k, per spec.md 4.G: rewires neighbours of the
// affected range, adjusts the active index if an existing point at or
// before it was shifted, and marks forceFullUpdate. Insert does not check
// factory constraints; the only rejection is an out-of-range k, and the
// resulting task is validated separately by CheckTask.
func (ot *OrderedTask) Insert(p *TaskPoint, k int) bool {
	if k < 0 || k > len(ot.points) {
		return false
	}
	ot.points = append(ot.points, nil)
	copy(ot.points[k+1:], ot.points[k:])
	ot.points[k] = p

	if k < len(ot.points)-1 && k <= ot.active {
		ot.active++
	}

	ot.rewireNeighbours()
	ot.forceFullUpdate = true
	ot.refreshGeometry()
	return true
}

// Remove deletes the point at index k, per spec.md 4.G and 9: rewires
// neighbours, and adjusts the active index. When EmulateLegacyRemove is
// set, the active-index adjustment preserves the source's documented
// possibly-buggy expression verbatim (spec.md 9) rather than a corrected
// one, since its true semantics were never pinned down and silently
// "fixing" it could change scored results for tasks relying on it.
func (ot *OrderedTask) Remove(k int) bool {
	if k < 0 || k >= len(ot.points) {
		return false
	}
	n := len(ot.points)

	if ot.settings.EmulateLegacyRemove {
		if ot.active > k || (ot.active > 0 && ot.active == n-1) {
			ot.active--
		}
	} else if ot.active > k {
		ot.active--
	}
	if ot.active < 0 {
		ot.active = 0
	}

	ot.points = append(ot.points[:k], ot.points[k+1:]...)
	if ot.active >= len(ot.points) && len(ot.points) > 0 {
		ot.active = len(ot.points) - 1
	}

	ot.rewireNeighbours()
	ot.forceFullUpdate = true
	ot.refreshGeometry()
	return true
}

// Replace swaps the point at index k for p, rewiring neighbours.
func (ot *OrderedTask) Replace(p *TaskPoint, k int) bool {
	if k < 0 || k >= len(ot.points) {
		return false
	}
	ot.points[k] = p
	ot.rewireNeighbours()
	ot.forceFullUpdate = true
	ot.refreshGeometry()
	return true
}

// SelectOptionalStart swaps optionalStarts[idx] into slot 0, moving the
// former slot-0 point back into the optional list at idx, per spec.md
// 4.E scenario S3.
func (ot *OrderedTask) SelectOptionalStart(idx int) bool {
	if idx < 0 || idx >= len(ot.optionalStarts) || len(ot.points) == 0 {
		return false
	}
	ot.points[0], ot.optionalStarts[idx] = ot.optionalStarts[idx], ot.points[0]
	ot.rewireNeighbours()
	ot.forceFullUpdate = true
	ot.refreshGeometry()
	return true
}

// AddOptionalStart appends an alternative first-leg start point.
func (ot *OrderedTask) AddOptionalStart(p *TaskPoint) {
	ot.optionalStarts = append(ot.optionalStarts, p)
}

// OptionalStarts returns the current alternative start points.
func (ot *OrderedTask) OptionalStarts() []*TaskPoint {
	return ot.optionalStarts
}

func (ot *OrderedTask) rewireNeighbours() {
	for i, p := range ot.points {
		var prev, next *TaskPoint
		prevIdx, nextIdx := noNeighbour, noNeighbour
		if i > 0 {
			prev = ot.points[i-1]
			prevIdx = i - 1
		}
		if i < len(ot.points)-1 {
			next = ot.points[i+1]
			nextIdx = i + 1
		}
		p.SetNeighbours(prevIdx, nextIdx, prev, next)
	}
}

// refreshGeometry recomputes the task's bounding box, projection, and
// every point's cached OZ state; called after any structural mutation.
func (ot *OrderedTask) refreshGeometry() {
	if len(ot.points) == 0 {
		return
	}
	locs := make([]geo.Point, len(ot.points))
	for i, p := range ot.points {
		locs[i] = p.Waypoint.Location()
	}
	ot.bounds = geo.BoxFromPoints(locs)
	ot.projection = geo.NewProjection(ot.bounds)

	for i, p := range ot.points {
		p.ScanActive(i, ot.active)
		p.UpdateOZ(ot.projection, ot.boundarySamples())
	}
}

func (ot *OrderedTask) boundarySamples() int {
	if ot.settings.BoundarySamples > 0 {
		return ot.settings.BoundarySamples
	}
	return 24
}

// CheckTask validates structural invariants (spec.md 3/7): exactly one
// Start, at position 0, and zero or one Finish, at the last position.
// Intermediate point kinds are not checked against an AAT mode.
// Returns a flattened error list via util.ErrorLogger.
func (ot *OrderedTask) CheckTask() *util.ErrorLogger {
	el := &util.ErrorLogger{}
	if len(ot.points) == 0 {
		el.Error(ErrEmptyTask)
		return el
	}

	starts, finishes := 0, 0
	for i, p := range ot.points {
		el.Push(p.Waypoint.Name())
		switch p.Kind {
		case Start:
			starts++
			if i != 0 {
				el.Error(ErrStartNotFirst)
			}
		case Finish:
			finishes++
			if i != len(ot.points)-1 {
				el.Error(ErrFinishNotLast)
			}
		}
		el.Pop()
	}
	if starts == 0 {
		el.Error(ErrNoStartPoint)
	} else if starts > 1 {
		el.Error(ErrMultipleStarts)
	}
	if finishes > 1 {
		el.Error(ErrMultipleFinishes)
	}

	return el
}

// IsValid reports whether CheckTask finds no errors; backs
// stats.task_valid.
func (ot *OrderedTask) IsValid() bool {
	return !ot.CheckTask().HaveErrors()
}

// Reset clears every point's sample state, stats.start, and advance
// state, sets active back to 0, and recomputes geometry, per spec.md 4.G.
func (ot *OrderedTask) Reset() {
	for _, p := range ot.points {
		p.reset()
	}
	ot.active = 0
	ot.forceFullUpdate = true
	ot.haveLastMin = false
	ot.advance = taskAdvance{}
	ot.gate.Reset()
	ot.stats = Stats{}
	ot.refreshGeometry()
}

// Clone returns a copy of the task's structure under the given behaviour,
// per spec.md 4.G: every point and optional start is cloned with its own
// zone. Per-flight state (entered/exited latches, scored states, the
// active index, stats and start-gate state) is not copied.
func (ot *OrderedTask) Clone(tb TaskBehaviour) *OrderedTask {
	nc := NewOrderedTask(tb.OrderedDefaults, ot.events, ot.waypoints, ot.lg)
	for _, p := range ot.points {
		nc.points = append(nc.points, p.clone())
	}
	for _, p := range ot.optionalStarts {
		nc.optionalStarts = append(nc.optionalStarts, p.clone())
	}
	nc.rewireNeighbours()
	nc.refreshGeometry()
	return nc
}

// Commit performs a structural diff-and-patch of other onto ot: shrinks
// or grows ot to match other's length, then Replaces any unequal slot
// (compared by waypoint name, location and kind), per spec.md 4.G. Each
// copied point's waypoint is passed through ot's Waypoints collaborator,
// when there is one, to deduplicate it. Returns whether anything was
// modified.
func (ot *OrderedTask) Commit(other *OrderedTask) bool {
	modified := false
	clone := func(p *TaskPoint) *TaskPoint {
		c := p.clone()
		if ot.waypoints != nil && c.Waypoint != nil {
			c.Waypoint = ot.waypoints.CheckExistsOrAppend(c.Waypoint)
		}
		return c
	}

	for len(ot.points) > len(other.points) {
		ot.Remove(len(ot.points) - 1)
		modified = true
	}
	for i := len(ot.points); i < len(other.points); i++ {
		ot.Insert(clone(other.points[i]), i)
		modified = true
	}
	for i := range ot.points {
		if !samePoint(ot.points[i], other.points[i]) {
			ot.Replace(clone(other.points[i]), i)
			modified = true
		}
	}

	return modified
}

func samePoint(a, b *TaskPoint) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Waypoint == nil || b.Waypoint == nil {
		return a.Waypoint == b.Waypoint
	}
	return a.Waypoint.Name() == b.Waypoint.Name() &&
		a.Waypoint.Location() == b.Waypoint.Location()
}

// Stats returns a copy of the published stats snapshot, guarded by the
// logging mutex per spec.md 5.
func (ot *OrderedTask) Stats() Stats {
	ot.statsMu.Lock(ot.lg)
	defer ot.statsMu.Unlock(ot.lg)
	return ot.stats
}

func (ot *OrderedTask) publishStats(s Stats) {
	ot.statsMu.Lock(ot.lg)
	defer ot.statsMu.Unlock(ot.lg)
	ot.stats = s
}

// Settings returns the task's current settings.
func (ot *OrderedTask) Settings() OrderedTaskSettings { return ot.settings }

// Gate returns the start-gate state (PEV rules), per spec.md 4.F.
func (ot *OrderedTask) Gate() *startgate.Gate { return ot.gate }

// Projection returns the task's current flat projection.
func (ot *OrderedTask) Projection() geo.Projection { return ot.projection }

// Bounds returns the task's current bounding box.
func (ot *OrderedTask) Bounds() geo.Box { return ot.bounds }

// TaskStarted reports whether the start point has recorded its exit
// transition (the scoring edge for a Start point).
func (ot *OrderedTask) TaskStarted() bool {
	if len(ot.points) == 0 {
		return false
	}
	return ot.points[0].HasExited()
}

// TaskFinished reports whether the finish point (the last point, if its
// Kind is Finish) has entered.
func (ot *OrderedTask) TaskFinished() bool {
	if len(ot.points) == 0 {
		return false
	}
	last := ot.points[len(ot.points)-1]
	return last.Kind == Finish && last.HasEntered()
}
