// pkg/task/transitions.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/oz"
)

// CheckTransitions is the transition engine of spec.md 4.E: given the
// current and previous fix, detects enter/exit per task point in the
// two-point window around the active index, advances the active index,
// updates sample state, and fires TaskEvents. Callers must invoke this
// with monotonically non-decreasing state.Time (spec.md 5); out-of-order
// fixes produce undefined advancement.
func (ot *OrderedTask) CheckTransitions(state, stateLast AircraftState) {
	if len(ot.points) == 0 {
		return
	}
	if !state.Location.IsValid() {
		panic("task: CheckTransitions called with invalid fix location")
	}

	wasStarted := ot.TaskStarted()
	wasFinished := ot.TaskFinished()

	lo := ot.active - 1
	if lo < 0 {
		lo = 0
	}
	hi := ot.active
	if hi > len(ot.points)-1 {
		hi = len(ot.points) - 1
	}

	bbNow := geo.NewBoundingBox(ot.projection, []geo.Point{state.Location})
	bbLast := geo.NewBoundingBox(ot.projection, []geo.Point{stateLast.Location})

	for i := lo; i <= hi; i++ {
		p := ot.points[i]
		nearby := p.BoundingBox().Overlaps(bbNow) || p.BoundingBox().Overlaps(bbLast)
		if !nearby {
			continue
		}

		entered := oz.TransitionEnter(p.Zone, state.Location, stateLast.Location)
		pevReady := ot.gate.PEVReady()
		pevGate := i == 0 && ot.settings.ScorePEV
		exited := oz.TransitionExit(p.Zone, state.Location, stateLast.Location, pevGate, pevReady)

		if entered {
			p.latchEnter(state, p.Kind != Start)
			ot.events.EnterTransition(p)
		}
		if exited {
			p.latchExit(state, p.Kind == Start)
			ot.events.ExitTransition(p)
		}

		if i == 0 {
			ot.checkOptionalStarts(state, stateLast)
		}

		if i == ot.active {
			windowOpen := ot.gate.WindowOpen(state.Time)
			if ot.advance.CheckReadyToAdvance(ot.settings.Advance, entered, exited, windowOpen, pevGate, pevReady) {
				if ot.active < len(ot.points)-1 {
					ot.active++
					for j, pt := range ot.points {
						pt.ScanActive(j, ot.active)
					}
				}
				ot.events.ActiveAdvanced(ot.points[ot.active], ot.active)
				ot.forceFullUpdate = true
			} else if ot.settings.Advance == AdvanceArm && (entered || exited) && windowOpen && !(pevGate && !pevReady) {
				ot.events.RequestArm(p)
			}
		}
	}

	nowStarted := ot.TaskStarted()
	nowFinished := ot.TaskFinished()

	if nowStarted && !wasStarted {
		start := ot.points[0]
		if st, ok := start.ScoredState(); ok {
			ot.stats.Start = StartStats{
				Time:          st.Time,
				Altitude:      st.Altitude,
				GroundSpeed:   st.GroundSpeed,
				AdvancedByPEV: ot.gate.PEVReady(),
			}
		}
		ot.stats.PEVBasedAdvanceReady = false
		ot.gate.ClearPEVReady()
		ot.events.TaskStart()
	}
	ot.stats.TaskFinished = nowFinished
	if nowFinished && !wasFinished {
		ot.events.TaskFinish()
	}
}

// checkOptionalStarts iterates the alternative start points; if any
// fires a transition, selects it into slot 0 and stops (spec.md 4.E
// scenario S3).
func (ot *OrderedTask) checkOptionalStarts(state, stateLast AircraftState) {
	for i, opt := range ot.optionalStarts {
		entered := oz.TransitionEnter(opt.Zone, state.Location, stateLast.Location)
		exited := oz.TransitionExit(opt.Zone, state.Location, stateLast.Location, false, true)
		if entered || exited {
			ot.SelectOptionalStart(i)
			return
		}
	}
}
