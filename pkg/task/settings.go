// pkg/task/settings.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import "time"

// AdvanceMode controls how the active index advances once a transition's
// entry conditions are satisfied, per spec.md 4.E's CheckReadyToAdvance.
type AdvanceMode int

const (
	AdvanceAuto AdvanceMode = iota
	AdvanceArm
	AdvanceManual
)

// OrderedTaskSettings bundles start constraints, AAT minimum time, and the
// handful of rule toggles spec.md 9 calls out as configuration rather than
// global constants.
type OrderedTaskSettings struct {
	// StartOpenTime/StartCloseTime bound the scorable start window absent
	// any PEV override; zero values mean "unbounded".
	StartOpenTime  time.Time
	StartCloseTime time.Time

	// ScorePEV enables pilot-event-gated starts (spec.md 4.F); when true
	// the start's TransitionExit additionally requires pev_ready.
	ScorePEV bool

	// PEVStartWaitTime is the delay added to the PEV timestamp before the
	// start window opens (spec.md 4.F).
	PEVStartWaitTime time.Duration

	// PEVStartWindow is the width of the resulting open window when
	// ScorePEV is false (a fixed window rather than an open-ended one).
	PEVStartWindow time.Duration

	// AATMinTime is the minimum time an AAT task must be flown for before
	// it is considered validly completed; consumed by stats, not enforced
	// by the engine itself.
	AATMinTime time.Duration

	// Advance selects the active-index advance policy (spec.md 4.E).
	Advance AdvanceMode

	// SubtractStartFinishCylinderRadius elevates the source's global
	// constant (spec.md 9) to a per-task field.
	SubtractStartFinishCylinderRadius bool

	// EmulateLegacyRemove preserves the off-by-one-looking active-index
	// adjustment spec.md 9 calls out as possibly-buggy-but-load-bearing
	// behavior in Remove, rather than silently "fixing" it.
	EmulateLegacyRemove bool

	// BoundarySamples is the number of vertices each observation zone's
	// boundary is sampled to (spec.md 5 bounds solver cost at B<=24).
	BoundarySamples int
}

// DefaultOrderedTaskSettings returns settings matching spec.md's stated
// defaults: radius subtraction enabled, legacy remove behavior preserved
// under its flag, 24 boundary samples.
func DefaultOrderedTaskSettings() OrderedTaskSettings {
	return OrderedTaskSettings{
		SubtractStartFinishCylinderRadius: true,
		EmulateLegacyRemove:               true,
		BoundarySamples:                   24,
		PEVStartWaitTime:                  5 * time.Minute,
		PEVStartWindow:                    10 * time.Minute,
	}
}
