// pkg/task/advance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

// taskAdvance tracks the armed/disarmed state that gates active-index
// advancement under AdvanceArm mode, per spec.md 4.E.
type taskAdvance struct {
	armed bool
}

func (a *taskAdvance) arm()    { a.armed = true }
func (a *taskAdvance) disarm() { a.armed = false }

// CheckReadyToAdvance implements spec.md 4.E's start advance policy: the
// configured advance mode (auto/arm/manual) gated by whether a transition
// fired, the start-gate window, and (if configured) PEV readiness.
func (a *taskAdvance) CheckReadyToAdvance(mode AdvanceMode, transitionEnter, transitionExit bool, windowOpen bool, pevGated, pevReady bool) bool {
	if !windowOpen {
		return false
	}
	if pevGated && !pevReady {
		return false
	}

	transitioned := transitionEnter || transitionExit
	if !transitioned {
		return false
	}

	switch mode {
	case AdvanceAuto:
		return true
	case AdvanceArm:
		if a.armed {
			a.disarm()
			return true
		}
		return false
	case AdvanceManual:
		return false
	default:
		return false
	}
}
