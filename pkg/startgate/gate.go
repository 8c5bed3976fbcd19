// pkg/startgate/gate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package startgate

import "time"

// Gate holds the live state of a task's start window: the configured
// rules, whatever PEV has been latched, and the resulting open time span.
type Gate struct {
	ScorePEV         bool
	PEVStartWaitTime time.Duration
	PEVStartWindow   time.Duration

	// ConfiguredOpen/ConfiguredClose bound the scorable window absent any
	// PEV override.
	ConfiguredOpen  time.Time
	ConfiguredClose time.Time

	openTimeSpan       TimeSpan
	pevLatched         bool
	pevReady           bool
	pevEventTime       time.Time
	pevEventHadSeconds bool
}

// NewGate returns a Gate seeded with the configured (non-PEV) window.
func NewGate(scorePEV bool, waitTime, window time.Duration, open, close time.Time) *Gate {
	g := &Gate{
		ScorePEV:         scorePEV,
		PEVStartWaitTime: waitTime,
		PEVStartWindow:   window,
		ConfiguredOpen:   open,
		ConfiguredClose:  close,
	}
	if !open.IsZero() {
		g.openTimeSpan = TimeSpan{Open: FromSinceMidnight(open), Close: FromSinceMidnight(close)}
	}
	return g
}

// SetPEV latches a pilot event at the given broken time, per spec.md 4.F.
// Returns false (PEVIgnored) when the gate is PEV-scored and the window
// has not yet begun relative to lastStateTime — the PEV arrived before
// the pilot was allowed to trigger it.
func (g *Gate) SetPEV(bt time.Time, lastStateTime time.Time) bool {
	if g.ScorePEV && !g.openTimeSpan.Open.IsZero() && !g.openTimeSpan.HasBegun(FromSinceMidnight(lastStateTime)) {
		return false
	}
	g.pevLatched = true
	g.pevEventTime = bt
	g.pevEventHadSeconds = bt.Second() != 0
	return true
}

// UpdateAfterPEV processes a latched PEV against the current aircraft
// state time, per spec.md 4.F: computes the new start time by ceiling the
// wait time to the next minute, then sets the open window (open-ended if
// ScorePEV, else PEVStartWindow wide) and, for scored PEV starts, marks
// pevReady.
func (g *Gate) UpdateAfterPEV(stateTime time.Time) {
	if !g.pevLatched {
		return
	}
	newStart := FromSinceMidnight(stateTime).Add(g.PEVStartWaitTime).CeilMinute(g.pevEventHadSeconds)

	if g.ScorePEV {
		g.openTimeSpan = TimeSpan{Open: newStart}
		g.pevReady = true
	} else {
		g.openTimeSpan = TimeSpan{Open: newStart, Close: newStart.Add(g.PEVStartWindow)}
	}
	g.pevLatched = false
}

// OpenTimeSpan returns the current open window.
func (g *Gate) OpenTimeSpan() TimeSpan { return g.openTimeSpan }

// PEVReady reports whether a scored PEV has opened the window, the flag
// CheckReadyToAdvance consults for a PEV-gated start (spec.md 4.E/4.F).
func (g *Gate) PEVReady() bool { return g.pevReady }

// ClearPEVReady resets PEVReady, called when TaskStart fires (spec.md
// 4.E: "clear pev_based_advance_ready").
func (g *Gate) ClearPEVReady() { g.pevReady = false }

// WindowOpen reports whether the start is currently scorable at t.
func (g *Gate) WindowOpen(t time.Time) bool {
	if g.openTimeSpan.Open.IsZero() {
		return true // no constraint configured
	}
	return g.openTimeSpan.InWindow(FromSinceMidnight(t))
}

// Reset clears all PEV/window state back to the configured defaults,
// called by OrderedTask.Reset.
func (g *Gate) Reset() {
	g.pevLatched = false
	g.pevReady = false
	if !g.ConfiguredOpen.IsZero() {
		g.openTimeSpan = TimeSpan{Open: FromSinceMidnight(g.ConfiguredOpen), Close: FromSinceMidnight(g.ConfiguredClose)}
	} else {
		g.openTimeSpan = TimeSpan{}
	}
}
