// pkg/task/interfaces.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"time"

	"github.com/mmp/glidetask/pkg/geo"
)

// AircraftState is one navigation-tick snapshot consumed from the
// collaborator that owns the live fix stream (NMEA parsing, simulated
// replay, whatever); the engine never produces these itself.
type AircraftState struct {
	Location    geo.Point
	Altitude    float64 // meters
	GroundSpeed float64 // m/s
	Time        time.Time
	Flying      bool
}

// HasTime reports whether Time has been set to a real instant, as opposed
// to the zero value used for not-yet-ticked state.
func (a AircraftState) HasTime() bool {
	return !a.Time.IsZero()
}

// GlidePolar is consumed opaquely: the engine never stores it, only reads
// it per call, per spec.md 6 ("passed by reference per call and never
// stored").
type GlidePolar interface {
	GetMC() float64
}

// Waypoint is the minimal shape the engine needs from a waypoint
// collaborator to deduplicate on Commit.
type Waypoint interface {
	Location() geo.Point
	Name() string
}

// Waypoints is the read-only shared database consumed from outside the
// engine; CheckExistsOrAppend implements the dedup-on-commit contract of
// spec.md 6.
type Waypoints interface {
	CheckExistsOrAppend(w Waypoint) Waypoint
}

// TaskEvents is the callback sink the engine fires into synchronously
// from CheckTransitions. All methods are called from the single
// navigation-thread caller of CheckTransitions; implementations must not
// block.
type TaskEvents interface {
	EnterTransition(point *TaskPoint)
	ExitTransition(point *TaskPoint)
	ActiveAdvanced(point *TaskPoint, index int)
	RequestArm(point *TaskPoint)
	TaskStart()
	TaskFinish()
}

// NullTaskEvents is a TaskEvents implementation that does nothing; useful
// for tests and callers that only care about Stats.
type NullTaskEvents struct{}

func (NullTaskEvents) EnterTransition(*TaskPoint)      {}
func (NullTaskEvents) ExitTransition(*TaskPoint)       {}
func (NullTaskEvents) ActiveAdvanced(*TaskPoint, int)  {}
func (NullTaskEvents) RequestArm(*TaskPoint)           {}
func (NullTaskEvents) TaskStart()                      {}
func (NullTaskEvents) TaskFinish()                     {}

// GlideSettings groups the subset of glide-computer configuration the
// task engine threads through to stats, without interpreting it itself.
type GlideSettings struct {
	SafetyMC     float64
	BallastKg    float64
	BugsPercent  float64
}

// TaskBehaviour is the configuration bag consumed from the collaborator
// that owns user preferences, per spec.md 6.
type TaskBehaviour struct {
	TaskTypeDefault      Kind
	OrderedDefaults      OrderedTaskSettings
	OptimiseTargetsRange bool
	OptimiseTargetsMargin time.Duration
	OptimiseTargetsBearing bool
	Glide                GlideSettings
}
