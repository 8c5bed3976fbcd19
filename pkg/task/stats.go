// pkg/task/stats.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"time"

	"github.com/mmp/glidetask/pkg/geo"
)

// StartStats is the aircraft snapshot recorded at the moment the start
// point's scoring transition fires (exit, per spec.md 3); trivially
// copyable.
type StartStats struct {
	Time           time.Time
	Altitude       float64
	GroundSpeed    float64
	AdvancedByPEV  bool
}

// HasStarted reports whether the start point has ever recorded a scoring
// transition.
func (s StartStats) HasStarted() bool {
	return !s.Time.IsZero()
}

// LegStat accumulates distance/time for one leg (or the task total).
type LegStat struct {
	DistanceNominal float64 // meters, nominal (no AAT credit)
	DistanceMin     float64 // meters, remaining via DistanceMin
	DistanceMax     float64 // meters, scored via DistanceMax
	ElapsedTime     time.Duration
}

// Stats is the read-only snapshot published to collaborators (spec.md 3,
// 6); OrderedTask.Stats() returns a copy guarded by util.LoggingMutex.
type Stats struct {
	Bounds             geo.Box
	TaskValid          bool
	HasTargets         bool
	IsMAT              bool
	TaskFinished       bool
	Start              StartStats
	Total              LegStat
	CurrentLeg         LegStat
	PEVBasedAdvanceReady bool
	NeedToArm          bool
	InsideOZ           bool
}
