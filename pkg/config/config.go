// pkg/config/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads the task engine's configuration bags —
// OrderedTaskSettings and TaskBehaviour — from YAML, and parses a task's
// declared point order from JSON while preserving declaration order, the
// way a planned-task file on disk would be authored by an external
// collaborator (spec.md 1 places task-file persistence out of scope; this
// package is the narrow settings-loading slice that remains in-bounds).
package config

import (
	"fmt"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/mmp/glidetask/pkg/task"
	"github.com/mmp/glidetask/pkg/util"
	"gopkg.in/yaml.v3"
)

// fileSettings mirrors task.OrderedTaskSettings with YAML-friendly types
// (durations as strings, times as RFC3339 strings, bools as pointers so an
// absent field can be told apart from an explicit false).
type fileSettings struct {
	StartOpenTime                      string `yaml:"start_open_time"`
	StartCloseTime                     string `yaml:"start_close_time"`
	ScorePEV                           *bool  `yaml:"score_pev"`
	PEVStartWaitTime                   string `yaml:"pev_start_wait_time"`
	PEVStartWindow                     string `yaml:"pev_start_window"`
	AATMinTime                         string `yaml:"aat_min_time"`
	Advance                            string `yaml:"advance"`
	SubtractStartFinishCylinderRadius *bool  `yaml:"subtract_start_finish_cylinder_radius"`
	EmulateLegacyRemove               *bool  `yaml:"emulate_legacy_remove"`
	BoundarySamples                   int    `yaml:"boundary_samples"`
}

// LoadSettings parses a YAML document into task.OrderedTaskSettings,
// falling back to task.DefaultOrderedTaskSettings for any field absent
// from the document.
func LoadSettings(data []byte) (task.OrderedTaskSettings, error) {
	settings := task.DefaultOrderedTaskSettings()

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return settings, err
	}

	if t, err := time.Parse(time.RFC3339, fs.StartOpenTime); err == nil {
		settings.StartOpenTime = t
	}
	if t, err := time.Parse(time.RFC3339, fs.StartCloseTime); err == nil {
		settings.StartCloseTime = t
	}
	if fs.ScorePEV != nil {
		settings.ScorePEV = *fs.ScorePEV
	}
	if d, err := time.ParseDuration(fs.PEVStartWaitTime); err == nil {
		settings.PEVStartWaitTime = d
	}
	if d, err := time.ParseDuration(fs.PEVStartWindow); err == nil {
		settings.PEVStartWindow = d
	}
	if d, err := time.ParseDuration(fs.AATMinTime); err == nil {
		settings.AATMinTime = d
	}
	switch fs.Advance {
	case "auto":
		settings.Advance = task.AdvanceAuto
	case "arm":
		settings.Advance = task.AdvanceArm
	case "manual":
		settings.Advance = task.AdvanceManual
	}
	if fs.BoundarySamples > 0 {
		settings.BoundarySamples = fs.BoundarySamples
	}
	if fs.SubtractStartFinishCylinderRadius != nil {
		settings.SubtractStartFinishCylinderRadius = *fs.SubtractStartFinishCylinderRadius
	}
	if fs.EmulateLegacyRemove != nil {
		settings.EmulateLegacyRemove = *fs.EmulateLegacyRemove
	}

	return settings, nil
}

// fileBehaviour mirrors task.TaskBehaviour with YAML-friendly types.
type fileBehaviour struct {
	TaskTypeDefault        string `yaml:"task_type_default"`
	OptimiseTargetsRange   bool   `yaml:"optimise_targets_range"`
	OptimiseTargetsMargin  string `yaml:"optimise_targets_margin"`
	OptimiseTargetsBearing bool   `yaml:"optimise_targets_bearing"`
	Glide                  struct {
		SafetyMC    float64 `yaml:"safety_mc"`
		BallastKg   float64 `yaml:"ballast_kg"`
		BugsPercent float64 `yaml:"bugs_percent"`
	} `yaml:"glide"`
}

// LoadBehaviour parses a YAML document into a task.TaskBehaviour, with
// OrderedDefaults populated from the same document via LoadSettings.
func LoadBehaviour(data []byte) (task.TaskBehaviour, error) {
	var tb task.TaskBehaviour

	settings, err := LoadSettings(data)
	if err != nil {
		return tb, err
	}
	tb.OrderedDefaults = settings

	var fb fileBehaviour
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return tb, err
	}

	switch fb.TaskTypeDefault {
	case "aat":
		tb.TaskTypeDefault = task.IntermediateAAT
	case "racing":
		tb.TaskTypeDefault = task.IntermediateRacing
	}
	tb.OptimiseTargetsRange = fb.OptimiseTargetsRange
	tb.OptimiseTargetsBearing = fb.OptimiseTargetsBearing
	if d, err := time.ParseDuration(fb.OptimiseTargetsMargin); err == nil {
		tb.OptimiseTargetsMargin = d
	}
	tb.Glide = task.GlideSettings{
		SafetyMC:    fb.Glide.SafetyMC,
		BallastKg:   fb.Glide.BallastKg,
		BugsPercent: fb.Glide.BugsPercent,
	}

	return tb, nil
}

// taskPointEntry is the declared shape of one entry in a task-point-order
// JSON document, used only to typecheck the document via util.CheckJSON
// before the declaration order is extracted.
type taskPointEntry struct {
	Kind         string  `json:"kind"`
	RadiusMeters float64 `json:"radius_meters"`
	HalfAngleRad float64 `json:"half_angle_radians"`
}

// ParseTaskPointOrder parses a JSON object mapping task-point name to its
// raw configuration, preserving declaration order via
// github.com/iancoleman/orderedmap the way the teacher's pkg/util.OrderedMap
// wraps the same library for its own JSON scenario files. The declaration
// order is what an external task-file collaborator would use to drive
// OrderedTask.Append calls in sequence. Before extracting that order, the
// document is typechecked against taskPointEntry via util.CheckJSON (the
// teacher's own scenario-file validation path in pkg/util/json.go), so a
// malformed task file is rejected with a field-level error rather than
// surfacing as a confusing panic deeper in OrderedTask construction.
func ParseTaskPointOrder(data []byte) (*orderedmap.OrderedMap, error) {
	var el util.ErrorLogger
	util.CheckJSON[map[string]taskPointEntry](data, &el)
	if el.HaveErrors() {
		return nil, fmt.Errorf("invalid task point order document: %s", el.String())
	}

	om := orderedmap.New()
	if err := om.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return om, nil
}
