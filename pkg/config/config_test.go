// pkg/config/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"testing"

	"github.com/mmp/glidetask/pkg/task"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsOverlaysDefaults(t *testing.T) {
	doc := []byte(`
score_pev: true
pev_start_wait_time: 3m
pev_start_window: 8m
advance: arm
boundary_samples: 12
subtract_start_finish_cylinder_radius: false
`)
	settings, err := LoadSettings(doc)
	require.NoError(t, err)

	require.True(t, settings.ScorePEV)
	require.Equal(t, task.AdvanceArm, settings.Advance)
	require.Equal(t, 12, settings.BoundarySamples)
	require.False(t, settings.SubtractStartFinishCylinderRadius)

	// aat_min_time wasn't in the document, so AATMinTime keeps its default
	// of zero.
	require.True(t, settings.AATMinTime == 0)
}

func TestLoadSettingsEmptyDocumentKeepsDefaults(t *testing.T) {
	settings, err := LoadSettings([]byte(``))
	require.NoError(t, err)
	require.Equal(t, task.DefaultOrderedTaskSettings().BoundarySamples, settings.BoundarySamples)
	require.True(t, settings.SubtractStartFinishCylinderRadius)
}

func TestLoadBehaviourParsesTaskType(t *testing.T) {
	doc := []byte(`
task_type_default: aat
optimise_targets_range: true
optimise_targets_margin: 2m
glide:
  safety_mc: 1.5
  ballast_kg: 20
  bugs_percent: 5
`)
	tb, err := LoadBehaviour(doc)
	require.NoError(t, err)
	require.Equal(t, task.IntermediateAAT, tb.TaskTypeDefault)
	require.True(t, tb.OptimiseTargetsRange)
	require.Equal(t, 1.5, tb.Glide.SafetyMC)
}

func TestParseTaskPointOrderPreservesDeclarationOrder(t *testing.T) {
	doc := []byte(`{
		"START": {"kind": "cylinder", "radius_meters": 1000},
		"TP1": {"kind": "fai_sector", "radius_meters": 5000, "half_angle_radians": 0.5},
		"FINISH": {"kind": "cylinder", "radius_meters": 1000}
	}`)
	om, err := ParseTaskPointOrder(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"START", "TP1", "FINISH"}, om.Keys())
}

func TestParseTaskPointOrderRejectsUnknownField(t *testing.T) {
	doc := []byte(`{"START": {"kind": "cylinder", "not_a_real_field": 3}}`)
	_, err := ParseTaskPointOrder(doc)
	require.Error(t, err)
}
