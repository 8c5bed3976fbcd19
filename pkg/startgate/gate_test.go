// pkg/startgate/gate_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package startgate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestPEVStartWindowCeilsToMinute pins scenario S4 from spec.md 8: a PEV
// at 12:03:20 with a 5 minute wait and 10 minute window opens at 12:09
// (ceiling the 20 second remainder) and closes at 12:19.
func TestPEVStartWindowCeilsToMinute(t *testing.T) {
	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	g := NewGate(false, 5*time.Minute, 10*time.Minute, time.Time{}, time.Time{})

	bt := day.Add(12*time.Hour + 3*time.Minute + 20*time.Second)
	ok := g.SetPEV(bt, bt)
	require.True(t, ok)

	g.UpdateAfterPEV(bt)

	span := g.OpenTimeSpan()
	wantOpen := FromSinceMidnight(day.Add(12*time.Hour + 9*time.Minute))
	wantClose := FromSinceMidnight(day.Add(12*time.Hour + 19*time.Minute))
	require.Equal(t, wantOpen.Time(), span.Open.Time())
	require.Equal(t, wantClose.Time(), span.Close.Time())
}

func TestPEVExactMinuteDoesNotCeil(t *testing.T) {
	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	g := NewGate(false, 5*time.Minute, 10*time.Minute, time.Time{}, time.Time{})

	bt := day.Add(12 * time.Hour) // no seconds remainder
	g.SetPEV(bt, bt)
	g.UpdateAfterPEV(bt)

	wantOpen := FromSinceMidnight(day.Add(12*time.Hour + 5*time.Minute))
	require.Equal(t, wantOpen.Time(), g.OpenTimeSpan().Open.Time())
}

func TestScoredPEVOpensEndedWindowAndSetsReady(t *testing.T) {
	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	g := NewGate(true, 5*time.Minute, 10*time.Minute, time.Time{}, time.Time{})

	bt := day.Add(12 * time.Hour)
	g.SetPEV(bt, bt)
	g.UpdateAfterPEV(bt)

	require.True(t, g.PEVReady())
	require.True(t, g.OpenTimeSpan().Close.IsZero())
}

func TestSetPEVIgnoredBeforeWindowOpens(t *testing.T) {
	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	open := day.Add(13 * time.Hour)
	g := NewGate(true, 5*time.Minute, 10*time.Minute, open, time.Time{})

	early := day.Add(12 * time.Hour)
	ok := g.SetPEV(early, early)
	require.False(t, ok)
}

func TestResetRestoresConfiguredWindow(t *testing.T) {
	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	open := day.Add(13 * time.Hour)
	close_ := day.Add(15 * time.Hour)
	g := NewGate(false, 5*time.Minute, 10*time.Minute, open, close_)

	bt := day.Add(12 * time.Hour)
	g.SetPEV(bt, bt)
	g.UpdateAfterPEV(bt)
	require.NotEqual(t, FromSinceMidnight(open).Time(), g.OpenTimeSpan().Open.Time())

	g.Reset()
	require.Equal(t, FromSinceMidnight(open).Time(), g.OpenTimeSpan().Open.Time())
	require.False(t, g.PEVReady())
}
