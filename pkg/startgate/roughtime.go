// pkg/startgate/roughtime.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package startgate implements the start-gate and pilot-event (PEV) rules
// of spec.md 4.F: open/close windows, PEV-triggered personal start
// windows, and wait times.
package startgate

import "time"

// RoughTime is a timestamp at whole-minute resolution, matching the FAI
// sporting code's practice of only ever publishing start/gate times to
// minute resolution. FromSinceMidnight drops seconds by truncation;
// CeilMinute rounds up to the next minute when the source instant had
// seconds, which is how Gate reports a PEV fired at 12:03:20 with a 5
// minute wait as starting at 12:09, never 12:08.
type RoughTime struct {
	t time.Time
}

// FromSinceMidnight returns the RoughTime for the same day as ref at the
// wall-clock time ref represents, truncated to the minute.
func FromSinceMidnight(ref time.Time) RoughTime {
	return RoughTime{t: ref.Truncate(time.Minute)}
}

// CeilMinute rounds r up to the next whole minute if its source instant
// had a nonzero seconds component, and returns r unchanged otherwise. secondsNonzero
// is passed explicitly by the caller (derived from the pre-truncation
// instant) rather than recovered from r, since r has already lost that
// information — this is the internal replacement for spec.md 9's
// "caller must ensure bt corresponds to state.time" footgun.
func (r RoughTime) CeilMinute(secondsNonzero bool) RoughTime {
	if secondsNonzero {
		return RoughTime{t: r.t.Add(time.Minute)}
	}
	return r
}

// Add returns r shifted by d.
func (r RoughTime) Add(d time.Duration) RoughTime {
	return RoughTime{t: r.t.Add(d)}
}

// Time returns the underlying time.Time.
func (r RoughTime) Time() time.Time { return r.t }

// Before reports whether r is strictly before other.
func (r RoughTime) Before(other RoughTime) bool { return r.t.Before(other.t) }

// IsZero reports whether r is the zero value (undefined).
func (r RoughTime) IsZero() bool { return r.t.IsZero() }

// TimeSpan is a half-open (or open-ended) interval of RoughTimes.
type TimeSpan struct {
	Open  RoughTime
	Close RoughTime // zero value means "undefined" (open-ended)
}

// HasBegun reports whether now falls at or after Open (spec.md 4.F).
func (s TimeSpan) HasBegun(now RoughTime) bool {
	if s.Open.IsZero() {
		return false
	}
	return !now.Before(s.Open)
}

// HasEnded reports whether now falls at or after Close; an undefined
// (zero) Close never ends.
func (s TimeSpan) HasEnded(now RoughTime) bool {
	if s.Close.IsZero() {
		return false
	}
	return !now.Before(s.Close)
}

// InWindow reports whether now lies within [Open, Close).
func (s TimeSpan) InWindow(now RoughTime) bool {
	return s.HasBegun(now) && !s.HasEnded(now)
}
