// pkg/task/kind.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

// Kind tags the role a TaskPoint plays in the ordered sequence: a
// capability set dispatched through methods on TaskPoint rather than a
// class hierarchy (Start/Intermediate*/Finish all share the same struct).
type Kind int

const (
	Start Kind = iota
	IntermediateAAT
	IntermediateRacing
	Finish
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "Start"
	case IntermediateAAT:
		return "IntermediateAAT"
	case IntermediateRacing:
		return "IntermediateRacing"
	case Finish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// IsAAT reports whether this point kind is scored as an assigned area
// (its boundary is pruned by flight history rather than a single fix).
func (k Kind) IsAAT() bool {
	return k == IntermediateAAT
}

// activeRelative describes where a task point sits relative to the
// active index, per spec.md 4.C's ScanActive contract.
type activeRelative int

const (
	BeforeActive activeRelative = iota
	CurrentActive
	AfterActive
)

func (a activeRelative) String() string {
	switch a {
	case BeforeActive:
		return "BeforeActive"
	case CurrentActive:
		return "CurrentActive"
	case AfterActive:
		return "AfterActive"
	default:
		return "Unknown"
	}
}
