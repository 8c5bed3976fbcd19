// pkg/oz/kind.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package oz implements observation zones: the geometric regions around a
// task point that the aircraft must cross to "round" it. Shapes are
// modeled as a single tagged-variant struct (Kind + shape parameters)
// rather than a class hierarchy, per the redesign called for by the
// source system's capability-set requirements: every shape needs only
// {Contains, Boundary, NominalBoundary, Kind}.
package oz

// Kind tags the shape a Zone represents.
type Kind int

const (
	Cylinder Kind = iota
	Line
	FAISector
	Keyhole
	Custom
)

func (k Kind) String() string {
	switch k {
	case Cylinder:
		return "Cylinder"
	case Line:
		return "Line"
	case FAISector:
		return "FAISector"
	case Keyhole:
		return "Keyhole"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// IsArea reports whether the shape represents an area (AAT-style, whose
// boundary is pruned by flight history) rather than a point cylinder
// crossed instantaneously. Lines and plain Cylinders used for start/finish
// gates are not areas; FAISector, Keyhole and Custom polygons are.
func (k Kind) IsArea() bool {
	switch k {
	case FAISector, Keyhole, Custom:
		return true
	default:
		return false
	}
}
