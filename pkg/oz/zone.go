// pkg/oz/zone.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package oz

import (
	gomath "math"

	"github.com/mmp/glidetask/pkg/geo"
)

// Zone is a tagged-variant observation zone. Which fields are meaningful
// depends on Kind:
//
//   - Cylinder: Radius only.
//   - Line: Radius is used as the half-length of the gate, which runs
//     perpendicular to Axis (the bisector of the incoming/outgoing legs).
//   - FAISector: Radius and HalfAngle (radians) around Axis.
//   - Keyhole: InnerRadius (small unrestricted cylinder) unioned with an
//     outer sector of Radius and HalfAngle around Axis.
//   - Custom: an explicit polygon, Vertices, in insertion order.
type Zone struct {
	Kind        Kind
	Center      geo.Point
	Radius      float64 // meters
	InnerRadius float64 // meters; Keyhole only
	HalfAngle   float64 // radians; FAISector/Keyhole only
	Axis        float64 // radians bearing; bisector direction
	AxisSet     bool
	Vertices    []geo.Point // Custom only

	// Area-pruning state (spec.md 4.B/4.D): for area shapes, the
	// "remaining reachable" boundary shrinks monotonically as the
	// aircraft penetrates deeper into the zone relative to the previous
	// task point. achievedDepth tracks the deepest (farthest from the
	// previous point) sample seen so far; boundary candidates nearer to
	// the previous point than achievedDepth are excluded. This can only
	// grow, so the surviving candidate set can only shrink.
	achievedDepth    float64
	haveAchievedDepth bool
}

// NewCylinder returns a Cylinder zone of the given radius (meters).
func NewCylinder(center geo.Point, radius float64) *Zone {
	return &Zone{Kind: Cylinder, Center: center, Radius: radius}
}

// NewLine returns a Line (start/finish gate) zone of the given full length
// (meters); the line runs perpendicular to Axis through Center.
func NewLine(center geo.Point, length float64) *Zone {
	return &Zone{Kind: Line, Center: center, Radius: length / 2}
}

// NewFAISector returns an FAI-style sector of the given radius (meters)
// and half-angle (radians) around Axis.
func NewFAISector(center geo.Point, radius, halfAngle float64) *Zone {
	return &Zone{Kind: FAISector, Center: center, Radius: radius, HalfAngle: halfAngle}
}

// NewKeyhole returns a keyhole zone: an unrestricted inner cylinder union
// an outer sector.
func NewKeyhole(center geo.Point, innerRadius, outerRadius, halfAngle float64) *Zone {
	return &Zone{Kind: Keyhole, Center: center, InnerRadius: innerRadius, Radius: outerRadius, HalfAngle: halfAngle}
}

// NewCustom returns a Custom polygon zone.
func NewCustom(vertices []geo.Point) *Zone {
	center := geo.BoxFromPoints(vertices).Center()
	return &Zone{Kind: Custom, Center: center, Vertices: vertices}
}

// SetAxis sets the bisector direction (radians, bearing) used by Line,
// FAISector and Keyhole shapes. TaskPoint calls this from SetNeighbours,
// since the bisector depends on the incoming and outgoing legs.
func (z *Zone) SetAxis(bearing float64) {
	z.Axis = bearing
	z.AxisSet = true
}

// Contains reports whether p lies inside the zone.
func (z *Zone) Contains(p geo.Point) bool {
	switch z.Kind {
	case Cylinder:
		return z.Center.Distance(p) <= z.Radius

	case Line:
		// A crossing of the line itself has zero width in the along-axis
		// direction in principle; in practice fixes are discrete samples,
		// so treat "contains" as being within Radius of Center along the
		// perpendicular-to-axis gate and negligibly off-axis. We model
		// this as a thin cylinder of the gate's half-length.
		return z.Center.Distance(p) <= z.Radius

	case FAISector:
		d := z.Center.Distance(p)
		if d > z.Radius {
			return false
		}
		return z.withinSectorAngle(p)

	case Keyhole:
		d := z.Center.Distance(p)
		if d <= z.InnerRadius {
			return true
		}
		if d > z.Radius {
			return false
		}
		return z.withinSectorAngle(p)

	case Custom:
		return geo.PointInPolygon(p, z.Vertices)

	default:
		return false
	}
}

func (z *Zone) withinSectorAngle(p geo.Point) bool {
	if !z.AxisSet {
		return true
	}
	brng := z.Center.Bearing(p)
	diff := angleDiff(brng, z.Axis)
	return gomath.Abs(diff) <= z.HalfAngle
}

// angleDiff returns a-b normalized to [-pi, pi].
func angleDiff(a, b float64) float64 {
	d := gomath.Mod(a-b, 2*gomath.Pi)
	if d > gomath.Pi {
		d -= 2 * gomath.Pi
	} else if d < -gomath.Pi {
		d += 2 * gomath.Pi
	}
	return d
}

// NominalBoundary returns n evenly sampled points around the zone's full,
// unmodified shape, ignoring any sampled flight history.
func (z *Zone) NominalBoundary(pr geo.Projection, n int) []geo.SearchPoint {
	pts := z.nominalPoints(n)
	out := make([]geo.SearchPoint, len(pts))
	for i, p := range pts {
		out[i] = geo.NewSearchPoint(pr, p)
	}
	return out
}

func (z *Zone) nominalPoints(n int) []geo.Point {
	if n < 2 {
		n = 2
	}
	switch z.Kind {
	case Cylinder:
		pts := make([]geo.Point, n)
		for i := 0; i < n; i++ {
			brng := 2 * gomath.Pi * float64(i) / float64(n)
			pts[i] = z.Center.Destination(brng, z.Radius)
		}
		return pts

	case Line:
		axis := z.Axis
		perp := axis + gomath.Pi/2
		return []geo.Point{
			z.Center.Destination(perp, z.Radius),
			z.Center.Destination(perp+gomath.Pi, z.Radius),
		}

	case FAISector:
		return z.sectorPoints(n, 0, z.Radius)

	case Keyhole:
		pts := z.sectorPoints(n, z.InnerRadius, z.Radius)
		// Union in the full inner cylinder so the "unlimited turn" portion
		// of the keyhole is represented too.
		inner := make([]geo.Point, n)
		for i := 0; i < n; i++ {
			brng := 2 * gomath.Pi * float64(i) / float64(n)
			inner[i] = z.Center.Destination(brng, z.InnerRadius)
		}
		return append(inner, pts...)

	case Custom:
		return z.Vertices

	default:
		return nil
	}
}

// sectorPoints samples the arc of a sector at the given radius, plus the
// two radial edges back to innerRadius (0 for a plain FAI sector).
func (z *Zone) sectorPoints(n int, innerRadius, radius float64) []geo.Point {
	if !z.AxisSet {
		z.Axis = 0
	}
	var pts []geo.Point
	for i := 0; i < n; i++ {
		frac := float64(i)/float64(n-1)*2 - 1 // -1..1
		brng := z.Axis + frac*z.HalfAngle
		pts = append(pts, z.Center.Destination(brng, radius))
	}
	if innerRadius > 0 {
		pts = append(pts, z.Center.Destination(z.Axis+z.HalfAngle, innerRadius))
		pts = append(pts, z.Center.Destination(z.Axis-z.HalfAngle, innerRadius))
	}
	return pts
}

// Boundary returns the currently-reachable boundary sample: for Cylinder
// and Line zones this is identical to NominalBoundary; for area shapes it
// reflects pruning from prior Observe calls.
func (z *Zone) Boundary(pr geo.Projection, n int, prevPoint geo.Point) []geo.SearchPoint {
	if !z.Kind.IsArea() || !z.haveAchievedDepth {
		return z.NominalBoundary(pr, n)
	}

	pts := z.nominalPoints(n)
	var kept []geo.Point
	for _, p := range pts {
		if prevPoint.Distance(p) >= z.achievedDepth {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		// Never prune to nothing: always leave at least the deepest
		// nominal point reachable so the solver has somewhere to go.
		kept = []geo.Point{z.deepestPoint(pts, prevPoint)}
	}

	out := make([]geo.SearchPoint, len(kept))
	for i, p := range kept {
		out[i] = geo.NewSearchPoint(pr, p)
	}
	return out
}

func (z *Zone) deepestPoint(pts []geo.Point, prevPoint geo.Point) geo.Point {
	best := pts[0]
	bestD := prevPoint.Distance(best)
	for _, p := range pts[1:] {
		if d := prevPoint.Distance(p); d > bestD {
			best, bestD = p, d
		}
	}
	return best
}

// Observe records a fix known to be inside the zone, narrowing the
// achieved-depth used by Boundary for area shapes. prevPoint is the
// previous task point's location, the reference the achieved depth is
// measured from. A no-op for non-area shapes, where Boundary == Nominal.
func (z *Zone) Observe(fix geo.Point, prevPoint geo.Point) {
	if !z.Kind.IsArea() {
		return
	}
	depth := prevPoint.Distance(fix)
	if !z.haveAchievedDepth || depth > z.achievedDepth {
		z.achievedDepth = depth
		z.haveAchievedDepth = true
	}
}

// ResetPruning clears any area pruning accumulated from flight history,
// restoring Boundary to the full nominal shape. Called by OrderedTask.Reset.
func (z *Zone) ResetPruning() {
	z.achievedDepth = 0
	z.haveAchievedDepth = false
}

// TransitionEnter reports whether the aircraft has just entered the zone,
// given its current and previous states.
func TransitionEnter(z *Zone, state, stateLast geo.Point) bool {
	return !z.Contains(stateLast) && z.Contains(state)
}

// TransitionExit reports whether the aircraft has just exited the zone.
// scorePEVGate and pevReady implement the Start-point PEV-gating rule from
// spec.md 4.B: a Start's exit transition is only honored if the PEV gate
// isn't in force, or is in force and ready.
func TransitionExit(z *Zone, state, stateLast geo.Point, scorePEVGate, pevReady bool) bool {
	exited := z.Contains(stateLast) && !z.Contains(state)
	if !exited {
		return false
	}
	return pevReady || !scorePEVGate
}
