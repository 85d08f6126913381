package plates

import (
	"math"
	"math/rand"

	"github.com/spectrum-art/terra-incognita/internal/spatial"
)

const (
	// minRidgeArc is the shortest allowed main arc (60 degrees geodesic).
	minRidgeArc = math.Pi / 3
	maxRidgeArc = math.Pi * 0.75

	// subArcStep spaces zigzag breakpoints. Combined with the offset range
	// below, no straight segment projects to more than 500 km of surface.
	subArcStep      = 2.5 * math.Pi / 180
	subArcStepJit   = 0.3 * math.Pi / 180
	subArcOffsetMin = 0.5 * math.Pi / 180
	subArcOffsetMax = 1.25 * math.Pi / 180
)

// randomUnitVector draws a uniformly distributed point on the sphere.
func randomUnitVector(r *rand.Rand) spatial.Vector3D {
	for {
		v := spatial.Vector3D{X: r.NormFloat64(), Y: r.NormFloat64(), Z: r.NormFloat64()}
		if l := v.Length(); l > 1e-9 {
			return v.Scale(1 / l)
		}
	}
}

// ridgeCount interpolates the fragmentation slider into [2, 10] ridges.
func ridgeCount(fragmentation float64) int {
	return 2 + int(math.Round(fragmentation*8))
}

// newRidge builds one great-circle ridge with its transform-fault zigzag.
func newRidge(r *rand.Rand) RidgeSegment {
	axis := randomUnitVector(r)

	// Orthonormal basis spanning the circle plane.
	ref := spatial.Vector3D{Z: 1}
	if math.Abs(axis.Dot(ref)) > 0.9 {
		ref = spatial.Vector3D{X: 1}
	}
	u := axis.Cross(ref).Normalize()
	v := axis.Cross(u).Normalize()

	tStart := r.Float64() * 2 * math.Pi
	tEnd := tStart + minRidgeArc + r.Float64()*(maxRidgeArc-minRidgeArc)

	seg := RidgeSegment{
		Axis:    axis,
		U:       u,
		V:       v,
		TStart:  tStart,
		TEnd:    tEnd,
		AgeBias: (r.Float64() - 0.5) * 16,
	}
	seg.MainStart = seg.point(tStart)
	seg.MainEnd = seg.point(tEnd)
	seg.SubArcs = buildSubArcs(&seg, r)
	return seg
}

// point evaluates the main great circle at parameter t.
func (s *RidgeSegment) point(t float64) spatial.Vector3D {
	return s.U.Scale(math.Cos(t)).Add(s.V.Scale(math.Sin(t))).Normalize()
}

// tangent is the direction of travel along the circle at parameter t.
func (s *RidgeSegment) tangent(t float64) spatial.Vector3D {
	return s.U.Scale(-math.Sin(t)).Add(s.V.Scale(math.Cos(t))).Normalize()
}

// buildSubArcs lays breakpoints every ~2.5 degrees along the main arc and
// offsets them perpendicular to the ridge by alternating transform faults.
func buildSubArcs(s *RidgeSegment, r *rand.Rand) [][]spatial.Vector3D {
	var arcs [][]spatial.Vector3D
	current := []spatial.Vector3D{s.point(s.TStart)}

	sign := 1.0
	t := s.TStart
	for t < s.TEnd {
		step := subArcStep + (r.Float64()*2-1)*subArcStepJit
		t = math.Min(t+step, s.TEnd)

		offset := sign * (subArcOffsetMin + r.Float64()*(subArcOffsetMax-subArcOffsetMin))
		sign = -sign

		// Rotating a circle point toward the axis stays on the unit sphere
		// because the axis is orthogonal to every point of the circle.
		p := s.point(t)
		off := p.Scale(math.Cos(offset)).Add(s.Axis.Scale(math.Sin(offset)))
		current = append(current, off)

		// Transform faults split the zigzag into separate rendered arcs.
		if r.Float64() < 0.15 && t < s.TEnd {
			arcs = append(arcs, current)
			current = []spatial.Vector3D{off}
		}
	}
	current = append(current, s.point(s.TEnd))
	arcs = append(arcs, current)
	return arcs
}

// DistanceTo returns the angular distance in radians from p to the main arc.
func (s *RidgeSegment) DistanceTo(p spatial.Vector3D) float64 {
	d, _ := s.nearest(p)
	return d
}

// nearest returns the angular distance to the main arc and the parameter of
// the closest point (clamped to the arc ends).
func (s *RidgeSegment) nearest(p spatial.Vector3D) (dist, t float64) {
	// Project p onto the circle plane.
	planar := p.Sub(s.Axis.Scale(p.Dot(s.Axis)))
	if planar.Length() < 1e-12 {
		// p sits on the axis; every circle point is 90 degrees away.
		return math.Pi / 2, s.TStart
	}
	planar = planar.Normalize()

	t = math.Atan2(planar.Dot(s.V), planar.Dot(s.U))
	// Shift t into [TStart, TStart+2pi).
	for t < s.TStart {
		t += 2 * math.Pi
	}
	if t <= s.TEnd {
		// Closest point is interior: distance to the full great circle.
		return math.Abs(math.Asin(clamp(p.Dot(s.Axis), -1, 1))), t
	}

	dStart := spatial.AngularDistance(p, s.MainStart)
	dEnd := spatial.AngularDistance(p, s.MainEnd)
	if dStart < dEnd {
		return dStart, s.TStart
	}
	return dEnd, s.TEnd
}

// TangentAt returns the ridge direction at the point of the arc closest to p.
func (s *RidgeSegment) TangentAt(p spatial.Vector3D) spatial.Vector3D {
	_, t := s.nearest(p)
	return s.tangent(clamp(t, s.TStart, s.TEnd))
}

// MaxSegmentKm reports the longest straight sub-arc segment projected to the
// surface. Generation keeps this under 500 km.
func (s *RidgeSegment) MaxSegmentKm() float64 {
	maxRad := 0.0
	for _, arc := range s.SubArcs {
		for i := 1; i < len(arc); i++ {
			d := spatial.AngularDistance(arc[i-1], arc[i])
			if d > maxRad {
				maxRad = d
			}
		}
	}
	return spatial.ArcLengthM(maxRad) / 1000
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
