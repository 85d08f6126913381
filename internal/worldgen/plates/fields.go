package plates

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/noise"
	"github.com/spectrum-art/terra-incognita/internal/spatial"
)

// classifyRegimes assigns a tectonic regime to every cell. Tie-break order:
// subduction belt, ridge belt, hotspot kernel, cratonic interior, passive margin.
func (s *Simulation) classifyRegimes(cells []spatial.Vector3D, nearestRidge []int, subDist []float64) {
	interior := s.interiorDepth()

	grid.ParallelRows(s.Height, func(row int) {
		for c := 0; c < s.Width; c++ {
			i := row*s.Width + c
			p := cells[i]
			dRidge := s.Ridges[nearestRidge[i]].DistanceTo(p)

			switch {
			case subDist[i] < subductionInfluence && s.ContinentalMask[i]:
				s.RegimeField[i] = grid.ActiveCompressional
			case dRidge < ridgeInfluence:
				s.RegimeField[i] = grid.ActiveExtensional
			case s.inHotspotKernel(p):
				s.RegimeField[i] = grid.VolcanicHotspot
			case s.ContinentalMask[i] && interior[i] >= cratonInterior && s.AgeField[i] < cratonAgeCutoff:
				s.RegimeField[i] = grid.CratonicShield
			default:
				s.RegimeField[i] = grid.PassiveMargin
			}
		}
	})
}

// inHotspotKernel reports whether p falls inside any plume's Gaussian kernel.
func (s *Simulation) inHotspotKernel(p spatial.Vector3D) bool {
	for _, h := range s.Hotspots {
		if spatial.AngularDistance(p, h.Center) < 2.5*h.Sigma {
			return true
		}
	}
	return false
}

// interiorDepth is a multi-source BFS from every oceanic cell, counting grid
// rings of separation from the nearest coast. Longitude wraps; rows clamp.
func (s *Simulation) interiorDepth() []int {
	n := s.Width * s.Height
	depth := make([]int, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !s.ContinentalMask[i] {
			depth[i] = 0
			queue = append(queue, i)
		} else {
			depth[i] = -1
		}
	}
	// Fully continental grid: everything is deep interior.
	if len(queue) == 0 {
		for i := range depth {
			depth[i] = cratonInterior
		}
		return depth
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		r, c := cur/s.Width, cur%s.Width
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr := r + d[0]
			if nr < 0 || nr >= s.Height {
				continue
			}
			nc := (c + d[1] + s.Width) % s.Width
			ni := nr*s.Width + nc
			if depth[ni] == -1 {
				depth[ni] = depth[cur] + 1
				queue = append(queue, ni)
			}
		}
	}
	return depth
}

// computeGrain derives the structural grain orientation and intensity from the
// nearest ridge or trench. Cratonic shields carry no grain at all.
func (s *Simulation) computeGrain(cells []spatial.Vector3D, nearestRidge []int, subDist []float64, subTangent []spatial.Vector3D) {
	const (
		compressionalFalloff = 5 * math.Pi / 180
		backgroundFalloff    = 10 * math.Pi / 180
	)

	grid.ParallelRows(s.Height, func(row int) {
		for c := 0; c < s.Width; c++ {
			i := row*s.Width + c
			p := cells[i]

			// Nearest oriented structure: ridge main arc or trench polyline.
			tangent := s.Ridges[nearestRidge[i]].TangentAt(p)
			dStruct := s.Ridges[nearestRidge[i]].DistanceTo(p)
			if subDist[i] < dStruct {
				dStruct = subDist[i]
				tangent = subTangent[i]
			}

			east, north := spatial.LocalFrame(p)
			angle := math.Atan2(tangent.Dot(north), tangent.Dot(east))
			// Orientation, not direction: fold into [-pi/2, pi/2).
			if angle >= math.Pi/2 {
				angle -= math.Pi
			} else if angle < -math.Pi/2 {
				angle += math.Pi
			}
			s.GrainAngle[i] = angle

			switch s.RegimeField[i] {
			case grid.CratonicShield:
				s.GrainIntensity[i] = 0
			case grid.ActiveCompressional:
				s.GrainIntensity[i] = 0.9 * math.Exp(-dStruct/compressionalFalloff)
			case grid.ActiveExtensional:
				s.GrainIntensity[i] = 0.6 * math.Exp(-dStruct/compressionalFalloff)
			case grid.VolcanicHotspot:
				s.GrainIntensity[i] = 0.25 * math.Exp(-dStruct/backgroundFalloff)
			default:
				s.GrainIntensity[i] = 0.35 * math.Exp(-dStruct/backgroundFalloff)
			}
		}
	})
}

// computeErodibility applies the per-regime base rates with a noise
// perturbation. Compressional belts stay harder than passive margins.
func (s *Simulation) computeErodibility(seed uint32, cells []spatial.Vector3D) {
	perl := noise.NewPerlin(noise.SubSeed(seed, noise.StagePlates) ^ 0x5bd1e995)
	for i, p := range cells {
		base := regimeErodibility[s.RegimeField[i]]
		perturb := perl.Noise2D(p.X*3+p.Z, p.Y*3-p.Z)
		e := base * (1 + 0.2*perturb)
		if e < 0.05 {
			e = 0.05
		}
		s.Erodibility[i] = e
	}
}

// MeanErodibility averages erodibility over cells of the given regime.
// Returns 0 when the regime is absent.
func (s *Simulation) MeanErodibility(regime grid.TectonicRegime) float64 {
	sum, count := 0.0, 0
	for i, r := range s.RegimeField {
		if r == regime {
			sum += s.Erodibility[i]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
