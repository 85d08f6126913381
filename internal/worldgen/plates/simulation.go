package plates

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/noise"
	"github.com/spectrum-art/terra-incognita/internal/spatial"
)

const (
	maxAgeMyr = 200.0
	// ageInfluence is the ridge distance that maps to the oldest crust.
	ageInfluence = math.Pi / 2

	// subductionInfluence bounds the trench regime band (3 degrees).
	subductionInfluence = 3 * math.Pi / 180
	ridgeInfluence      = 3 * math.Pi / 180

	// subductionPolarLimit rejects arc centres within 10 degrees of a pole,
	// where the influence band would sweep entire latitude circles.
	subductionPolarLimit = 80 * math.Pi / 180

	// meanContinentalFraction is the crust fraction at zero fragmentation.
	meanContinentalFraction = 0.42

	cratonAgeCutoff = 100.0
	cratonInterior  = 4 // BFS rings from the nearest coast
)

// regime base erodibility; compressional belts shed the least material and
// passive margins the most.
var regimeErodibility = map[grid.TectonicRegime]float64{
	grid.ActiveCompressional: 0.30,
	grid.ActiveExtensional:   0.50,
	grid.VolcanicHotspot:     0.45,
	grid.CratonicShield:      0.40,
	grid.PassiveMargin:       0.70,
}

// Simulate runs the full plate stage: ridges, age, subduction, continents,
// hotspots, then the derived regime, grain and erodibility fields.
func Simulate(p Params) (*Simulation, error) {
	if p.Width < 3 || p.Height < 3 {
		return nil, grid.ErrInvalidGrid
	}
	start := time.Now()
	r := rand.New(rand.NewSource(noise.SubSeed(p.Seed, noise.StagePlates)))

	sim := &Simulation{
		Width:  p.Width,
		Height: p.Height,
		Bounds: p.Bounds,
	}

	n := p.Width * p.Height
	sim.AgeField = make([]float64, n)
	sim.ContinentalMask = make([]bool, n)
	sim.RegimeField = make([]grid.TectonicRegime, n)
	sim.GrainAngle = make([]float64, n)
	sim.GrainIntensity = make([]float64, n)
	sim.Erodibility = make([]float64, n)

	count := ridgeCount(p.ContinentalFragmentation)
	sim.Ridges = make([]RidgeSegment, count)
	for i := range sim.Ridges {
		sim.Ridges[i] = newRidge(r)
	}

	cells := cellVectors(p.Width, p.Height, p.Bounds)

	nearestRidge := sim.computeAge(cells)
	sim.buildContinents(p, cells)
	sim.buildSubductionArcs(r, cells)
	sim.buildHotspots(r)

	subDist, subTangent := sim.nearestSubduction(cells)
	sim.classifyRegimes(cells, nearestRidge, subDist)
	sim.computeGrain(cells, nearestRidge, subDist, subTangent)
	sim.computeErodibility(p.Seed, cells)

	log.Info().
		Int("ridges", len(sim.Ridges)).
		Int("subduction_arcs", len(sim.SubductionArcs)).
		Int("hotspots", len(sim.Hotspots)).
		Dur("duration", time.Since(start)).
		Msg("Plate simulation complete")

	return sim, nil
}

// cellVectors precomputes the unit vector of every cell centre.
func cellVectors(w, h int, b grid.Bounds) []spatial.Vector3D {
	out := make([]spatial.Vector3D, w*h)
	for rr := 0; rr < h; rr++ {
		lat := b.LatMax - (float64(rr)+0.5)*(b.LatMax-b.LatMin)/float64(h)
		for cc := 0; cc < w; cc++ {
			lon := b.LonMin + (float64(cc)+0.5)*(b.LonMax-b.LonMin)/float64(w)
			out[rr*w+cc] = spatial.ToUnitVector(lat, lon)
		}
	}
	return out
}

// computeAge fills the age field from ridge distance and returns the index
// of the nearest ridge per cell.
func (s *Simulation) computeAge(cells []spatial.Vector3D) []int {
	nearest := make([]int, len(cells))
	grid.ParallelRows(s.Height, func(row int) {
		for c := 0; c < s.Width; c++ {
			i := row*s.Width + c
			p := cells[i]
			best := math.Inf(1)
			bestIdx := 0
			for ri := range s.Ridges {
				if d := s.Ridges[ri].DistanceTo(p); d < best {
					best = d
					bestIdx = ri
				}
			}
			nearest[i] = bestIdx
			age := best/ageInfluence*maxAgeMyr + s.Ridges[bestIdx].AgeBias
			s.AgeField[i] = clamp(age, 0, maxAgeMyr)
		}
	})
	return nearest
}

// nearestSubduction computes, once for the whole grid, the angular distance
// to the closest trench polyline and that trench's tangent.
func (s *Simulation) nearestSubduction(cells []spatial.Vector3D) ([]float64, []spatial.Vector3D) {
	dist := make([]float64, len(cells))
	tangent := make([]spatial.Vector3D, len(cells))
	grid.ParallelRows(s.Height, func(row int) {
		for c := 0; c < s.Width; c++ {
			i := row*s.Width + c
			best := math.Inf(1)
			var bestTangent spatial.Vector3D
			for ai := range s.SubductionArcs {
				if d := s.SubductionArcs[ai].DistanceTo(cells[i]); d < best {
					best = d
					bestTangent = s.SubductionArcs[ai].Tangent
				}
			}
			dist[i] = best
			tangent[i] = bestTangent
		}
	})
	return dist, tangent
}

// buildContinents flood-fills continental crust from random seeds. Cells are
// ranked by distance to the nearest seed perturbed by noise, and the target
// fraction (1 - fragmentation) * mean fraction claims the lowest ranks.
func (s *Simulation) buildContinents(p Params, cells []spatial.Vector3D) {
	target := (1 - p.ContinentalFragmentation) * meanContinentalFraction
	if target <= 0 {
		return
	}
	r := rand.New(rand.NewSource(noise.SubSeed(p.Seed, noise.StageContinent)))
	perl := noise.NewPerlin(noise.SubSeed(p.Seed, noise.StageContinent))

	seedCount := 2 + int(math.Round((1-p.ContinentalFragmentation)*4))
	seeds := make([]spatial.Vector3D, seedCount)
	for i := range seeds {
		seeds[i] = randomUnitVector(r)
	}

	score := make([]float64, len(cells))
	for i, c := range cells {
		best := math.Inf(1)
		for _, sd := range seeds {
			if d := spatial.AngularDistance(c, sd); d < best {
				best = d
			}
		}
		// Noise keeps coastlines ragged instead of circular.
		score[i] = best + 0.35*perl.Noise2D(c.X*2+2*c.Z, c.Y*2-c.Z)
	}

	order := make([]int, len(cells))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return score[order[a]] < score[order[b]] })

	claim := int(target * float64(len(cells)))
	for k := 0; k < claim && k < len(order); k++ {
		s.ContinentalMask[order[k]] = true
	}
}

// buildSubductionArcs seeds trenches at high-age sites away from the poles.
func (s *Simulation) buildSubductionArcs(r *rand.Rand, cells []spatial.Vector3D) {
	var candidates []int
	for _, cutoff := range []float64{120, 100, 80, 60} {
		for i, p := range cells {
			if s.AgeField[i] <= cutoff {
				continue
			}
			if math.Abs(p.Z) > math.Sin(subductionPolarLimit) {
				continue
			}
			candidates = append(candidates, i)
		}
		if len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		return
	}

	r.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})

	arcTarget := 2 + r.Intn(3)
	const minSeparation = 20 * math.Pi / 180

	for _, ci := range candidates {
		if len(s.SubductionArcs) >= arcTarget {
			break
		}
		center := cells[ci]
		tooClose := false
		for _, a := range s.SubductionArcs {
			if spatial.AngularDistance(center, a.Center) < minSeparation {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		// Trenches run parallel to the ridge that made the crust.
		ridge := &s.Ridges[0]
		best := math.Inf(1)
		for ri := range s.Ridges {
			if d := s.Ridges[ri].DistanceTo(center); d < best {
				best = d
				ridge = &s.Ridges[ri]
			}
		}
		tangent := ridge.TangentAt(center)
		// Re-orthogonalise against the centre point.
		tangent = tangent.Sub(center.Scale(tangent.Dot(center))).Normalize()

		lengthKm := 200 + r.Float64()*400
		s.SubductionArcs = append(s.SubductionArcs, makeArc(center, tangent, lengthKm))
	}
}

// makeArc samples a great-circle polyline of the given surface length.
func makeArc(center, tangent spatial.Vector3D, lengthKm float64) SubductionArc {
	halfRad := lengthKm * 1000 / spatial.EarthRadiusM / 2
	// Nine samples keep the polyline within a small fraction of the
	// 3 degree influence band while distance scans stay cheap.
	const samples = 9

	pts := make([]spatial.Vector3D, 0, samples)
	for k := 0; k < samples; k++ {
		t := -halfRad + 2*halfRad*float64(k)/float64(samples-1)
		pts = append(pts, center.Scale(math.Cos(t)).Add(tangent.Scale(math.Sin(t))).Normalize())
	}
	return SubductionArc{Center: center, Tangent: tangent, LengthKm: lengthKm, Points: pts}
}

// DistanceTo returns the angular distance from p to the arc polyline.
func (a *SubductionArc) DistanceTo(p spatial.Vector3D) float64 {
	best := math.Inf(1)
	for _, q := range a.Points {
		if d := spatial.AngularDistance(p, q); d < best {
			best = d
		}
	}
	return best
}

// buildHotspots scatters a small set of isolated plumes.
func (s *Simulation) buildHotspots(r *rand.Rand) {
	count := 2 + r.Intn(4)
	const minSeparation = 15 * math.Pi / 180
	for len(s.Hotspots) < count {
		h := Hotspot{
			Center: randomUnitVector(r),
			Sigma:  (1.5 + r.Float64()*1.5) * math.Pi / 180,
		}
		isolated := true
		for _, o := range s.Hotspots {
			if spatial.AngularDistance(h.Center, o.Center) < minSeparation {
				isolated = false
				break
			}
		}
		if isolated {
			s.Hotspots = append(s.Hotspots, h)
		}
	}
}
