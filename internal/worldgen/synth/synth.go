// Package synth builds the raw elevation field: a smooth multifractal base
// with domain-warped, anisotropic, nonstationary detail, remapped to the
// class hypsometric target.
package synth

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/noise"
)

// Params configures the synthesis stage. GrainAngle/GrainIntensity may be nil
// for an isotropic field (the tile/noise-only path).
type Params struct {
	Seed  uint32
	Class grid.TerrainClass

	HBase     float64
	HVariance float64

	GrainAngle          []float64
	GrainIntensity      []float64
	GrainIntensityScale float64

	MountainHeightScale float64
	UpliftScale         float64
}

const (
	baseOctaves  = 3
	baseFreq     = 3.0
	detailOcts   = 8
	detailFreq   = 6.0
	lacunarity   = 2.0
	hMin, hMax   = 0.3, 0.95
	macroWarpAmp = 0.015
	microWarpAmp = 0.004
	// anisotropyK converts grain intensity into perpendicular-axis compression.
	anisotropyK = 2.0
	// roughnessAlpha couples detail amplitude to base elevation rank.
	roughnessAlpha = 0.8
	detailWeight   = 0.35
	// hiTolerance is the guaranteed hypsometric remap accuracy.
	hiTolerance = 0.005
)

// Generate writes the synthesised elevation into hf.
func Generate(p Params, hf *grid.HeightField) error {
	start := time.Now()
	w, h := hf.Width, hf.Height
	n := w * h

	// 1. Smooth base, percentile-rank normalised.
	base := noise.NewFBM(noise.SubSeed(p.Seed, noise.StageSynth), baseOctaves, baseFreq, lacunarity)
	baseGain := math.Pow(2, -0.8)
	raw := make([]float64, n)
	grid.ParallelRows(h, func(r int) {
		for c := 0; c < w; c++ {
			u := float64(c) / float64(w)
			v := float64(r) / float64(w)
			raw[r*w+c] = base.Eval(u, v, baseGain)
		}
	})
	rank := percentileRank(raw)

	// 2. Local Hurst field.
	hurst := make([]float64, n)
	for i := range hurst {
		hv := p.HBase + p.HVariance*(rank[i]-0.5)
		if hv < hMin {
			hv = hMin
		} else if hv > hMax {
			hv = hMax
		}
		hurst[i] = hv
	}

	// 3-6. Warped, anisotropic, amplitude-modulated detail.
	detail := noise.NewFBM(noise.SubSeed(p.Seed, noise.StageSynth)^0x9e3779b9, detailOcts, detailFreq, lacunarity)
	warpMacroX := noise.NewPerlin(noise.SubSeed(p.Seed, noise.StageSynth) + 11)
	warpMacroY := noise.NewPerlin(noise.SubSeed(p.Seed, noise.StageSynth) + 13)
	warpMicroX := noise.NewPerlin(noise.SubSeed(p.Seed, noise.StageSynth) + 17)
	warpMicroY := noise.NewPerlin(noise.SubSeed(p.Seed, noise.StageSynth) + 19)

	gScale := p.GrainIntensityScale
	if gScale == 0 {
		gScale = 1
	}

	combined := make([]float64, n)
	grid.ParallelRows(h, func(r int) {
		for c := 0; c < w; c++ {
			i := r*w + c
			u := float64(c) / float64(w)
			v := float64(r) / float64(w)

			// Two-level domain warp; larger magnitudes would skew the
			// local Hurst measurement non-uniformly.
			u += macroWarpAmp * warpMacroX.Noise2D(u*3, v*3)
			v += macroWarpAmp * warpMacroY.Noise2D(u*3, v*3)
			u += microWarpAmp * warpMicroX.Noise2D(u*24, v*24)
			v += microWarpAmp * warpMicroY.Noise2D(u*24, v*24)

			x, y := u, v
			if p.GrainIntensity != nil {
				gi := p.GrainIntensity[i] * gScale
				if gi > 1 {
					gi = 1
				}
				a := p.GrainAngle[i]
				cosA, sinA := math.Cos(a), math.Sin(a)
				along := u*cosA + v*sinA
				across := (-u*sinA + v*cosA) / (1 + anisotropyK*gi)
				x, y = along, across
			}

			d := detail.EvalHurst(x, y, hurst[i])
			d *= 1 + roughnessAlpha*rank[i]
			combined[i] = rank[i] + detailWeight*d
		}
	})

	// 7. Elevation scaling.
	scale := ElevRangeFor(p.Class) * p.MountainHeightScale * p.UpliftScale
	for i := range combined {
		combined[i] *= scale
	}

	// 8. Hypsometric remap onto the class target.
	remapHypsometry(combined, TargetHIFor(p.Class), scale)

	copy(hf.Data, combined)
	if err := hf.CheckFinite(); err != nil {
		return err
	}

	log.Info().
		Str("class", p.Class.String()).
		Float64("h_base", p.HBase).
		Dur("duration", time.Since(start)).
		Msg("Noise synthesis complete")
	return nil
}

// percentileRank maps values to their empirical CDF position in [0, 1].
func percentileRank(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	rank := make([]float64, n)
	for pos, idx := range order {
		rank[idx] = float64(pos) / float64(n-1)
	}
	return rank
}

// remapHypsometry rank-remaps values onto an inverse-CDF of the form p^gamma,
// with gamma solved so the discrete hypsometric integral lands on the target.
// The remap is monotone, so drainage ordering survives.
func remapHypsometry(values []float64, targetHI, span float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	for pos := range order {
		ranks[pos] = float64(pos) / float64(n-1)
	}

	// Solving on a subsample keeps the bisection cheap at full resolution.
	solveRanks := ranks
	if len(ranks) > 8192 {
		step := len(ranks) / 8192
		solveRanks = make([]float64, 0, 8192)
		for i := 0; i < len(ranks); i += step {
			solveRanks = append(solveRanks, ranks[i])
		}
	}
	gamma := solveGamma(solveRanks, targetHI)
	for pos, idx := range order {
		values[idx] = span * math.Pow(ranks[pos], gamma)
	}
}

// solveGamma bisects gamma so that mean(p^gamma) hits the target HI.
// mean(p^gamma) is strictly decreasing in gamma, so bisection converges.
func solveGamma(ranks []float64, target float64) float64 {
	mean := func(g float64) float64 {
		s := 0.0
		for _, p := range ranks {
			s += math.Pow(p, g)
		}
		return s / float64(len(ranks))
	}

	lo, hi := 0.02, 50.0
	for iter := 0; iter < 60; iter++ {
		mid := (lo + hi) / 2
		if mean(mid) > target {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-7 {
			break
		}
	}
	return (lo + hi) / 2
}
