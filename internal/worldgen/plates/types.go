package plates

import (
	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/spatial"
)

// RidgeSegment is a great-circle spreading ridge. The main arc between
// MainStart and MainEnd answers distance queries; SubArcs carry the
// transform-fault zigzag used for rendering and the segment-length
// guarantee. Closed and immutable once the simulation returns.
type RidgeSegment struct {
	Axis   spatial.Vector3D // unit normal of the ridge great circle
	U, V   spatial.Vector3D // orthonormal basis spanning the circle plane
	TStart float64          // arc parameter range, TEnd > TStart
	TEnd   float64

	MainStart spatial.Vector3D
	MainEnd   spatial.Vector3D
	SubArcs   [][]spatial.Vector3D // zigzag polylines, offsets <= 2.5 deg

	AgeBias float64 // Myr, per-ridge age remap bias
}

// SubductionArc is a trench segment seeded at a high-age cell.
type SubductionArc struct {
	Center   spatial.Vector3D
	Tangent  spatial.Vector3D
	LengthKm float64
	Points   []spatial.Vector3D // polyline sampled along the arc
}

// Hotspot is an isolated mantle plume with a Gaussian influence kernel.
type Hotspot struct {
	Center spatial.Vector3D
	Sigma  float64 // radians
}

// Simulation is the full output of the plate stage. All per-cell fields
// share the grid of the height field the pipeline will write later.
type Simulation struct {
	Width  int
	Height int
	Bounds grid.Bounds

	Ridges          []RidgeSegment
	SubductionArcs  []SubductionArc
	Hotspots        []Hotspot
	AgeField        []float64 // Myr, 0..200
	ContinentalMask []bool
	RegimeField     []grid.TectonicRegime
	GrainAngle      []float64 // radians in the grid east/north frame
	GrainIntensity  []float64 // 0..1
	Erodibility     []float64
}

// Params configures the plate stage.
type Params struct {
	Seed                     uint32
	ContinentalFragmentation float64
	Width                    int
	Height                   int
	Bounds                   grid.Bounds
}
