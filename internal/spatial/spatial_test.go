package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3D_Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector3D
		want Vector3D
	}{
		{name: "x cross y is z", a: Vector3D{1, 0, 0}, b: Vector3D{0, 1, 0}, want: Vector3D{0, 0, 1}},
		{name: "y cross z is x", a: Vector3D{0, 1, 0}, b: Vector3D{0, 0, 1}, want: Vector3D{1, 0, 0}},
		{name: "parallel vectors", a: Vector3D{1, 0, 0}, b: Vector3D{2, 0, 0}, want: Vector3D{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Cross(tt.b))
		})
	}
}

func TestVector3D_Normalize(t *testing.T) {
	v := Vector3D{3, 4, 0}.Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-12)
	assert.InDelta(t, 0.6, v.X, 1e-12)

	zero := Vector3D{}.Normalize()
	assert.Equal(t, Vector3D{}, zero)
}

func TestGreatCircleDistance(t *testing.T) {
	// Quarter circumference from equator to pole.
	d := GreatCircleDistance(0, 0, 90, 0, EarthRadiusM)
	assert.InDelta(t, math.Pi/2*EarthRadiusM, d, 1)

	// Same point.
	assert.InDelta(t, 0, GreatCircleDistance(45, 30, 45, 30, EarthRadiusM), 1e-6)
}

func TestAngularDistance_MatchesHaversine(t *testing.T) {
	a := ToUnitVector(12.5, -33.0)
	b := ToUnitVector(-48.0, 101.0)
	want := GreatCircleDistance(12.5, -33.0, -48.0, 101.0, 1.0)
	assert.InDelta(t, want, AngularDistance(a, b), 1e-9)
}

func TestToCartesian_RoundTrip(t *testing.T) {
	lat, lon := 37.2, -122.1
	x, y, z := ToCartesian(lat, lon, EarthRadiusM)
	gotLat, gotLon := ToLatLon(x, y, z, EarthRadiusM)
	assert.InDelta(t, lat, gotLat, 1e-9)
	assert.InDelta(t, lon, gotLon, 1e-9)
}

func TestLocalFrame_Orthonormal(t *testing.T) {
	p := ToUnitVector(41.0, 12.0)
	east, north := LocalFrame(p)
	assert.InDelta(t, 0, east.Dot(p), 1e-12)
	assert.InDelta(t, 0, north.Dot(p), 1e-12)
	assert.InDelta(t, 0, east.Dot(north), 1e-12)
	assert.InDelta(t, 1, east.Length(), 1e-12)

	// North tangent points toward the pole.
	assert.Greater(t, north.Z, 0.0)
}
