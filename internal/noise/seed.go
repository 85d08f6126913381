package noise

// Stage identifiers mixed into the master seed so every stage draws from
// an independent, reorder-safe stream.
const (
	StagePlates    = "plates"
	StageClimate   = "climate"
	StageSynth     = "synth"
	StageHydro     = "hydro"
	StageContinent = "continent"
	StageHotspot   = "hotspot"
)

// SubSeed derives a per-stage seed from the master seed. FNV-1a over the
// stage id folded with a splitmix64 finaliser keeps the streams decorrelated
// even for adjacent master seeds.
func SubSeed(master uint32, stage string) int64 {
	const (
		fnvOffset = 14695981039346656037
		fnvPrime  = 1099511628211
	)
	h := uint64(fnvOffset)
	h ^= uint64(master)
	h *= fnvPrime
	for i := 0; i < len(stage); i++ {
		h ^= uint64(stage[i])
		h *= fnvPrime
	}
	// splitmix64 finaliser
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}
