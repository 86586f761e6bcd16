// Package atmosphere models air density as a function of altitude.
//
// Two models coexist on purpose. [Model.Density] is a banded closed-form
// approximation of the US Standard Atmosphere, memoized per 100 m bucket,
// and serves display and diagnostics. [FastDensity] is a single
// exponential that the real-time integrator uses for drag; it is cheaper
// and cuts off at the drag ceiling. The two disagree numerically and are
// never mixed: FastDensity governs physics, Model governs readouts.
package atmosphere

import "math"

const (
	// bucketSize is the memoization resolution in metres.
	bucketSize = 100.0

	// maxAltitude is the edge of the modeled atmosphere. Density is zero
	// at and above it, so all higher altitudes share one bucket and the
	// memo map stays bounded at maxAltitude/bucketSize+1 entries.
	maxAltitude = 1_000_000.0

	// fastScaleHeight and seaLevelDensity parameterize the single
	// exponential used by the integrator.
	fastScaleHeight = 8500.0
	seaLevelDensity = 1.225
	fastCeiling     = 500_000.0
)

// Model is the banded density model with a per-bucket memo cache. It is
// not safe for concurrent use; the simulation is single-threaded by
// contract.
type Model struct {
	cache map[int]float64
}

func NewModel() *Model {
	return &Model{cache: make(map[int]float64)}
}

// Density returns air density in kg/m^3 at the given altitude in metres.
// Negative altitudes are clamped to zero. Results are memoized by
// rounding the altitude to the nearest 100 m, so two calls within the
// same bucket return bit-identical values.
func (m *Model) Density(altitude float64) float64 {
	if altitude < 0 {
		altitude = 0
	}
	if altitude > maxAltitude {
		altitude = maxAltitude
	}
	bucket := int(math.Round(altitude / bucketSize))

	if rho, ok := m.cache[bucket]; ok {
		return rho
	}
	rho := bandedDensity(float64(bucket) * bucketSize)
	m.cache[bucket] = rho
	return rho
}

// bandedDensity evaluates the piecewise model. Bands are half-open
// [lower, upper) and checked in ascending order, so every altitude
// matches exactly one formula.
func bandedDensity(h float64) float64 {
	switch {
	case h < 11_000:
		return 1.225 * math.Pow(1-0.0065*h/288.15, 4.256)
	case h < 20_000:
		return 0.3639 * math.Exp(-(h-11_000)/6341.6)
	case h < 32_000:
		return 0.088 * math.Exp(-(h-20_000)/7360.0)
	case h < 47_000:
		return 0.0132 * math.Exp(-(h-32_000)/8000.0)
	case h < 51_000:
		return 0.00143 * math.Exp(-(h-47_000)/7500.0)
	case h < 71_000:
		return 0.000086 * math.Exp(-(h-51_000)/10_000.0)
	case h < 100_000:
		return 0.0000032 * math.Exp(-(h-71_000)/15_000.0)
	case h < 200_000:
		return 1e-9 * math.Exp(-(h-100_000)/25_000.0)
	case h < 500_000:
		return 1e-11 * math.Exp(-(h-200_000)/100_000.0)
	case h < 1_000_000:
		return 1e-13 * math.Exp(-(h-500_000)/500_000.0)
	default:
		return 0
	}
}

// FastDensity is the simplified exponential profile used for drag inside
// the integrator. Valid below the drag ceiling; zero above it.
func FastDensity(altitude float64) float64 {
	if altitude < 0 {
		altitude = 0
	}
	if altitude >= fastCeiling {
		return 0
	}
	return seaLevelDensity * math.Exp(-altitude/fastScaleHeight)
}
