package sim

import "github.com/orbitlab/orbitsim/internal/orbit"

// BodyConfig is the caller-facing description of a body to add. Every
// field the caller leaves at an invalid or zero value is replaced by a
// default at add time; the registry never rejects a body. All vector
// values are copied into registry-owned state, so the caller's config
// can be reused or mutated afterwards.
type BodyConfig struct {
	Position orbit.Vec3
	Velocity orbit.Vec3
	Mass     float64

	DragCoefficient float64
	CrossSection    float64
	AirEnabled      bool
}

// DefaultBodyConfig is a body on a circular low Earth orbit: 400 km up
// along the reference axis, circular-orbit speed along a perpendicular
// one, with drag enabled.
func DefaultBodyConfig() BodyConfig {
	integ := orbit.NewIntegrator()
	r := orbit.EarthRadius + orbit.DefaultAltitude
	return BodyConfig{
		Position:        orbit.Vec3{X: r},
		Velocity:        orbit.Vec3{Y: integ.CircularSpeed(r)},
		Mass:            orbit.DefaultMass,
		DragCoefficient: orbit.DefaultDragCoefficient,
		CrossSection:    orbit.DefaultCrossSection,
		AirEnabled:      true,
	}
}

// BodyTelemetry is the per-body snapshot Tick returns for the rendering
// and UI layers. The physics core never writes to a display itself.
type BodyTelemetry struct {
	ID       int
	Position orbit.Vec3
	Velocity orbit.Vec3
	Altitude float64
	Speed    float64
	// Density is the diagnostic banded-model density at the body's
	// altitude, not the value drag used.
	Density        float64
	EscapeVelocity float64
	Status         orbit.Status
}

// Metric observes each advanced body every tick and reduces to a single
// value, in the style of a streaming statistic.
type Metric interface {
	Name() string
	Observe(b *orbit.Body, t float64)
	Value() float64
	Reset()
}
