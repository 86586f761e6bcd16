package orbit

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/atmosphere"
)

// Integrator advances one body per call under point-mass gravity and a
// simplified exponential-atmosphere drag. The scheme is semi-implicit
// Euler: velocity is updated first and the new velocity moves the
// position, which holds up better over long orbits than the explicit
// form.
type Integrator struct {
	G           float64
	CentralMass float64
	Radius      float64
}

// NewIntegrator returns an integrator configured for Earth.
func NewIntegrator() *Integrator {
	return &Integrator{
		G:           GravitationalConstant,
		CentralMass: EarthMass,
		Radius:      EarthRadius,
	}
}

// Step advances b by dt seconds and reclassifies its status. A crashed
// body is never advanced again; dt = 0 leaves the state bit-identical.
func (in *Integrator) Step(b *Body, dt float64) {
	if b.Status == StatusCrashed || dt == 0 {
		return
	}

	dist := b.Position.Norm()
	if dist <= in.Radius+CrashMargin {
		b.Status = StatusCrashed
		return
	}

	acc := in.Acceleration(b)
	b.Velocity = b.Velocity.Add(acc.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	dist = b.Position.Norm()
	if b.Speed() > in.EscapeVelocity(dist) {
		b.Status = StatusEscaping
	} else {
		b.Status = StatusOrbiting
	}
}

// Acceleration is the total acceleration acting on b: gravity toward the
// centre plus drag opposing the velocity. Gravitational acceleration is
// independent of the body's own mass; drag is the drag force divided by
// it.
func (in *Integrator) Acceleration(b *Body) Vec3 {
	dist := b.Position.Norm()
	gravMag := in.G * in.CentralMass / (dist * dist)
	acc := b.Position.Normalize().Scale(-gravMag)

	drag := in.dragAcceleration(b, dist)
	return acc.Add(drag)
}

func (in *Integrator) dragAcceleration(b *Body, dist float64) Vec3 {
	if !b.AirEnabled {
		return Vec3{}
	}
	altitude := dist - in.Radius
	if altitude >= DragCeiling {
		return Vec3{}
	}
	speed := b.Speed()
	if speed <= DragMinSpeed {
		return Vec3{}
	}

	rho := atmosphere.FastDensity(altitude)
	force := 0.5 * rho * speed * speed * b.DragCoefficient * b.CrossSection
	return b.Velocity.Normalize().Scale(-force / b.Mass)
}

// EscapeVelocity is the local escape speed at distance r from the centre.
func (in *Integrator) EscapeVelocity(r float64) float64 {
	return math.Sqrt(2 * in.G * in.CentralMass / r)
}

// CircularSpeed is the speed of a circular orbit at distance r.
func (in *Integrator) CircularSpeed(r float64) float64 {
	return math.Sqrt(in.G * in.CentralMass / r)
}

// SpecificEnergy is the orbital energy per unit mass, v^2/2 - GM/r.
// Negative values indicate a bound orbit.
func (in *Integrator) SpecificEnergy(b *Body) float64 {
	r := b.Position.Norm()
	v := b.Speed()
	return v*v/2 - in.G*in.CentralMass/r
}
