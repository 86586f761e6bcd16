// Package sim owns the collection of simulated bodies and drives their
// per-tick integration.
package sim

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/atmosphere"
	"github.com/orbitlab/orbitsim/internal/orbit"
	"github.com/orbitlab/orbitsim/internal/trail"
)

// Config tunes registry-owned resources. Zero values select defaults.
type Config struct {
	MaxTrailLength   int
	TrailMinDistance float64
}

// Registry is the ordered collection of bodies plus their trails. It is
// frame-driven and single-threaded: the caller invokes Tick once per
// frame and no two ticks overlap.
type Registry struct {
	cfg     Config
	integ   *orbit.Integrator
	atmo    *atmosphere.Model
	bodies  []*orbit.Body
	trails  []*trail.Sampler
	metrics []Metric
	elapsed float64
}

// New builds an empty registry configured for Earth.
func New(cfg Config) *Registry {
	return &Registry{
		cfg:   cfg,
		integ: orbit.NewIntegrator(),
		atmo:  atmosphere.NewModel(),
	}
}

// AddBody registers a body and returns its id. Invalid or unset fields
// in the config are replaced by defaults rather than rejected:
// non-positive or non-finite mass, non-finite or zero vectors, and
// non-positive drag parameters all degrade gracefully. Ids are
// positions in the body order; removing a body shifts the ids of the
// bodies after it.
func (r *Registry) AddBody(cfg BodyConfig) int {
	def := DefaultBodyConfig()

	if !cfg.Position.IsValid() || cfg.Position.IsZero() {
		cfg.Position = def.Position
	}
	if !cfg.Velocity.IsValid() || cfg.Velocity.IsZero() {
		cfg.Velocity = def.Velocity
	}
	if cfg.Mass <= 0 || !finite(cfg.Mass) {
		cfg.Mass = def.Mass
	}
	if cfg.DragCoefficient <= 0 || !finite(cfg.DragCoefficient) {
		cfg.DragCoefficient = def.DragCoefficient
	}
	if cfg.CrossSection <= 0 || !finite(cfg.CrossSection) {
		cfg.CrossSection = def.CrossSection
	}

	b := &orbit.Body{
		Position:        cfg.Position,
		Velocity:        cfg.Velocity,
		Mass:            cfg.Mass,
		DragCoefficient: cfg.DragCoefficient,
		CrossSection:    cfg.CrossSection,
		AirEnabled:      cfg.AirEnabled,
		Status:          orbit.StatusOrbiting,
	}

	r.bodies = append(r.bodies, b)
	r.trails = append(r.trails, trail.NewSampler(r.cfg.MaxTrailLength, r.cfg.TrailMinDistance))
	return len(r.bodies) - 1
}

// RemoveBody drops the body and its trail. An out-of-range id is
// silently ignored.
func (r *Registry) RemoveBody(id int) {
	if id < 0 || id >= len(r.bodies) {
		return
	}
	r.bodies = append(r.bodies[:id], r.bodies[id+1:]...)
	r.trails = append(r.trails[:id], r.trails[id+1:]...)
}

// Reset clears all bodies, trails and accumulated time unconditionally.
func (r *Registry) Reset() {
	r.bodies = nil
	r.trails = nil
	r.elapsed = 0
	for _, m := range r.metrics {
		m.Reset()
	}
}

// AddMetric attaches a streaming metric observed on every advanced body.
func (r *Registry) AddMetric(m Metric) {
	r.metrics = append(r.metrics, m)
}

// Metrics returns the current value of every attached metric.
func (r *Registry) Metrics() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Tick advances every registered body by dtSeconds*timeScale and returns
// a telemetry snapshot per body. Crashed bodies are skipped entirely;
// their frozen state still appears in the snapshot.
func (r *Registry) Tick(dtSeconds, timeScale float64) []BodyTelemetry {
	dt := dtSeconds * timeScale
	out := make([]BodyTelemetry, 0, len(r.bodies))

	for i, b := range r.bodies {
		if b.Status != orbit.StatusCrashed && dt != 0 {
			r.integ.Step(b, dt)
			r.trails[i].Record(b.Position)
			for _, m := range r.metrics {
				m.Observe(b, r.elapsed+dt)
			}
		}
		out = append(out, r.snapshot(i, b))
	}

	r.elapsed += dt
	return out
}

func (r *Registry) snapshot(id int, b *orbit.Body) BodyTelemetry {
	dist := b.Position.Norm()
	alt := dist - r.integ.Radius
	return BodyTelemetry{
		ID:             id,
		Position:       b.Position,
		Velocity:       b.Velocity,
		Altitude:       alt,
		Speed:          b.Speed(),
		Density:        r.atmo.Density(alt),
		EscapeVelocity: r.integ.EscapeVelocity(dist),
		Status:         b.Status,
	}
}

// Len is the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Body returns the body with the given id, or nil when out of range. The
// returned pointer reads live simulation state.
func (r *Registry) Body(id int) *orbit.Body {
	if id < 0 || id >= len(r.bodies) {
		return nil
	}
	return r.bodies[id]
}

// Trail returns a copy of the recorded trail for the given id, oldest
// sample first. Out-of-range ids return nil.
func (r *Registry) Trail(id int) []orbit.Vec3 {
	if id < 0 || id >= len(r.trails) {
		return nil
	}
	return r.trails[id].Points()
}

// Density exposes the diagnostic banded atmosphere model.
func (r *Registry) Density(altitude float64) float64 {
	return r.atmo.Density(altitude)
}

// Elapsed is the accumulated simulated time in seconds.
func (r *Registry) Elapsed() float64 {
	return r.elapsed
}

// Integrator exposes the underlying force integrator for derived
// quantities such as circular speed and specific energy.
func (r *Registry) Integrator() *orbit.Integrator {
	return r.integ
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
