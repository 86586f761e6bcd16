// Package metrics provides streaming per-tick statistics over simulated
// bodies. Each metric satisfies the sim.Metric interface.
package metrics

import (
	"math"

	"github.com/orbitlab/orbitsim/internal/orbit"
)

// SpecificEnergy averages the orbital energy per unit mass, v^2/2 - GM/r,
// over all observations. Negative values indicate bound trajectories.
type SpecificEnergy struct {
	integ   *orbit.Integrator
	total   float64
	samples int
}

func NewSpecificEnergy(integ *orbit.Integrator) *SpecificEnergy {
	return &SpecificEnergy{integ: integ}
}

func (e *SpecificEnergy) Name() string { return "specific_energy" }

func (e *SpecificEnergy) Observe(b *orbit.Body, t float64) {
	e.total += e.integ.SpecificEnergy(b)
	e.samples++
}

func (e *SpecificEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *SpecificEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of specific orbital
// energy from the first value observed for each body. Drag and the
// first-order scheme both show up here.
type EnergyDrift struct {
	integ    *orbit.Integrator
	initial  map[*orbit.Body]float64
	maxDrift float64
}

func NewEnergyDrift(integ *orbit.Integrator) *EnergyDrift {
	return &EnergyDrift{integ: integ, initial: make(map[*orbit.Body]float64)}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(b *orbit.Body, t float64) {
	energy := e.integ.SpecificEnergy(b)

	initial, ok := e.initial[b]
	if !ok {
		e.initial[b] = energy
		return
	}

	if initial != 0 {
		drift := math.Abs(energy-initial) / math.Abs(initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = make(map[*orbit.Body]float64)
	e.maxDrift = 0
}
