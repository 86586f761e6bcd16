package metrics

import "github.com/orbitlab/orbitsim/internal/orbit"

// Perigee tracks the minimum altitude seen across all observations, in
// metres above the surface.
type Perigee struct {
	min     float64
	samples int
}

func NewPerigee() *Perigee {
	return &Perigee{}
}

func (p *Perigee) Name() string { return "perigee_altitude" }

func (p *Perigee) Observe(b *orbit.Body, t float64) {
	alt := b.Altitude()
	if p.samples == 0 || alt < p.min {
		p.min = alt
	}
	p.samples++
}

func (p *Perigee) Value() float64 {
	return p.min
}

func (p *Perigee) Reset() {
	p.min = 0
	p.samples = 0
}

// Apogee tracks the maximum altitude seen across all observations.
type Apogee struct {
	max     float64
	samples int
}

func NewApogee() *Apogee {
	return &Apogee{}
}

func (a *Apogee) Name() string { return "apogee_altitude" }

func (a *Apogee) Observe(b *orbit.Body, t float64) {
	alt := b.Altitude()
	if a.samples == 0 || alt > a.max {
		a.max = alt
	}
	a.samples++
}

func (a *Apogee) Value() float64 {
	return a.max
}

func (a *Apogee) Reset() {
	a.max = 0
	a.samples = 0
}
