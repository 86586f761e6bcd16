// Package trail keeps a bounded history of past positions per body for
// trajectory display.
package trail

import "github.com/orbitlab/orbitsim/internal/orbit"

const (
	// DefaultMaxLength caps the number of retained samples.
	DefaultMaxLength = 1000

	// DefaultMinDistance is how far the body must move before a new
	// sample is recorded, in metres. The threshold bounds memory and
	// update cost independent of tick rate.
	DefaultMinDistance = 1000.0
)

// Sampler records a distance-thresholded FIFO of positions. Samples are
// kept in insertion order, which is chronological order.
type Sampler struct {
	maxLength   int
	minDistance float64
	points      []orbit.Vec3
}

// NewSampler builds a sampler; non-positive arguments fall back to the
// defaults.
func NewSampler(maxLength int, minDistance float64) *Sampler {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	return &Sampler{
		maxLength:   maxLength,
		minDistance: minDistance,
		points:      make([]orbit.Vec3, 0, maxLength),
	}
}

// Record appends p if the trail is empty or the body moved more than the
// threshold since the last sample. The oldest sample is evicted once the
// cap is reached.
func (s *Sampler) Record(p orbit.Vec3) {
	if n := len(s.points); n > 0 && s.points[n-1].DistanceTo(p) <= s.minDistance {
		return
	}
	if len(s.points) >= s.maxLength {
		copy(s.points, s.points[1:])
		s.points = s.points[:len(s.points)-1]
	}
	s.points = append(s.points, p)
}

// Points returns a copy of the recorded samples, oldest first.
func (s *Sampler) Points() []orbit.Vec3 {
	out := make([]orbit.Vec3, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Sampler) Len() int {
	return len(s.points)
}

// Clear empties the trail.
func (s *Sampler) Clear() {
	s.points = s.points[:0]
}
