package orbit

// Status classifies a body's trajectory after each step.
type Status int

const (
	// StatusOrbiting means the body is gravitationally bound.
	StatusOrbiting Status = iota
	// StatusEscaping means the body's speed exceeds local escape velocity.
	StatusEscaping
	// StatusCrashed is terminal: the body descended into the crash margin
	// and its state is frozen.
	StatusCrashed
)

func (s Status) String() string {
	switch s {
	case StatusOrbiting:
		return "orbiting"
	case StatusEscaping:
		return "escaping"
	case StatusCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Default physical parameters for a newly added body. The shape defaults
// match a small boxy satellite.
const (
	DefaultMass            = 1000.0
	DefaultDragCoefficient = 2.2
	DefaultCrossSection    = 4.0
	DefaultAltitude        = 400_000.0
)

// Body is the mutable state of one simulated satellite. The integrator
// updates Position, Velocity and Status in place every tick.
type Body struct {
	Position Vec3    // metres, origin at Earth's centre
	Velocity Vec3    // metres per second
	Mass     float64 // kilograms, always > 0

	DragCoefficient float64 // dimensionless
	CrossSection    float64 // square metres
	AirEnabled      bool

	Status Status
}

// Altitude is the body's height above the Earth surface in metres.
func (b *Body) Altitude() float64 {
	return b.Position.Norm() - EarthRadius
}

// Speed is the magnitude of the body's velocity in m/s.
func (b *Body) Speed() float64 {
	return b.Velocity.Norm()
}
