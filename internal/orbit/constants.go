package orbit

// Physical constants shared by the integrator and the registry defaults.
const (
	// GravitationalConstant is Newton's G in m^3 kg^-1 s^-2.
	GravitationalConstant = 6.6743e-11

	// EarthMass in kilograms.
	EarthMass = 5.972e24

	// EarthRadius is the mean Earth radius in metres.
	EarthRadius = 6_371_000.0

	// CrashMargin is the band above the surface inside which a body is
	// considered crashed. Re-entry breakup happens well above the ground,
	// so the simulation terminates a trajectory 50 km up.
	CrashMargin = 50_000.0

	// DragCeiling is the altitude above which drag is not applied.
	DragCeiling = 500_000.0

	// DragMinSpeed suppresses drag for near-stationary bodies, which
	// keeps the drag direction well defined.
	DragMinSpeed = 1.0
)
