// Package orbit implements the physics core: body state, Newtonian
// point-mass gravity, exponential-atmosphere drag, and the semi-implicit
// Euler integrator that advances and classifies each body.
//
// Trajectories classify into three states after every step:
//
//   - [StatusOrbiting]: bound, below local escape velocity
//   - [StatusEscaping]: above local escape velocity
//   - [StatusCrashed]: descended into the crash margin; terminal
//
// The integrator is an explicit first-order scheme tuned for real-time
// interactivity. It does not conserve energy exactly and does not model
// perturbations beyond drag.
package orbit
