// pkg/physics/integrator.go
package physics

import "math"

// State is the kinematic state advanced by the integrator.
type State struct {
	Position Vector2D
	Velocity Vector2D
}

// AccelerationFunc returns the acceleration acting on a body at the given
// position and velocity at simulation time t.
type AccelerationFunc func(position, velocity Vector2D, t float64) Vector2D

// Step advances a state by dt with a semi-implicit Euler step.
//
// The position moves first using the incoming velocity, and the acceleration
// is then sampled at the new position before the velocity is updated. Keeping
// this order makes trajectories reproducible across runs with the same dt.
func Step(s State, t, dt float64, accel AccelerationFunc) State {
	position := s.Position.Add(s.Velocity.Scale(dt))
	a := accel(position, s.Velocity, t)
	return State{
		Position: position,
		Velocity: s.Velocity.Add(a.Scale(dt)),
	}
}

// QuadraticDrag returns the drag acceleration along one axis for a body moving
// at speed v on that axis. The result always opposes v. A non-positive mass
// contributes no acceleration.
func QuadraticDrag(density, v, dragCoefficient, crossSection, mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return -0.5 * density * v * math.Abs(v) * dragCoefficient * crossSection / mass
}
