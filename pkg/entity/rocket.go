// pkg/entity/rocket.go
package entity

import (
	"github.com/opd-ai/go-rocketsim/pkg/input"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// ExhaustNudge is the change in horizontal exhaust velocity per key press, m/s.
const ExhaustNudge = 100.0

// RocketSpec holds the construction constants of a rocket
type RocketSpec struct {
	Name             string
	Position         physics.Vector2D
	Mass             float64
	DragCoefficient  float64
	CrossSection     float64
	ExhaustVelocity  physics.Vector2D
	MassFlowRate     float64
	ThrustCutoffTime float64
	ThrustEnabled    bool
}

// Rocket is a thrust vehicle that burns propellant until its cutoff time
type Rocket struct {
	BaseVehicle
	ExhaustVelocity  physics.Vector2D
	MassFlowRate     float64
	ThrustCutoffTime float64
	ThrustEnabled    bool

	// Thrusting is true while the engine was burning during the last tick.
	Thrusting bool
}

// NewRocket creates a rocket at rest at spec.Position
func NewRocket(id ID, spec RocketSpec) *Rocket {
	r := &Rocket{
		BaseVehicle: BaseVehicle{
			ID:              id,
			Name:            spec.Name,
			Position:        spec.Position,
			Mass:            spec.Mass,
			DragCoefficient: spec.DragCoefficient,
			CrossSection:    spec.CrossSection,
			InitialPosition: spec.Position,
			InitialMass:     spec.Mass,
		},
		ExhaustVelocity:  spec.ExhaustVelocity,
		MassFlowRate:     spec.MassFlowRate,
		ThrustCutoffTime: spec.ThrustCutoffTime,
		ThrustEnabled:    spec.ThrustEnabled,
	}
	r.Thrusting = r.ThrustActive(0)
	return r
}

// Kind implements Vehicle
func (r *Rocket) Kind() Kind {
	return KindRocket
}

// ThrustActive reports whether the engine burns at simulation time t
func (r *Rocket) ThrustActive(t float64) bool {
	return r.ThrustEnabled && t <= r.ThrustCutoffTime && r.Mass > 0
}

// IsThrusting reports whether the engine burned during the last tick
func (r *Rocket) IsThrusting() bool {
	return r.Thrusting && !r.Grounded()
}

// Update advances the rocket by one tick. A grounded rocket or a zero-length
// tick leaves every field untouched.
func (r *Rocket) Update(c Conditions) {
	if r.Grounded() || c.TimeStep <= 0 {
		return
	}
	r.trackApoapsis()

	burn := r.ThrustActive(c.Time) && r.Mass-c.TimeStep*r.MassFlowRate > 0
	r.Thrusting = burn

	var thrust physics.Vector2D
	if burn {
		thrust = r.ExhaustVelocity.Scale(r.MassFlowRate / r.Mass)
	}

	r.integrate(c, thrust)

	if burn {
		r.Mass -= c.TimeStep * r.MassFlowRate
	}
}

// Reset restores the launch state. Exhaust velocity and the thrust toggle
// keep whatever the operator set.
func (r *Rocket) Reset() {
	r.BaseVehicle.Reset()
	r.Thrusting = r.ThrustActive(0)
}

// HandleInput applies rocket-specific key presses
func (r *Rocket) HandleInput(key input.Key) {
	switch key {
	case input.KeyExhaustLeft:
		r.ExhaustVelocity.X -= ExhaustNudge
	case input.KeyExhaustRight:
		r.ExhaustVelocity.X += ExhaustNudge
	case input.KeyThrustToggle:
		r.ThrustEnabled = !r.ThrustEnabled
		if !r.ThrustEnabled {
			r.Thrusting = false
		}
	}
}

// Render implements Vehicle
func (r *Rocket) Render(renderer Renderer) {
	renderer.RenderRocket(r)
}
