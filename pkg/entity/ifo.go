package entity

import (
	"github.com/opd-ai/go-rocketsim/pkg/input"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// IFOSpec holds the construction constants of an IFO
type IFOSpec struct {
	Name            string
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	Mass            float64
	DragCoefficient float64
	CrossSection    float64
}

// IFO is an unpowered body that coasts under gravity and drag
type IFO struct {
	BaseVehicle
}

// NewIFO creates an IFO launched with spec.Velocity
func NewIFO(id ID, spec IFOSpec) *IFO {
	return &IFO{
		BaseVehicle: BaseVehicle{
			ID:              id,
			Name:            spec.Name,
			Position:        spec.Position,
			Velocity:        spec.Velocity,
			Mass:            spec.Mass,
			DragCoefficient: spec.DragCoefficient,
			CrossSection:    spec.CrossSection,
			InitialPosition: spec.Position,
			InitialVelocity: spec.Velocity,
			InitialMass:     spec.Mass,
		},
	}
}

// Kind implements Vehicle
func (f *IFO) Kind() Kind {
	return KindIFO
}

// Update advances the IFO by one tick. A grounded IFO or a zero-length tick
// leaves every field untouched.
func (f *IFO) Update(c Conditions) {
	if f.Grounded() || c.TimeStep <= 0 {
		return
	}
	f.trackApoapsis()
	f.integrate(c, physics.Vector2D{})
}

// HandleInput ignores all keys; shared toggles live in the simulation.
func (f *IFO) HandleInput(input.Key) {}

// Render implements Vehicle
func (f *IFO) Render(renderer Renderer) {
	renderer.RenderIFO(f)
}
