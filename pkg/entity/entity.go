// pkg/entity/entity.go
package entity

import (
	"math"
	"sync/atomic"

	"github.com/opd-ai/go-rocketsim/pkg/input"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// ID is a unique identifier for a vehicle
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-unique vehicle ID
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Kind names a vehicle variant
type Kind string

const (
	KindRocket Kind = "rocket"
	KindIFO    Kind = "ifo"
)

// Conditions is the read-only view of the simulation parameters a vehicle
// sees during one tick.
type Conditions struct {
	Time     float64 // simulation time at the start of the tick
	TimeStep float64 // zero while paused
	Gravity  bool
	Drag     bool
}

// Vehicle is the common contract for every simulated body
type Vehicle interface {
	GetID() ID
	GetName() string
	Kind() Kind
	GetPosition() physics.Vector2D
	GetVelocity() physics.Vector2D
	GetMass() float64
	Grounded() bool
	HasReachedApoapsis() bool
	Update(c Conditions)
	Reset()
	HandleInput(key input.Key)
	RenderScale(vp Viewport) float64
	Render(r Renderer)
}

// BaseVehicle holds the state and force law shared by all vehicles
type BaseVehicle struct {
	ID              ID
	Name            string
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	Mass            float64
	DragCoefficient float64
	CrossSection    float64

	InitialPosition physics.Vector2D
	InitialVelocity physics.Vector2D
	InitialMass     float64

	ApoapsisReached bool
	ascending       bool
}

// GetID returns the vehicle's unique identifier
func (b *BaseVehicle) GetID() ID {
	return b.ID
}

// GetName returns the display name
func (b *BaseVehicle) GetName() string {
	return b.Name
}

// GetPosition returns the vehicle's position
func (b *BaseVehicle) GetPosition() physics.Vector2D {
	return b.Position
}

// GetVelocity returns the vehicle's velocity
func (b *BaseVehicle) GetVelocity() physics.Vector2D {
	return b.Velocity
}

// GetMass returns the current mass
func (b *BaseVehicle) GetMass() float64 {
	return b.Mass
}

// Grounded reports whether the vehicle has dropped below the surface. A
// grounded vehicle stays frozen until Reset.
func (b *BaseVehicle) Grounded() bool {
	return b.Position.Y < 0
}

// HasReachedApoapsis reports the latched apoapsis flag
func (b *BaseVehicle) HasReachedApoapsis() bool {
	return b.ApoapsisReached
}

// Reset restores the recorded initial state
func (b *BaseVehicle) Reset() {
	b.Position = b.InitialPosition
	b.Velocity = b.InitialVelocity
	b.Mass = b.InitialMass
	b.ApoapsisReached = false
	b.ascending = false
}

// trackApoapsis latches ApoapsisReached the first time the vertical velocity
// turns non-positive after having been positive.
func (b *BaseVehicle) trackApoapsis() {
	if b.Velocity.Y > 0 {
		b.ascending = true
		return
	}
	if b.ascending && !b.ApoapsisReached {
		b.ApoapsisReached = true
	}
}

// integrate advances the body by one tick under gravity, drag and an optional
// constant extra acceleration such as thrust.
func (b *BaseVehicle) integrate(c Conditions, extra physics.Vector2D) {
	density := physics.DensityAtAltitude(b.Position.Y)
	mass := b.Mass

	accel := func(pos, vel physics.Vector2D, _ float64) physics.Vector2D {
		a := extra
		if c.Drag {
			a.X += physics.QuadraticDrag(density, vel.X, b.DragCoefficient, b.CrossSection, mass)
			a.Y += physics.QuadraticDrag(density, vel.Y, b.DragCoefficient, b.CrossSection, mass)
		}
		if c.Gravity {
			a.Y -= physics.GravitationalAcceleration(pos.Y + physics.SurfaceRadius)
		}
		return a
	}

	next := physics.Step(physics.State{Position: b.Position, Velocity: b.Velocity}, c.Time, c.TimeStep, accel)
	b.Position = next.Position
	b.Velocity = next.Velocity
}

// Sprite geometry used to fit vehicles into the viewport.
const (
	PixelsPerMeter   = 5.0
	VerticalMargin   = 75.0
	HorizontalMargin = 50.0
)

// RenderScale returns the largest scale, at most 1, that keeps the vehicle's
// sprite inside the viewport.
func (b *BaseVehicle) RenderScale(vp Viewport) float64 {
	vertical := math.Abs((vp.Height - VerticalMargin) / (PixelsPerMeter * b.Position.Y))
	horizontal := math.Abs((vp.Width/2 - HorizontalMargin) / (PixelsPerMeter * math.Abs(b.Position.X)))

	scale := 1.0
	for _, s := range []float64{vertical, horizontal} {
		// 0/0 means the vehicle sits on the margin line, which places no limit.
		if !math.IsNaN(s) && s < scale {
			scale = s
		}
	}
	return scale
}
