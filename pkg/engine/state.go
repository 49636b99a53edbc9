// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// VehicleState is a copy of one vehicle's observable state
type VehicleState struct {
	ID              entity.ID
	Name            string
	Kind            entity.Kind
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	Mass            float64
	ApoapsisReached bool
	ThrustActive    bool
	Grounded        bool
}

// SimulationState is a point-in-time snapshot handed to presentation code.
// It shares no memory with the simulation.
type SimulationState struct {
	Tick           uint64
	ElapsedTime    float64
	Paused         bool
	GravityEnabled bool
	DragEnabled    bool
	RenderScale    float64
	Vehicles       []VehicleState
}

// thruster is implemented by vehicles with an engine
type thruster interface {
	IsThrusting() bool
}

func snapshotVehicle(v entity.Vehicle) VehicleState {
	vs := VehicleState{
		ID:              v.GetID(),
		Name:            v.GetName(),
		Kind:            v.Kind(),
		Position:        v.GetPosition(),
		Velocity:        v.GetVelocity(),
		Mass:            v.GetMass(),
		ApoapsisReached: v.HasReachedApoapsis(),
		Grounded:        v.Grounded(),
	}
	if t, ok := v.(thruster); ok {
		vs.ThrustActive = t.IsThrusting()
	}
	return vs
}

// State returns a snapshot of the parameters and every vehicle
func (s *Simulation) State() SimulationState {
	state := SimulationState{
		Tick:           s.Params.Tick,
		ElapsedTime:    s.Params.ElapsedTime,
		Paused:         s.Params.Paused,
		GravityEnabled: s.Params.GravityEnabled,
		DragEnabled:    s.Params.DragEnabled,
		RenderScale:    s.Params.RenderScale,
		Vehicles:       make([]VehicleState, 0, len(s.vehicles)),
	}
	for _, v := range s.vehicles {
		state.Vehicles = append(state.Vehicles, snapshotVehicle(v))
	}
	return state
}

// Vehicle returns the snapshot of the named vehicle
func (st SimulationState) Vehicle(name string) (VehicleState, bool) {
	for _, v := range st.Vehicles {
		if v.Name == name {
			return v, true
		}
	}
	return VehicleState{}, false
}
