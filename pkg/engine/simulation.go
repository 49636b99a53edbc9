// pkg/engine/simulation.go
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/opd-ai/go-rocketsim/pkg/config"
	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/event"
	"github.com/opd-ai/go-rocketsim/pkg/input"
	"github.com/opd-ai/go-rocketsim/pkg/logging"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// Parameters holds the global state of a simulation run
type Parameters struct {
	ElapsedTime    float64 // simulation clock, seconds
	TimeStep       float64 // seconds advanced by the current tick, 0 while paused
	Paused         bool
	GravityEnabled bool
	DragEnabled    bool
	RenderScale    float64 // recomputed every frame
	Tick           uint64  // executed ticks, paused ones included
}

// Toggle names used in ParameterToggled events
const (
	ParamPaused  = "paused"
	ParamGravity = "gravity"
	ParamDrag    = "drag"
)

// Simulation owns the vehicles and advances them through fixed ticks
type Simulation struct {
	Params   Parameters
	EventBus *event.Bus

	config     *config.SimulationConfig
	vehicles   []entity.Vehicle
	logger     *logging.Logger
	ctx        context.Context
	now        func() time.Time
	lastUpdate time.Time
}

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the logger used for lifecycle messages
func WithLogger(logger *logging.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithEventBus publishes events on an existing bus
func WithEventBus(bus *event.Bus) Option {
	return func(s *Simulation) {
		s.EventBus = bus
	}
}

// WithContext sets the context carried into log calls, typically one
// holding a run ID.
func WithContext(ctx context.Context) Option {
	return func(s *Simulation) {
		s.ctx = ctx
	}
}

// WithClock replaces the wall clock used by Advance
func WithClock(now func() time.Time) Option {
	return func(s *Simulation) {
		s.now = now
	}
}

// NewSimulation creates a simulation with the vehicles listed in cfg. A nil
// cfg runs the default scenario.
func NewSimulation(cfg *config.SimulationConfig, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		Params: Parameters{
			Paused:         cfg.Physics.StartPaused,
			GravityEnabled: cfg.Physics.Gravity,
			DragEnabled:    cfg.Physics.Drag,
			RenderScale:    1,
		},
		config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.logger == nil {
		s.logger = logging.NewLogger()
	}
	if s.ctx == nil {
		s.ctx = logging.WithRunID(context.Background(), logging.GenerateRunID())
	}
	s.lastUpdate = s.now()

	for _, rc := range cfg.Rockets {
		s.AddVehicle(entity.NewRocket(entity.GenerateID(), entity.RocketSpec{
			Name:             rc.Name,
			Position:         physics.Vector2D{X: rc.X, Y: rc.Y},
			Mass:             rc.Mass,
			DragCoefficient:  rc.DragCoefficient,
			CrossSection:     rc.CrossSection,
			ExhaustVelocity:  physics.Vector2D{X: rc.ExhaustVelocityX, Y: rc.ExhaustVelocityY},
			MassFlowRate:     rc.MassFlowRate,
			ThrustCutoffTime: rc.ThrustCutoffTime,
			ThrustEnabled:    rc.ThrustEnabled,
		}))
	}
	for _, fc := range cfg.IFOs {
		s.AddVehicle(entity.NewIFO(entity.GenerateID(), entity.IFOSpec{
			Name:            fc.Name,
			Position:        physics.Vector2D{X: fc.X, Y: fc.Y},
			Velocity:        physics.Vector2D{X: fc.VelocityX, Y: fc.VelocityY},
			Mass:            fc.Mass,
			DragCoefficient: fc.DragCoefficient,
			CrossSection:    fc.CrossSection,
		}))
	}

	return s, nil
}

// AddVehicle appends a vehicle to the simulation. Vehicles are updated and
// drawn in insertion order.
func (s *Simulation) AddVehicle(v entity.Vehicle) {
	s.vehicles = append(s.vehicles, v)
}

// Vehicles returns the simulated vehicles in insertion order
func (s *Simulation) Vehicles() []entity.Vehicle {
	return append([]entity.Vehicle(nil), s.vehicles...)
}

// Config returns the configuration the simulation was built from
func (s *Simulation) Config() *config.SimulationConfig {
	return s.config
}

// Start announces the run and restarts the wall clock used by Advance
func (s *Simulation) Start() {
	s.lastUpdate = s.now()
	s.logger.Info(s.ctx, "simulation started",
		"vehicles", len(s.vehicles),
		"time_step", s.config.Physics.TimeStep,
		"gravity", s.Params.GravityEnabled,
		"drag", s.Params.DragEnabled,
	)
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
}

// Tick advances the simulation by dt seconds. Negative or NaN dt is treated
// as zero and a paused simulation advances by zero.
func (s *Simulation) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if s.Params.Paused {
		s.Params.TimeStep = 0
	} else {
		s.Params.TimeStep = dt
	}

	c := entity.Conditions{
		Time:     s.Params.ElapsedTime,
		TimeStep: s.Params.TimeStep,
		Gravity:  s.Params.GravityEnabled,
		Drag:     s.Params.DragEnabled,
	}
	for _, v := range s.vehicles {
		before := snapshotVehicle(v)
		v.Update(c)
		s.publishTransitions(v, before, c.Time)
	}

	s.Params.ElapsedTime += s.Params.TimeStep
	s.Params.Tick++

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.TickCompleted,
		Source:    s,
	})
}

// Step runs one tick of the configured fixed time step
func (s *Simulation) Step() {
	s.Tick(s.config.Physics.TimeStep)
}

// Advance runs one tick sized by the wall-clock time since the previous call
// and returns that size.
func (s *Simulation) Advance() float64 {
	dt := s.calculateDeltaTime()
	s.Tick(dt)
	return dt
}

// calculateDeltaTime calculates the time since the last update and caps it.
func (s *Simulation) calculateDeltaTime() float64 {
	now := s.now()
	deltaTime := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now

	if limit := s.config.Physics.MaxFrameDelta; limit > 0 && deltaTime > limit {
		deltaTime = limit
	}
	return deltaTime
}

// publishTransitions compares a vehicle with its pre-tick snapshot and
// announces every latch that flipped during the tick.
func (s *Simulation) publishTransitions(v entity.Vehicle, before VehicleState, t float64) {
	after := snapshotVehicle(v)

	if !before.ApoapsisReached && after.ApoapsisReached {
		s.logger.Info(s.ctx, "vehicle reached apoapsis",
			"vehicle", after.Name,
			"altitude", after.Position.Y,
			"time", t,
		)
		s.publishVehicleEvent(event.ApoapsisReached, after, t)
	}

	if before.ThrustActive && !after.ThrustActive && !after.Grounded {
		s.logger.Info(s.ctx, "thrust cutoff",
			"vehicle", after.Name,
			"altitude", after.Position.Y,
			"mass", after.Mass,
			"time", t,
		)
		s.publishVehicleEvent(event.ThrustCutoff, after, t)
	}

	if !before.Grounded && after.Grounded {
		s.logger.Info(s.ctx, "vehicle hit the ground",
			"vehicle", after.Name,
			"x", after.Position.X,
			"speed", after.Velocity.Length(),
			"time", t,
		)
		s.publishVehicleEvent(event.GroundImpact, after, t)
	}
}

func (s *Simulation) publishVehicleEvent(eventType event.Type, vs VehicleState, t float64) {
	s.EventBus.Publish(event.NewVehicleEvent(eventType, s, uint64(vs.ID), vs.Name, t, vs.Position.Y))
}

// ResetAll zeroes the clock and returns every vehicle to its launch state.
// Toggles keep their values.
func (s *Simulation) ResetAll() {
	s.Params.ElapsedTime = 0
	s.Params.TimeStep = 0
	for _, v := range s.vehicles {
		v.Reset()
	}

	s.logger.Info(s.ctx, "simulation reset", "tick", s.Params.Tick)
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationReset,
		Source:    s,
	})
}

// HandleKey applies a key press to the global toggles and forwards it to
// every vehicle. Unknown keys are ignored.
func (s *Simulation) HandleKey(key input.Key) {
	switch key {
	case input.KeyUnknown:
		return
	case input.KeyReset:
		s.ResetAll()
	case input.KeyPauseToggle:
		s.Params.Paused = !s.Params.Paused
		s.toggled(ParamPaused, s.Params.Paused)
	case input.KeyGravityToggle:
		s.Params.GravityEnabled = !s.Params.GravityEnabled
		s.toggled(ParamGravity, s.Params.GravityEnabled)
	case input.KeyDragToggle:
		s.Params.DragEnabled = !s.Params.DragEnabled
		s.toggled(ParamDrag, s.Params.DragEnabled)
	}

	for _, v := range s.vehicles {
		v.HandleInput(key)
	}
}

func (s *Simulation) toggled(param string, enabled bool) {
	s.logger.Info(s.ctx, "parameter toggled", "parameter", param, "enabled", enabled)
	s.EventBus.Publish(event.NewToggleEvent(s, param, enabled))
}

// ComputeRenderScale stores and returns the smallest scale, at most 1, at
// which every vehicle fits in the viewport.
func (s *Simulation) ComputeRenderScale(vp entity.Viewport) float64 {
	scales := make([]float64, 0, len(s.vehicles)+1)
	scales = append(scales, 1)
	for _, v := range s.vehicles {
		scales = append(scales, v.RenderScale(vp))
	}
	s.Params.RenderScale = floats.Min(scales)
	return s.Params.RenderScale
}

// Render draws one frame: it fits the render scale to the renderer's
// viewport, then draws every vehicle.
func (s *Simulation) Render(r entity.Renderer) {
	scale := s.ComputeRenderScale(r.Viewport())
	r.Clear(scale)
	for _, v := range s.vehicles {
		v.Render(r)
	}
	r.Present()
}

// Summary returns a one-line description of the current state
func (s *Simulation) Summary() string {
	state := "running"
	if s.Params.Paused {
		state = "paused"
	}
	return fmt.Sprintf("t=%.2fs tick=%d %s gravity=%t drag=%t vehicles=%d",
		s.Params.ElapsedTime, s.Params.Tick, state,
		s.Params.GravityEnabled, s.Params.DragEnabled, len(s.vehicles))
}
