// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-rocketsim/pkg/engine"
	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/logging"
)

var skyColor = color.RGBA{10, 10, 40, 255}

// SimulationScene runs a simulation inside an engo window
type SimulationScene struct {
	world *ecs.World
	sim   *engine.Simulation

	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	stepper  *simulationSystem

	viewport entity.Viewport
	logger   *logging.Logger
}

// NewSimulationScene creates a new scene for sim
func NewSimulationScene(sim *engine.Simulation, vp entity.Viewport, logger *logging.Logger) *SimulationScene {
	return &SimulationScene{
		sim:      sim,
		viewport: vp,
		logger:   logger,
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "SimulationScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimulationScene) Preload() {
	if err := PreloadFont(); err != nil {
		scene.logger.Error(context.Background(), "HUD text disabled", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	if world, ok := u.(*ecs.World); ok {
		scene.world = world
	}
	common.SetBackground(skyColor)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		panic("Failed to load assets: " + err.Error())
	}
	scene.renderer = NewEngoRenderer(renderSystem, assets, scene.viewport)

	scene.input = NewInputSystem(scene.sim)
	scene.world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(renderSystem)
	font := &common.Font{URL: FontURL, FG: color.White, Size: 14}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(context.Background(), "HUD text disabled", err)
	} else {
		scene.hud.SetFont(font)
	}
	scene.hud.Subscribe(scene.sim.EventBus)

	scene.stepper = newSimulationSystem(scene.sim, scene.renderer, scene.hud)
	scene.stepper.followWindow = true
	scene.world.AddSystem(scene.stepper)
	scene.world.AddSystem(scene.hud)

	scene.sim.Start()
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {
	scene.logger.Info(context.Background(), "window closed", "state", scene.sim.Summary())
}

// simulationSystem advances the simulation in fixed ticks and draws a frame
// every engo update.
type simulationSystem struct {
	sim          *engine.Simulation
	renderer     *EngoRenderer
	hud          *HUDSystem
	accumulator  float64
	followWindow bool
}

func newSimulationSystem(sim *engine.Simulation, renderer *EngoRenderer, hud *HUDSystem) *simulationSystem {
	return &simulationSystem{
		sim:      sim,
		renderer: renderer,
		hud:      hud,
	}
}

// Remove satisfies the ecs.System interface
func (s *simulationSystem) Remove(basic ecs.BasicEntity) {}

// Update runs as many fixed ticks as fit into the frame time
func (s *simulationSystem) Update(dt float32) {
	physics := s.sim.Config().Physics

	frame := float64(dt)
	if physics.MaxFrameDelta > 0 && frame > physics.MaxFrameDelta {
		frame = physics.MaxFrameDelta
	}
	s.accumulator += frame
	for s.accumulator >= physics.TimeStep {
		s.sim.Step()
		s.accumulator -= physics.TimeStep
	}

	if s.followWindow {
		if w, h := engo.WindowWidth(), engo.WindowHeight(); w > 0 && h > 0 {
			vp := entity.Viewport{Width: float64(w), Height: float64(h)}
			if vp != s.renderer.Viewport() {
				s.renderer.SetViewport(vp)
			}
		}
	}

	s.sim.Render(s.renderer)
	if s.hud != nil {
		s.hud.SetStatus(s.sim.Summary())
	}
}
