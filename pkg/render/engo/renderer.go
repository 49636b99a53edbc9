// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

// Screen geometry in pixels
const (
	GroundHeight = 20
	SpriteSize   = 16
	FlameHeight  = 8
)

var (
	groundColor  = color.RGBA{60, 140, 60, 255}
	bodyColor    = color.RGBA{255, 255, 255, 255}
	crashedColor = color.RGBA{200, 60, 60, 255}
)

// sprite is one drawable ECS entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// vehicleSprites are the entities drawn for one vehicle
type vehicleSprites struct {
	body  *sprite
	flame *sprite
	seen  bool
}

// EngoRenderer implements entity.Renderer using the Engo game engine
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager
	viewport     entity.Viewport
	scale        float64

	vehicles map[entity.ID]*vehicleSprites
	ground   *sprite
}

// NewEngoRenderer creates a renderer that adds its sprites to rs. A nil rs
// keeps the sprites detached, which is how tests run without a window.
func NewEngoRenderer(rs *common.RenderSystem, assets *AssetManager, vp entity.Viewport) *EngoRenderer {
	r := &EngoRenderer{
		renderSystem: rs,
		assets:       assets,
		viewport:     vp,
		scale:        1,
		vehicles:     make(map[entity.ID]*vehicleSprites),
	}
	r.ground = r.newSprite(assets.GroundDrawable(), groundColor, float32(vp.Width), GroundHeight)
	r.layoutGround()
	return r
}

// ScreenPosition returns the top-left corner of a w x h sprite standing at a
// world position. x = 0 is the horizontal center and the ground strip sits at
// the bottom of the viewport.
func ScreenPosition(vp entity.Viewport, scale float64, pos physics.Vector2D, w, h float32) engo.Point {
	px := vp.Width/2 + pos.X*entity.PixelsPerMeter*scale
	py := pos.Y * entity.PixelsPerMeter * scale
	return engo.Point{
		X: float32(px) - w/2,
		Y: float32(vp.Height-GroundHeight-py) - h,
	}
}

// SetViewport follows a window resize
func (r *EngoRenderer) SetViewport(vp entity.Viewport) {
	r.viewport = vp
	r.layoutGround()
}

// Viewport implements entity.Renderer
func (r *EngoRenderer) Viewport() entity.Viewport {
	return r.viewport
}

// Scale returns the render scale of the current frame
func (r *EngoRenderer) Scale() float64 {
	return r.scale
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear(scale float64) {
	r.scale = scale
	for _, vs := range r.vehicles {
		vs.seen = false
	}
}

// RenderRocket implements entity.Renderer
func (r *EngoRenderer) RenderRocket(rocket *entity.Rocket) {
	vs := r.getOrCreateVehicle(rocket.GetID(), r.assets.RocketSprite(), true)
	r.place(vs.body, rocket.Position, rocket.Grounded())

	flameVisible := rocket.IsThrusting()
	vs.flame.Hidden = !flameVisible
	if flameVisible {
		vs.flame.Position = engo.Point{
			X: vs.body.Position.X,
			Y: vs.body.Position.Y + vs.body.Height,
		}
	}
}

// RenderIFO implements entity.Renderer
func (r *EngoRenderer) RenderIFO(ifo *entity.IFO) {
	vs := r.getOrCreateVehicle(ifo.GetID(), r.assets.IFOSprite(), false)
	r.place(vs.body, ifo.Position, ifo.Grounded())
}

// Present implements entity.Renderer. Sprites of vehicles not drawn this
// frame are hidden.
func (r *EngoRenderer) Present() {
	for _, vs := range r.vehicles {
		if vs.seen {
			continue
		}
		vs.body.Hidden = true
		if vs.flame != nil {
			vs.flame.Hidden = true
		}
	}
}

func (r *EngoRenderer) place(s *sprite, pos physics.Vector2D, grounded bool) {
	s.Position = ScreenPosition(r.viewport, r.scale, pos, s.Width, s.Height)
	s.Hidden = false
	s.Color = bodyColor
	if grounded {
		s.Color = crashedColor
	}
}

// getOrCreateVehicle gets the sprites of a vehicle or creates them
func (r *EngoRenderer) getOrCreateVehicle(id entity.ID, body common.Drawable, withFlame bool) *vehicleSprites {
	vs, exists := r.vehicles[id]
	if !exists {
		vs = &vehicleSprites{
			body: r.newSprite(body, bodyColor, SpriteSize, SpriteSize),
		}
		if withFlame {
			vs.flame = r.newSprite(r.assets.FlameSprite(), bodyColor, SpriteSize, FlameHeight)
			vs.flame.Hidden = true
		}
		r.vehicles[id] = vs
	}
	vs.seen = true
	return vs
}

func (r *EngoRenderer) newSprite(d common.Drawable, c color.Color, w, h float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: d, Color: c}
	s.SpaceComponent = common.SpaceComponent{Width: w, Height: h}
	if d != nil {
		s.RenderComponent.Scale = engo.Point{X: w / textureWidth(d), Y: h / textureHeight(d)}
	}
	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

func (r *EngoRenderer) layoutGround() {
	r.ground.Width = float32(r.viewport.Width)
	r.ground.Position = engo.Point{X: 0, Y: float32(r.viewport.Height) - GroundHeight}
	r.ground.RenderComponent.Scale = engo.Point{X: 1, Y: 1}
}

// RemoveVehicle removes a vehicle's sprites from rendering
func (r *EngoRenderer) RemoveVehicle(id entity.ID) {
	vs, exists := r.vehicles[id]
	if !exists {
		return
	}
	if r.renderSystem != nil {
		r.renderSystem.Remove(vs.body.BasicEntity)
		if vs.flame != nil {
			r.renderSystem.Remove(vs.flame.BasicEntity)
		}
	}
	delete(r.vehicles, id)
}

func textureWidth(d common.Drawable) float32 {
	if w := d.Width(); w > 0 {
		return w
	}
	return 1
}

func textureHeight(d common.Drawable) float32 {
	if h := d.Height(); h > 0 {
		return h
	}
	return 1
}
