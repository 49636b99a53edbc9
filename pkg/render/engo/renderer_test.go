// pkg/render/engo/renderer_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/physics"
)

func testRocket(id entity.ID, pos physics.Vector2D) *entity.Rocket {
	return entity.NewRocket(id, entity.RocketSpec{
		Name:             "rocket",
		Position:         pos,
		Mass:             0.2,
		ExhaustVelocity:  physics.Vector2D{Y: 650},
		MassFlowRate:     0.01,
		ThrustCutoffTime: 4.5,
		ThrustEnabled:    true,
	})
}

func TestScreenPosition(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		pos   physics.Vector2D
		want  engo.Point
	}{
		{"pad", 1, physics.Vector2D{}, engo.Point{X: 312, Y: 444}},
		{"half_scale", 0.5, physics.Vector2D{X: 10, Y: 20}, engo.Point{X: 337, Y: 394}},
		{"left", 1, physics.Vector2D{X: -20}, engo.Point{X: 212, Y: 444}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenPosition(testViewport, tt.scale, tt.pos, SpriteSize, SpriteSize)
			if got != tt.want {
				t.Errorf("ScreenPosition() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestEngoRenderer_ImplementsRenderer(t *testing.T) {
	var _ entity.Renderer = NewEngoRenderer(nil, NewAssetManager(), testViewport)
}

func TestEngoRenderer_GroundStrip(t *testing.T) {
	r := NewEngoRenderer(nil, NewAssetManager(), testViewport)
	if r.ground.Width != 640 || r.ground.Position.Y != 460 {
		t.Errorf("ground at %+v width %f", r.ground.Position, r.ground.Width)
	}

	r.SetViewport(entity.Viewport{Width: 800, Height: 600})
	if r.ground.Width != 800 || r.ground.Position.Y != 580 {
		t.Errorf("ground not resized: %+v width %f", r.ground.Position, r.ground.Width)
	}
	if r.Viewport().Width != 800 {
		t.Errorf("Viewport().Width = %f, expected 800", r.Viewport().Width)
	}
}

func TestEngoRenderer_RocketFlame(t *testing.T) {
	r := NewEngoRenderer(nil, NewAssetManager(), testViewport)
	rocket := testRocket(1, physics.Vector2D{Y: 10})

	r.Clear(1)
	r.RenderRocket(rocket)
	r.Present()

	vs := r.vehicles[rocket.GetID()]
	if vs == nil || vs.flame == nil {
		t.Fatal("rocket sprites not created")
	}
	if vs.body.Hidden || vs.flame.Hidden {
		t.Error("thrusting rocket should show body and flame")
	}
	if vs.flame.Position.Y != vs.body.Position.Y+SpriteSize {
		t.Errorf("flame at %+v, body at %+v", vs.flame.Position, vs.body.Position)
	}

	rocket.Thrusting = false
	r.Clear(1)
	r.RenderRocket(rocket)
	r.Present()
	if !vs.flame.Hidden {
		t.Error("flame should be hidden without thrust")
	}
}

func TestEngoRenderer_GroundedTint(t *testing.T) {
	r := NewEngoRenderer(nil, NewAssetManager(), testViewport)
	ifo := entity.NewIFO(2, entity.IFOSpec{Name: "ifo", Position: physics.Vector2D{Y: -1}, Mass: 1})

	r.Clear(1)
	r.RenderIFO(ifo)

	if got := r.vehicles[ifo.GetID()].body.Color; got != crashedColor {
		t.Errorf("grounded color = %v, expected %v", got, crashedColor)
	}
}

func TestEngoRenderer_HidesVehiclesNotDrawn(t *testing.T) {
	r := NewEngoRenderer(nil, NewAssetManager(), testViewport)
	a := testRocket(10, physics.Vector2D{})
	b := testRocket(11, physics.Vector2D{X: 5})

	r.Clear(1)
	r.RenderRocket(a)
	r.RenderRocket(b)
	r.Present()

	r.Clear(1)
	r.RenderRocket(a)
	r.Present()

	if r.vehicles[a.GetID()].body.Hidden {
		t.Error("drawn vehicle hidden")
	}
	if !r.vehicles[b.GetID()].body.Hidden || !r.vehicles[b.GetID()].flame.Hidden {
		t.Error("vehicle missing from the frame should be hidden")
	}

	r.RemoveVehicle(b.GetID())
	if _, ok := r.vehicles[b.GetID()]; ok {
		t.Error("RemoveVehicle() left the sprites")
	}
}

func TestEngoRenderer_UsesFrameScale(t *testing.T) {
	r := NewEngoRenderer(nil, NewAssetManager(), testViewport)
	rocket := testRocket(20, physics.Vector2D{X: 10, Y: 20})

	r.Clear(0.5)
	r.RenderRocket(rocket)

	if r.Scale() != 0.5 {
		t.Errorf("Scale() = %f, expected 0.5", r.Scale())
	}
	want := ScreenPosition(testViewport, 0.5, rocket.Position, SpriteSize, SpriteSize)
	if got := r.vehicles[rocket.GetID()].body.Position; got != want {
		t.Errorf("body at %+v, expected %+v", got, want)
	}
}
