// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-rocketsim/pkg/event"
)

const (
	hudMargin     = 10
	hudLineHeight = 18
)

// LogLine is one entry of the HUD event log
type LogLine struct {
	Text  string
	Color color.Color
}

// HUDSystem draws the status line and a short log of flight events
type HUDSystem struct {
	renderSystem *common.RenderSystem
	font         *common.Font

	status   string
	messages []LogLine
	maxLines int

	// text entities, status first
	lines []*sprite
	dirty bool

	hudColor   color.Color
	eventColor color.Color
	alertColor color.Color
}

// NewHUDSystem creates a new HUD system. Text is only drawn once a font is
// set.
func NewHUDSystem(rs *common.RenderSystem) *HUDSystem {
	return &HUDSystem{
		renderSystem: rs,
		maxLines:     6,
		hudColor:     color.RGBA{255, 255, 255, 255},
		eventColor:   color.RGBA{120, 200, 255, 255},
		alertColor:   color.RGBA{255, 120, 80, 255},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update redraws the HUD text when it changed
func (hud *HUDSystem) Update(dt float32) {
	if !hud.dirty || hud.font == nil {
		return
	}
	hud.dirty = false

	texts := make([]LogLine, 0, hud.maxLines+1)
	texts = append(texts, LogLine{Text: hud.status, Color: hud.hudColor})
	texts = append(texts, hud.visibleMessages()...)

	for len(hud.lines) < hud.maxLines+1 {
		hud.lines = append(hud.lines, hud.newTextSprite(len(hud.lines)))
	}
	for i, s := range hud.lines {
		if i >= len(texts) || texts[i].Text == "" {
			s.Hidden = true
			continue
		}
		s.Drawable = common.Text{Font: hud.font, Text: texts[i].Text}
		s.Color = texts[i].Color
		s.Hidden = false
	}
}

func (hud *HUDSystem) newTextSprite(row int) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: common.Text{Font: hud.font},
		Color:    hud.hudColor,
		Scale:    engo.Point{X: 1, Y: 1},
		Hidden:   true,
	}
	s.SetZIndex(10)
	s.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: hudMargin, Y: hudMargin + float32(row*hudLineHeight)},
	}
	if hud.renderSystem != nil {
		hud.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// visibleMessages returns the most recent maxLines messages, oldest first
func (hud *HUDSystem) visibleMessages() []LogLine {
	if len(hud.messages) <= hud.maxLines {
		return hud.messages
	}
	return hud.messages[len(hud.messages)-hud.maxLines:]
}

// SetStatus sets the status line
func (hud *HUDSystem) SetStatus(status string) {
	if status != hud.status {
		hud.status = status
		hud.dirty = true
	}
}

// Status returns the status line
func (hud *HUDSystem) Status() string {
	return hud.status
}

// AddMessage appends a line to the event log
func (hud *HUDSystem) AddMessage(text string, c color.Color) {
	hud.messages = append(hud.messages, LogLine{Text: text, Color: c})

	// Keep only the most recent messages
	if len(hud.messages) > hud.maxLines*2 {
		hud.messages = hud.messages[len(hud.messages)-hud.maxLines:]
	}
	hud.dirty = true
}

// Messages returns the event log
func (hud *HUDSystem) Messages() []LogLine {
	return hud.messages
}

// ClearMessages empties the event log
func (hud *HUDSystem) ClearMessages() {
	hud.messages = hud.messages[:0]
	hud.dirty = true
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
	hud.dirty = true
}

// Subscribe logs flight events published on bus. A reset clears the log.
func (hud *HUDSystem) Subscribe(bus *event.Bus) {
	for _, typ := range []event.Type{event.ApoapsisReached, event.ThrustCutoff, event.GroundImpact, event.ParameterToggled} {
		bus.Subscribe(typ, func(e event.Event) {
			if text, alert := describeEvent(e); text != "" {
				c := hud.eventColor
				if alert {
					c = hud.alertColor
				}
				hud.AddMessage(text, c)
			}
		})
	}
	bus.Subscribe(event.SimulationReset, func(event.Event) {
		hud.ClearMessages()
	})
}

// describeEvent formats an event for the log. alert marks impacts.
func describeEvent(e event.Event) (text string, alert bool) {
	switch ev := e.(type) {
	case *event.VehicleEvent:
		switch ev.GetType() {
		case event.ApoapsisReached:
			return fmt.Sprintf("%6.2fs %s apoapsis at %.1f m", ev.Time, ev.VehicleName, ev.Altitude), false
		case event.ThrustCutoff:
			return fmt.Sprintf("%6.2fs %s thrust cutoff at %.1f m", ev.Time, ev.VehicleName, ev.Altitude), false
		case event.GroundImpact:
			return fmt.Sprintf("%6.2fs %s hit the ground", ev.Time, ev.VehicleName), true
		}
	case *event.ToggleEvent:
		state := "off"
		if ev.Enabled {
			state = "on"
		}
		return fmt.Sprintf("%s %s", ev.Parameter, state), false
	}
	return "", false
}
