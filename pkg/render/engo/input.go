// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-rocketsim/pkg/input"
)

// KeyHandler receives simulator commands
type KeyHandler interface {
	HandleKey(key input.Key)
}

// Binding maps a simulator command to the keyboard keys that trigger it
type Binding struct {
	Key   input.Key
	Codes []engo.Key
}

// DefaultBindings are the window key bindings, in polling order
var DefaultBindings = []Binding{
	{Key: input.KeyReset, Codes: []engo.Key{engo.KeyR}},
	{Key: input.KeyPauseToggle, Codes: []engo.Key{engo.KeySpace, engo.KeyP}},
	{Key: input.KeyGravityToggle, Codes: []engo.Key{engo.KeyG}},
	{Key: input.KeyDragToggle, Codes: []engo.Key{engo.KeyD}},
	{Key: input.KeyThrustToggle, Codes: []engo.Key{engo.KeyT}},
	{Key: input.KeyExhaustLeft, Codes: []engo.Key{engo.KeyArrowLeft, engo.KeyA}},
	{Key: input.KeyExhaustRight, Codes: []engo.Key{engo.KeyArrowRight, engo.KeyE}},
}

// InputSystem turns key presses into simulator commands
type InputSystem struct {
	handler     KeyHandler
	bindings    []Binding
	justPressed func(button string) bool
}

// NewInputSystem creates a new input system
func NewInputSystem(handler KeyHandler) *InputSystem {
	return &InputSystem{
		handler:  handler,
		bindings: DefaultBindings,
		justPressed: func(button string) bool {
			return engo.Input.Button(button).JustPressed()
		},
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update forwards every command whose key was pressed this frame
func (is *InputSystem) Update(dt float32) {
	is.poll()
}

// poll dispatches pressed commands in binding order and returns them
func (is *InputSystem) poll() []input.Key {
	var pressed []input.Key
	for _, b := range is.bindings {
		if is.justPressed(b.Key.String()) {
			is.handler.HandleKey(b.Key)
			pressed = append(pressed, b.Key)
		}
	}
	return pressed
}

// SetupInputBindings registers the key bindings with engo
func SetupInputBindings() {
	for _, b := range DefaultBindings {
		engo.Input.RegisterButton(b.Key.String(), b.Codes...)
	}
}
