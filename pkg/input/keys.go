// Package input defines the symbolic key events understood by the simulator.
// Presentation layers translate their own key codes into these values.
package input

import "strings"

// Key identifies a simulator command.
type Key int

const (
	KeyUnknown Key = iota
	KeyReset
	KeyPauseToggle
	KeyGravityToggle
	KeyDragToggle
	KeyThrustToggle
	KeyExhaustLeft
	KeyExhaustRight
)

var keyNames = map[Key]string{
	KeyReset:         "Reset",
	KeyPauseToggle:   "PauseToggle",
	KeyGravityToggle: "GravityToggle",
	KeyDragToggle:    "DragToggle",
	KeyThrustToggle:  "ThrustToggle",
	KeyExhaustLeft:   "ExhaustLeft",
	KeyExhaustRight:  "ExhaustRight",
}

// String returns the symbolic name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey converts a symbolic name to a Key. Matching is case-insensitive.
// Unrecognized names return KeyUnknown.
func ParseKey(name string) Key {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k
		}
	}
	return KeyUnknown
}

// terminalKeys maps the single-word commands accepted on a terminal to keys.
var terminalKeys = map[string]Key{
	"r":     KeyReset,
	"p":     KeyPauseToggle,
	" ":     KeyPauseToggle,
	"space": KeyPauseToggle,
	"g":     KeyGravityToggle,
	"d":     KeyDragToggle,
	"t":     KeyThrustToggle,
	"a":     KeyExhaustLeft,
	"left":  KeyExhaustLeft,
	"e":     KeyExhaustRight,
	"right": KeyExhaustRight,
}

// FromTerminal maps a line typed on a terminal to a Key. Symbolic names are
// accepted as well as the short letters shown in the terminal help.
func FromTerminal(line string) Key {
	if line == " " {
		return KeyPauseToggle
	}
	word := strings.ToLower(strings.TrimSpace(line))
	if k, ok := terminalKeys[word]; ok {
		return k
	}
	return ParseKey(word)
}
