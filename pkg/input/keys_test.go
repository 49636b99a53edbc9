package input

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		expected Key
	}{
		{"Reset", KeyReset},
		{"pausetoggle", KeyPauseToggle},
		{"GRAVITYTOGGLE", KeyGravityToggle},
		{"DragToggle", KeyDragToggle},
		{"ThrustToggle", KeyThrustToggle},
		{"ExhaustLeft", KeyExhaustLeft},
		{"ExhaustRight", KeyExhaustRight},
		{"Warp", KeyUnknown},
		{"", KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKey(tt.name); got != tt.expected {
				t.Errorf("ParseKey(%q) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestKey_StringRoundTrip(t *testing.T) {
	for k := KeyReset; k <= KeyExhaustRight; k++ {
		if got := ParseKey(k.String()); got != k {
			t.Errorf("ParseKey(%q) = %v, expected %v", k.String(), got, k)
		}
	}
	if KeyUnknown.String() != "Unknown" {
		t.Errorf("KeyUnknown.String() = %q", KeyUnknown.String())
	}
}

func TestFromTerminal(t *testing.T) {
	tests := []struct {
		line     string
		expected Key
	}{
		{"r", KeyReset},
		{" ", KeyPauseToggle},
		{"p\n", KeyPauseToggle},
		{"G", KeyGravityToggle},
		{"d", KeyDragToggle},
		{"t", KeyThrustToggle},
		{"left", KeyExhaustLeft},
		{"e", KeyExhaustRight},
		{"ExhaustRight", KeyExhaustRight},
		{"x", KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := FromTerminal(tt.line); got != tt.expected {
				t.Errorf("FromTerminal(%q) = %v, expected %v", tt.line, got, tt.expected)
			}
		})
	}
}
