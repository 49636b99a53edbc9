// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: -2}), Vector2D{X: 4, Y: 2}},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(0.5), Vector2D{X: 1.5, Y: -2}},
		{"scale_zero", Vector2D{X: 3, Y: -4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	if l := (Vector2D{X: 3, Y: 4}).Length(); math.Abs(l-5) > 1e-12 {
		t.Errorf("Length() = %f, expected 5", l)
	}
	if l := (Vector2D{}).Length(); l != 0 {
		t.Errorf("Length() of zero vector = %f", l)
	}
}
