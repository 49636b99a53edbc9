package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestGravitationalAcceleration_SeaLevel(t *testing.T) {
	g := GravitationalAcceleration(EarthSeaRadius)
	if !scalar.EqualWithinAbs(g, 9.798, 1e-3) {
		t.Errorf("GravitationalAcceleration(sea) = %f, expected ~9.798", g)
	}

	// Inverse square: doubling the radius quarters gravity.
	if g2 := GravitationalAcceleration(2 * EarthSeaRadius); !scalar.EqualWithinAbs(g2*4, g, 1e-12) {
		t.Errorf("expected inverse square falloff, got %f vs %f", g2*4, g)
	}
}

func TestTemperature(t *testing.T) {
	tests := []struct {
		name     string
		altitude float64
		expected float64
	}{
		{"surface", 0, 288.15},
		{"one_km", 1000, 281.65},
		{"below_surface", -100, 288.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Temperature(tt.altitude); !scalar.EqualWithinAbs(got, tt.expected, 1e-9) {
				t.Errorf("Temperature(%f) = %f, expected %f", tt.altitude, got, tt.expected)
			}
		})
	}
}

func TestPressure(t *testing.T) {
	t.Run("sea_level", func(t *testing.T) {
		p := Pressure(EarthSeaRadius)
		if p <= 101300 || p > SeaLevelPressure {
			t.Errorf("Pressure(sea) = %f, expected just under %f", p, SeaLevelPressure)
		}
	})

	t.Run("matches_formula", func(t *testing.T) {
		for _, radius := range []float64{EarthSeaRadius, EarthSeaRadius + 1000} {
			g := 3.98584628e14 / (radius * radius)
			expected := 101325 * math.Pow(1-g/289510.047, 3.50057557)
			if got := Pressure(radius); !scalar.EqualWithinAbs(got, expected, 1e-6) {
				t.Errorf("Pressure(%f) = %f, expected %f", radius, got, expected)
			}
		}
	})

	// g falls with radius, so the base of the approximation and the
	// pressure grow with it.
	t.Run("increases_with_radius", func(t *testing.T) {
		if Pressure(EarthSeaRadius+1000) <= Pressure(EarthSeaRadius) {
			t.Error("pressure should grow with radius")
		}
	})

	t.Run("negative_base_clamped", func(t *testing.T) {
		p := Pressure(1000)
		if p != 0 || math.IsNaN(p) {
			t.Errorf("Pressure(1000) = %f, expected 0", p)
		}
	})
}

func TestAirDensity(t *testing.T) {
	t.Run("sea_level", func(t *testing.T) {
		rho := DensityAtAltitude(0)
		if !scalar.EqualWithinAbs(rho, 1.225, 1e-3) {
			t.Errorf("DensityAtAltitude(0) = %f, expected ~1.225", rho)
		}
	})

	t.Run("non_positive_temperature", func(t *testing.T) {
		if rho := AirDensity(EarthSeaRadius, 0); rho != 0 {
			t.Errorf("AirDensity at 0 K = %f, expected 0", rho)
		}
		// Above ~44 km the linear lapse rate drives temperature negative.
		if rho := DensityAtAltitude(50000); rho != 0 {
			t.Errorf("DensityAtAltitude(50000) = %f, expected 0", rho)
		}
	})

	t.Run("clamped_pressure", func(t *testing.T) {
		if rho := AirDensity(1000, 288.15); rho != 0 {
			t.Errorf("AirDensity with clamped pressure = %f, expected 0", rho)
		}
	})
}
