// pkg/physics/atmosphere.go
package physics

import "math"

// Reference constants for the Earth atmosphere model. Radii are in meters
// measured from the planet center.
const (
	EarthSeaRadius       = 6378137.0
	EarthGravityConstant = 3.98584628e14

	// SurfaceRadius is the radius of the simulated ground line.
	SurfaceRadius      = EarthSeaRadius
	SurfaceTemperature = 288.15 // K
	LapseRate          = 0.0065 // K/m

	SeaLevelPressure    = 101325.0 // Pa
	SpecificGasConstant = 287.05   // J/(kg·K), dry air

	pressureGravityScale = 289510.047
	pressureExponent     = 3.50057557
)

// GravitationalAcceleration returns the magnitude of gravity at the given
// radius from the Earth center.
func GravitationalAcceleration(radius float64) float64 {
	return EarthGravityConstant / (radius * radius)
}

// Temperature returns the air temperature in kelvin at an altitude above the
// simulated surface.
func Temperature(altitude float64) float64 {
	return SurfaceTemperature - LapseRate*(altitude+SurfaceRadius-EarthSeaRadius)
}

// Pressure returns the barometric air pressure in pascal at the given radius.
// The approximation is only defined while its base is non-negative; below that
// the pressure is clamped to zero.
func Pressure(radius float64) float64 {
	base := 1 - GravitationalAcceleration(radius)/pressureGravityScale
	if base <= 0 {
		return 0
	}
	return SeaLevelPressure * math.Pow(base, pressureExponent)
}

// AirDensity returns the air density in kg/m³ for a radius and temperature.
// Non-positive temperatures yield zero density.
func AirDensity(radius, temperature float64) float64 {
	if temperature <= 0 {
		return 0
	}
	return Pressure(radius) / (SpecificGasConstant * temperature)
}

// DensityAtAltitude combines Temperature and AirDensity for an altitude above
// the simulated surface.
func DensityAtAltitude(altitude float64) float64 {
	return AirDensity(altitude+SurfaceRadius, Temperature(altitude))
}
