// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-rocketsim/pkg/validation"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// ROCKETSIM_PHYSICS_TIMESTEP=0.005.
const EnvPrefix = "ROCKETSIM"

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("invalid configuration")

// SimulationConfig describes one simulation run
type SimulationConfig struct {
	Physics   PhysicsConfig   `json:"physics" mapstructure:"physics"`
	Viewport  ViewportConfig  `json:"viewport" mapstructure:"viewport"`
	Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
	Rockets   []RocketConfig  `json:"rockets" mapstructure:"rockets"`
	IFOs      []IFOConfig     `json:"ifos" mapstructure:"ifos"`
}

// PhysicsConfig contains stepping and global toggle settings
type PhysicsConfig struct {
	TimeStep      float64 `json:"timeStep" mapstructure:"timeStep"`           // fixed tick length, seconds
	MaxFrameDelta float64 `json:"maxFrameDelta" mapstructure:"maxFrameDelta"` // cap on wall-clock ticks, 0 disables
	Gravity       bool    `json:"gravity" mapstructure:"gravity"`
	Drag          bool    `json:"drag" mapstructure:"drag"`
	StartPaused   bool    `json:"startPaused" mapstructure:"startPaused"`
}

// ViewportConfig is the initial window size
type ViewportConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// TelemetryConfig controls the trajectory CSV output
type TelemetryConfig struct {
	TrajectoryPath string `json:"trajectoryPath" mapstructure:"trajectoryPath"`
	SampleEvery    int    `json:"sampleEvery" mapstructure:"sampleEvery"`
}

// RocketConfig contains the launch constants of a rocket
type RocketConfig struct {
	Name             string  `json:"name" mapstructure:"name"`
	X                float64 `json:"x" mapstructure:"x"`
	Y                float64 `json:"y" mapstructure:"y"`
	Mass             float64 `json:"mass" mapstructure:"mass"`
	DragCoefficient  float64 `json:"dragCoefficient" mapstructure:"dragCoefficient"`
	CrossSection     float64 `json:"crossSection" mapstructure:"crossSection"`
	ExhaustVelocityX float64 `json:"exhaustVelocityX" mapstructure:"exhaustVelocityX"`
	ExhaustVelocityY float64 `json:"exhaustVelocityY" mapstructure:"exhaustVelocityY"`
	MassFlowRate     float64 `json:"massFlowRate" mapstructure:"massFlowRate"`
	ThrustCutoffTime float64 `json:"thrustCutoffTime" mapstructure:"thrustCutoffTime"`
	ThrustEnabled    bool    `json:"thrustEnabled" mapstructure:"thrustEnabled"`
}

// IFOConfig contains the launch constants of an unpowered body
type IFOConfig struct {
	Name            string  `json:"name" mapstructure:"name"`
	X               float64 `json:"x" mapstructure:"x"`
	Y               float64 `json:"y" mapstructure:"y"`
	VelocityX       float64 `json:"velocityX" mapstructure:"velocityX"`
	VelocityY       float64 `json:"velocityY" mapstructure:"velocityY"`
	Mass            float64 `json:"mass" mapstructure:"mass"`
	DragCoefficient float64 `json:"dragCoefficient" mapstructure:"dragCoefficient"`
	CrossSection    float64 `json:"crossSection" mapstructure:"crossSection"`
}

// DefaultConfig returns the reference scenario: two model rockets side by
// side and one IFO lobbed from the left.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Physics: PhysicsConfig{
			TimeStep:      0.01,
			MaxFrameDelta: 0.1,
			Gravity:       true,
			Drag:          true,
		},
		Viewport: ViewportConfig{
			Width:  640,
			Height: 480,
		},
		Telemetry: TelemetryConfig{
			SampleEvery: 1,
		},
		Rockets: []RocketConfig{
			defaultRocket("rocket-1", 0),
			defaultRocket("rocket-2", 100),
		},
		IFOs: []IFOConfig{
			{
				Name:            "ifo-1",
				X:               -100,
				Y:               0,
				VelocityX:       100,
				VelocityY:       100,
				Mass:            1.0,
				DragCoefficient: 1.0,
				CrossSection:    0.01,
			},
		},
	}
}

func defaultRocket(name string, x float64) RocketConfig {
	return RocketConfig{
		Name:             name,
		X:                x,
		Y:                0,
		Mass:             0.2,
		DragCoefficient:  0.1,
		CrossSection:     0.01,
		ExhaustVelocityX: 0,
		ExhaustVelocityY: 650,
		MassFlowRate:     0.01,
		ThrustCutoffTime: 4.5,
		ThrustEnabled:    true,
	}
}

// setDefaults registers every scalar key so environment overrides apply even
// when no config file is present.
func setDefaults(v *viper.Viper, d *SimulationConfig) {
	v.SetDefault("physics.timeStep", d.Physics.TimeStep)
	v.SetDefault("physics.maxFrameDelta", d.Physics.MaxFrameDelta)
	v.SetDefault("physics.gravity", d.Physics.Gravity)
	v.SetDefault("physics.drag", d.Physics.Drag)
	v.SetDefault("physics.startPaused", d.Physics.StartPaused)

	v.SetDefault("viewport.width", d.Viewport.Width)
	v.SetDefault("viewport.height", d.Viewport.Height)

	v.SetDefault("telemetry.trajectoryPath", d.Telemetry.TrajectoryPath)
	v.SetDefault("telemetry.sampleEvery", d.Telemetry.SampleEvery)
}

// LoadConfig reads a JSON configuration file, applies ROCKETSIM_* environment
// overrides and fills in defaults. An empty path loads defaults and
// environment only. When the file lists neither rockets nor ifos the
// reference scenario's vehicles are used.
func LoadConfig(path string) (*SimulationConfig, error) {
	defaults := DefaultConfig()

	v := viper.New()
	setDefaults(v, defaults)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg SimulationConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !v.InConfig("rockets") && !v.InConfig("ifos") {
		cfg.Rockets = defaults.Rockets
		cfg.IFOs = defaults.IFOs
	}
	cfg.fillNames()

	return &cfg, nil
}

// fillNames trims vehicle names and names unnamed vehicles after their
// position in the file, e.g. rocket-2.
func (c *SimulationConfig) fillNames() {
	for i := range c.Rockets {
		c.Rockets[i].Name = strings.TrimSpace(c.Rockets[i].Name)
		if c.Rockets[i].Name == "" {
			c.Rockets[i].Name = fmt.Sprintf("rocket-%d", i+1)
		}
	}
	for i := range c.IFOs {
		c.IFOs[i].Name = strings.TrimSpace(c.IFOs[i].Name)
		if c.IFOs[i].Name == "" {
			c.IFOs[i].Name = fmt.Sprintf("ifo-%d", i+1)
		}
	}
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// field is a named numeric value checked by Validate
type field struct {
	name  string
	value float64
}

// Validate checks that every value is physically meaningful
func (c *SimulationConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	wrap := func(err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}
	finite := func(prefix string, fields []field) {
		for _, f := range fields {
			wrap(validation.ValidateFinite(prefix+f.name, f.value))
		}
	}
	names := make([]string, 0, len(c.Rockets)+len(c.IFOs))
	checkName := func(prefix, name string) {
		trimmed, err := validation.ValidateVehicleName(name)
		if err != nil {
			wrap(fmt.Errorf("%sname: %w", prefix, err))
			return
		}
		names = append(names, trimmed)
	}

	finite("physics.", []field{
		{"timeStep", c.Physics.TimeStep},
		{"maxFrameDelta", c.Physics.MaxFrameDelta},
	})
	finite("viewport.", []field{
		{"width", c.Viewport.Width},
		{"height", c.Viewport.Height},
	})

	if c.Physics.TimeStep <= 0 {
		invalid("physics.timeStep must be positive, got %g", c.Physics.TimeStep)
	}
	if c.Physics.MaxFrameDelta < 0 {
		invalid("physics.maxFrameDelta must not be negative, got %g", c.Physics.MaxFrameDelta)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		invalid("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Telemetry.SampleEvery < 0 {
		invalid("telemetry.sampleEvery must not be negative, got %d", c.Telemetry.SampleEvery)
	}
	if len(c.Rockets)+len(c.IFOs) == 0 {
		invalid("at least one rocket or ifo is required")
	}

	for i, r := range c.Rockets {
		prefix := fmt.Sprintf("rockets[%d].", i)
		checkName(prefix, r.Name)
		finite(prefix, []field{
			{"x", r.X},
			{"y", r.Y},
			{"mass", r.Mass},
			{"dragCoefficient", r.DragCoefficient},
			{"crossSection", r.CrossSection},
			{"exhaustVelocityX", r.ExhaustVelocityX},
			{"exhaustVelocityY", r.ExhaustVelocityY},
			{"massFlowRate", r.MassFlowRate},
			{"thrustCutoffTime", r.ThrustCutoffTime},
		})
		if r.Mass <= 0 {
			invalid("rockets[%d].mass must be positive, got %g", i, r.Mass)
		}
		if r.MassFlowRate < 0 {
			invalid("rockets[%d].massFlowRate must not be negative, got %g", i, r.MassFlowRate)
		}
		if r.ThrustCutoffTime < 0 {
			invalid("rockets[%d].thrustCutoffTime must not be negative, got %g", i, r.ThrustCutoffTime)
		}
		if r.DragCoefficient < 0 || r.CrossSection < 0 {
			invalid("rockets[%d] drag coefficient and cross section must not be negative", i)
		}
	}
	for i, f := range c.IFOs {
		prefix := fmt.Sprintf("ifos[%d].", i)
		checkName(prefix, f.Name)
		finite(prefix, []field{
			{"x", f.X},
			{"y", f.Y},
			{"velocityX", f.VelocityX},
			{"velocityY", f.VelocityY},
			{"mass", f.Mass},
			{"dragCoefficient", f.DragCoefficient},
			{"crossSection", f.CrossSection},
		})
		if f.Mass <= 0 {
			invalid("ifos[%d].mass must be positive, got %g", i, f.Mass)
		}
		if f.DragCoefficient < 0 || f.CrossSection < 0 {
			invalid("ifos[%d] drag coefficient and cross section must not be negative", i)
		}
	}
	wrap(validation.ValidateUniqueNames(names))

	return errors.Join(errs...)
}
