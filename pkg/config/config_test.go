package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig_ReferenceScenario(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Rockets) != 2 || len(cfg.IFOs) != 1 {
		t.Fatalf("expected 2 rockets and 1 ifo, got %d and %d", len(cfg.Rockets), len(cfg.IFOs))
	}
	r := cfg.Rockets[0]
	if r.Mass != 0.2 || r.ExhaustVelocityY != 650 || r.MassFlowRate != 0.01 || r.ThrustCutoffTime != 4.5 || !r.ThrustEnabled {
		t.Errorf("unexpected default rocket %+v", r)
	}
	if cfg.Rockets[1].X != 100 {
		t.Errorf("second rocket X = %f, expected 100", cfg.Rockets[1].X)
	}
	f := cfg.IFOs[0]
	if f.X != -100 || f.VelocityX != 100 || f.VelocityY != 100 || f.Mass != 1 {
		t.Errorf("unexpected default ifo %+v", f)
	}
	if cfg.Physics.TimeStep != 0.01 || !cfg.Physics.Gravity || !cfg.Physics.Drag {
		t.Errorf("unexpected physics defaults %+v", cfg.Physics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Physics != def.Physics || cfg.Viewport != def.Viewport {
		t.Errorf("physics/viewport = %+v %+v, expected %+v %+v", cfg.Physics, cfg.Viewport, def.Physics, def.Viewport)
	}
	if len(cfg.Rockets) != 2 || len(cfg.IFOs) != 1 {
		t.Errorf("expected default vehicles, got %d rockets %d ifos", len(cfg.Rockets), len(cfg.IFOs))
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
  "physics": {"timeStep": 0.02, "drag": false},
  "rockets": [
    {"name": "solo", "x": 5, "mass": 0.5, "exhaustVelocityY": 800, "massFlowRate": 0.02, "thrustCutoffTime": 3, "thrustEnabled": true}
  ]
}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Physics.TimeStep != 0.02 {
		t.Errorf("TimeStep = %f, expected 0.02", cfg.Physics.TimeStep)
	}
	if cfg.Physics.Drag {
		t.Error("Drag should be disabled by the file")
	}
	if !cfg.Physics.Gravity {
		t.Error("Gravity default lost")
	}
	if cfg.Viewport.Width != 640 {
		t.Errorf("Viewport.Width = %f, expected default 640", cfg.Viewport.Width)
	}
	if len(cfg.Rockets) != 1 || cfg.Rockets[0].Name != "solo" || cfg.Rockets[0].ExhaustVelocityY != 800 {
		t.Errorf("unexpected rockets %+v", cfg.Rockets)
	}
	if len(cfg.IFOs) != 0 {
		t.Errorf("file listed vehicles, default IFOs should not be added: %+v", cfg.IFOs)
	}
}

func TestLoadConfig_FillsMissingNames(t *testing.T) {
	path := writeConfig(t, `{
  "rockets": [{"mass": 0.2}, {"name": "  booster  ", "mass": 0.2}],
  "ifos": [{"mass": 1}]
}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	got := []string{cfg.Rockets[0].Name, cfg.Rockets[1].Name, cfg.IFOs[0].Name}
	expected := []string{"rocket-1", "booster", "ifo-1"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("name %d = %q, expected %q", i, got[i], expected[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("filled config should validate: %v", err)
	}
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("ROCKETSIM_PHYSICS_TIMESTEP", "0.005")
	t.Setenv("ROCKETSIM_PHYSICS_GRAVITY", "false")
	t.Setenv("ROCKETSIM_VIEWPORT_WIDTH", "1024")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Physics.TimeStep != 0.005 {
		t.Errorf("TimeStep = %f, expected 0.005", cfg.Physics.TimeStep)
	}
	if cfg.Physics.Gravity {
		t.Error("Gravity should be disabled by the environment")
	}
	if cfg.Viewport.Width != 1024 {
		t.Errorf("Viewport.Width = %f, expected 1024", cfg.Viewport.Width)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
	t.Run("malformed_json", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, `{"physics": `)); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")
	cfg := DefaultConfig()
	cfg.Physics.TimeStep = 0.004
	cfg.IFOs = nil

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if loaded.Physics.TimeStep != 0.004 {
		t.Errorf("TimeStep = %f, expected 0.004", loaded.Physics.TimeStep)
	}
	if len(loaded.Rockets) != 2 || loaded.Rockets[1].X != 100 {
		t.Errorf("rockets not preserved: %+v", loaded.Rockets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SimulationConfig)
		wantErr bool
	}{
		{"valid", func(c *SimulationConfig) {}, false},
		{"zero_time_step", func(c *SimulationConfig) { c.Physics.TimeStep = 0 }, true},
		{"negative_frame_cap", func(c *SimulationConfig) { c.Physics.MaxFrameDelta = -1 }, true},
		{"zero_viewport", func(c *SimulationConfig) { c.Viewport.Height = 0 }, true},
		{"no_vehicles", func(c *SimulationConfig) { c.Rockets, c.IFOs = nil, nil }, true},
		{"rocket_zero_mass", func(c *SimulationConfig) { c.Rockets[0].Mass = 0 }, true},
		{"rocket_negative_flow", func(c *SimulationConfig) { c.Rockets[1].MassFlowRate = -0.1 }, true},
		{"rocket_negative_cutoff", func(c *SimulationConfig) { c.Rockets[0].ThrustCutoffTime = -1 }, true},
		{"ifo_negative_drag", func(c *SimulationConfig) { c.IFOs[0].DragCoefficient = -1 }, true},
		{"ifo_zero_mass", func(c *SimulationConfig) { c.IFOs[0].Mass = 0 }, true},
		{"only_ifos", func(c *SimulationConfig) { c.Rockets = nil }, false},
		{"empty_name", func(c *SimulationConfig) { c.Rockets[0].Name = "" }, true},
		{"name_with_comma", func(c *SimulationConfig) { c.IFOs[0].Name = "ifo,1" }, true},
		{"duplicate_names", func(c *SimulationConfig) { c.IFOs[0].Name = "rocket-1" }, true},
		{"nan_mass", func(c *SimulationConfig) { c.Rockets[0].Mass = math.NaN() }, true},
		{"infinite_velocity", func(c *SimulationConfig) { c.IFOs[0].VelocityY = math.Inf(1) }, true},
		{"nan_time_step", func(c *SimulationConfig) { c.Physics.TimeStep = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_ErrorOrderIsStable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rockets[0].X = math.NaN()
	cfg.Rockets[0].Mass = math.Inf(1)
	cfg.Rockets[0].ThrustCutoffTime = math.NaN()

	first := cfg.Validate()
	if first == nil {
		t.Fatal("expected errors for non-finite values")
	}
	for i := 0; i < 20; i++ {
		if err := cfg.Validate(); err.Error() != first.Error() {
			t.Fatalf("error text changed between runs:\n%v\n---\n%v", first, err)
		}
	}

	msg := first.Error()
	x := strings.Index(msg, "rockets[0].x ")
	mass := strings.Index(msg, "rockets[0].mass ")
	cutoff := strings.Index(msg, "rockets[0].thrustCutoffTime ")
	if x < 0 || mass < 0 || cutoff < 0 {
		t.Fatalf("missing field names in %q", msg)
	}
	if !(x < mass && mass < cutoff) {
		t.Errorf("errors not in field order: %q", msg)
	}
}
