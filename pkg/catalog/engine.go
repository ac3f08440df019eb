package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EngineCurve is a static engine performance curve: speed in rpm, torque in
// Nm, power in kW, all arrays of equal length, plus the pivot speed at which
// the torque curve changes limiting regime.
type EngineCurve struct {
	Name       string    `yaml:"name"`
	Speeds     []float64 `yaml:"speeds"`
	Torques    []float64 `yaml:"torques"`
	Powers     []float64 `yaml:"powers"`
	PivotSpeed float64   `yaml:"pivot_speed"`
}

var builtinEngines = map[string]*EngineCurve{
	"engine_1": {
		Name:   "engine_1",
		Speeds: []float64{1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300, 2400, 2500, 2600, 2700, 2800, 2900, 3000},
		Torques: []float64{1350, 1450, 1550, 1650, 1800, 1975, 2200, 2450, 2750, 3100, 3100,
			3100, 3100, 3022, 2944, 2849, 2757, 2654, 2200, 1800, 0},
		Powers: []float64{141.372, 167.028, 194.779, 224.624, 263.894, 310.232, 368.614, 436.158, 518.363, 616.799, 649.262,
			681.726, 714.189, 727.865, 739.908, 745.866, 750.652, 750.401, 645.074, 546.637, 0},
		PivotSpeed: 2700,
	},
	"engine_2": {
		Name:   "engine_2",
		Speeds: []float64{600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300, 2400},
		Torques: []float64{1000, 1100, 1450, 1750, 2100, 2400, 2600, 2950, 3100, 3300,
			3400, 3500, 3400, 3300, 3200, 3000, 2800, 2600, 0},
		Powers: []float64{62.8319, 80.634, 121.475, 164.934, 219.911, 276.46, 326.726, 401.6, 454.484, 518.363,
			569.675, 623.083, 640.885, 656.593, 670.206, 659.734, 645.074, 626.224, 0},
		PivotSpeed: 2200,
	},
}

// Engine returns the builtin curve for a name (case-insensitive).
func Engine(name string) (*EngineCurve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	c, ok := builtinEngines[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEngine, name)
	}
	cp := *c
	return &cp, nil
}

// EngineNames lists the builtin engines, sorted.
func EngineNames() []string {
	names := make([]string, 0, len(builtinEngines))
	for n := range builtinEngines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks array lengths and pivot speed placement.
func (c *EngineCurve) Validate() error {
	if len(c.Speeds) < 2 || len(c.Torques) != len(c.Speeds) || len(c.Powers) != len(c.Speeds) {
		return fmt.Errorf("%w: %s has %d/%d/%d speed/torque/power points",
			ErrBadCurve, c.Name, len(c.Speeds), len(c.Torques), len(c.Powers))
	}
	if c.PivotSpeed < c.Speeds[0] || c.PivotSpeed > c.Speeds[len(c.Speeds)-1] {
		return fmt.Errorf("%w: %s pivot speed %g rpm outside [%g, %g]",
			ErrBadCurve, c.Name, c.PivotSpeed, c.Speeds[0], c.Speeds[len(c.Speeds)-1])
	}
	return nil
}

// LoadEngineYAML reads an engine curve from a YAML file.
func LoadEngineYAML(path string) (*EngineCurve, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read engine curve")
	}
	var c EngineCurve
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrap(err, "parse engine curve")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
