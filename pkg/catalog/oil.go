package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hydromech/effmap/pkg/hst"
)

// OilRow is one temperature row of an oil property table.
// Units: Temperature degC, DynamicViscosity mPa*s, KinematicViscosity cSt,
// Density g/cm^3.
type OilRow struct {
	Temperature        float64 `yaml:"temperature"`
	DynamicViscosity   float64 `yaml:"dynamic_viscosity"`
	KinematicViscosity float64 `yaml:"kinematic_viscosity"`
	Density            float64 `yaml:"density"`
}

// OilTable is a read-only, temperature-keyed property table for one oil
// grade. Lookups are exact-key: the efficiency model is evaluated at fixed
// reference temperatures, not along a continuous viscosity curve.
type OilTable struct {
	Grade string
	rows  map[float64]hst.OilPoint
	temps []float64
}

// Builtin SAE grade tables, 0..100 degC in 10 degree steps, after the usual
// published engine-oil property charts.
var builtinOils = map[string][]OilRow{
	"15w40": {
		{0, 1151.8, 1300, 0.886},
		{10, 528.0, 600, 0.880},
		{20, 262.05, 300, 0.8735},
		{30, 147.39, 170, 0.867},
		{40, 90.36, 105, 0.8606},
		{50, 58.07, 68, 0.854},
		{60, 38.99, 46, 0.8476},
		{70, 27.34, 32.5, 0.8412},
		{80, 20.04, 24, 0.8348},
		{90, 14.75, 17.8, 0.8284},
		{100, 11.26, 13.7, 0.822},
	},
	"10w40": {
		{0, 828.4, 950, 0.872},
		{10, 398.1, 460, 0.8655},
		{20, 206.2, 240, 0.859},
		{30, 119.35, 140, 0.8525},
		{40, 74.45, 88, 0.846},
		{50, 49.53, 59, 0.8395},
		{60, 34.15, 41, 0.833},
		{70, 24.38, 29.5, 0.8265},
		{80, 18.04, 22, 0.82},
		{90, 13.75, 16.9, 0.8135},
		{100, 10.65, 13.2, 0.807},
	},
	"5w30": {
		{0, 480.5, 560, 0.858},
		{10, 246.9, 290, 0.8515},
		{20, 135.2, 160, 0.845},
		{30, 82.17, 98, 0.8385},
		{40, 54.91, 66, 0.832},
		{50, 37.15, 45, 0.8255},
		{60, 26.21, 32, 0.819},
		{70, 19.09, 23.5, 0.8125},
		{80, 14.35, 17.8, 0.806},
		{90, 11.03, 13.8, 0.7995},
		{100, 8.64, 10.9, 0.793},
	},
}

// Oil returns the builtin table for a grade (case-insensitive).
func Oil(grade string) (*OilTable, error) {
	key := strings.ToLower(strings.TrimSpace(grade))
	rows, ok := builtinOils[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoOil, grade)
	}
	return newOilTable(key, rows)
}

// OilGrades lists the builtin grades, sorted.
func OilGrades() []string {
	grades := make([]string, 0, len(builtinOils))
	for g := range builtinOils {
		grades = append(grades, g)
	}
	sort.Strings(grades)
	return grades
}

func newOilTable(grade string, rows []OilRow) (*OilTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q has no rows", ErrNoOil, grade)
	}
	t := &OilTable{Grade: grade, rows: make(map[float64]hst.OilPoint, len(rows))}
	for _, r := range rows {
		t.rows[r.Temperature] = hst.OilPoint{
			DynamicViscosity:   r.DynamicViscosity,
			KinematicViscosity: r.KinematicViscosity,
			Density:            r.Density,
		}
		t.temps = append(t.temps, r.Temperature)
	}
	sort.Float64s(t.temps)
	return t, nil
}

// At returns the oil state at an exact table temperature.
func (t *OilTable) At(temperature float64) (hst.OilPoint, error) {
	p, ok := t.rows[temperature]
	if !ok {
		return hst.OilPoint{}, fmt.Errorf("%w: %s at %g C", ErrNoTemperature, t.Grade, temperature)
	}
	return p, nil
}

// Temperatures returns the table's temperature keys in ascending order.
func (t *OilTable) Temperatures() []float64 {
	out := make([]float64, len(t.temps))
	copy(out, t.temps)
	return out
}

type oilFile struct {
	Grade string   `yaml:"grade"`
	Rows  []OilRow `yaml:"rows"`
}

// LoadOilYAML reads a grade table from a YAML file with the shape
//
//	grade: 15w40
//	rows:
//	  - {temperature: 100, dynamic_viscosity: 11.26, kinematic_viscosity: 13.7, density: 0.822}
func LoadOilYAML(path string) (*OilTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read oil table")
	}
	var f oilFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "parse oil table")
	}
	return newOilTable(strings.ToLower(strings.TrimSpace(f.Grade)), f.Rows)
}
