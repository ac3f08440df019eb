package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOil_BuiltinGrades(t *testing.T) {
	require.Equal(t, []string{"10w40", "15w40", "5w30"}, OilGrades())

	oil, err := Oil("15W40") // case-insensitive
	require.NoError(t, err)
	require.Equal(t, "15w40", oil.Grade)

	p, err := oil.At(100)
	require.NoError(t, err)
	assert.InDelta(t, 11.26, p.DynamicViscosity, 1e-12)
	assert.InDelta(t, 13.7, p.KinematicViscosity, 1e-12)
	assert.InDelta(t, 0.822, p.Density, 1e-12)

	// Dynamic viscosity is consistent with kinematic * density throughout.
	for _, temp := range oil.Temperatures() {
		p, err := oil.At(temp)
		require.NoError(t, err)
		assert.InEpsilon(t, p.KinematicViscosity*p.Density, p.DynamicViscosity, 5e-3,
			"grade %s at %g C", oil.Grade, temp)
	}

	// Viscosity falls monotonically with temperature.
	temps := oil.Temperatures()
	for i := 1; i < len(temps); i++ {
		hot, _ := oil.At(temps[i])
		cold, _ := oil.At(temps[i-1])
		assert.Less(t, hot.DynamicViscosity, cold.DynamicViscosity, "at %g C", temps[i])
	}
}

func TestOil_Lookups(t *testing.T) {
	_, err := Oil("80w90")
	require.ErrorIs(t, err, ErrNoOil)

	oil, err := Oil("5w30")
	require.NoError(t, err)
	_, err = oil.At(55)
	require.ErrorIs(t, err, ErrNoTemperature)
}

func TestOil_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oil.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grade: TEST32
rows:
  - {temperature: 40, dynamic_viscosity: 27.8, kinematic_viscosity: 32.0, density: 0.869}
  - {temperature: 100, dynamic_viscosity: 4.5, kinematic_viscosity: 5.4, density: 0.832}
`), 0o644))

	oil, err := LoadOilYAML(path)
	require.NoError(t, err)
	require.Equal(t, "test32", oil.Grade)
	require.Equal(t, []float64{40, 100}, oil.Temperatures())

	p, err := oil.At(40)
	require.NoError(t, err)
	assert.InDelta(t, 27.8, p.DynamicViscosity, 1e-12)

	_, err = oil.At(60)
	require.ErrorIs(t, err, ErrNoTemperature)
}

func TestOil_YAMLBadFile(t *testing.T) {
	_, err := LoadOilYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grade: x\nrows: []\n"), 0o644))
	_, err = LoadOilYAML(path)
	require.ErrorIs(t, err, ErrNoOil)
}

func TestEngine_Builtin(t *testing.T) {
	require.Equal(t, []string{"engine_1", "engine_2"}, EngineNames())

	for _, name := range EngineNames() {
		c, err := Engine(name)
		require.NoError(t, err)
		require.NoError(t, c.Validate())

		// Power column is consistent with torque and speed: P = T*w.
		for i := range c.Speeds {
			want := c.Torques[i] * c.Speeds[i] * math.Pi / 30 * 1e-3
			assert.InDelta(t, want, c.Powers[i], 0.05, "%s point %d", name, i)
		}
	}

	c, err := Engine("engine_1")
	require.NoError(t, err)
	assert.Equal(t, 2700.0, c.PivotSpeed)
	assert.Len(t, c.Speeds, 21)

	_, err = Engine("engine_9")
	require.ErrorIs(t, err, ErrNoEngine)
}

func TestEngine_Validate(t *testing.T) {
	bad := &EngineCurve{
		Name:       "bad",
		Speeds:     []float64{1000, 2000},
		Torques:    []float64{500},
		Powers:     []float64{52.4, 104.7},
		PivotSpeed: 1500,
	}
	require.ErrorIs(t, bad.Validate(), ErrBadCurve)

	pivotOut := &EngineCurve{
		Name:       "pivot",
		Speeds:     []float64{1000, 2000},
		Torques:    []float64{500, 400},
		Powers:     []float64{52.4, 83.8},
		PivotSpeed: 2500,
	}
	require.ErrorIs(t, pivotOut.Validate(), ErrBadCurve)
}

func TestEngine_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: bench_dyno
speeds: [1000, 1500, 2000]
torques: [800, 900, 850]
powers: [83.8, 141.4, 178.0]
pivot_speed: 1500
`), 0o644))

	c, err := LoadEngineYAML(path)
	require.NoError(t, err)
	require.Equal(t, "bench_dyno", c.Name)
	assert.Equal(t, 1500.0, c.PivotSpeed)

	// Pivot outside the speed range is rejected at load time.
	require.NoError(t, os.WriteFile(path, []byte(`
name: bad
speeds: [1000, 1500]
torques: [800, 900]
powers: [83.8, 141.4]
pivot_speed: 400
`), 0o644))
	_, err = LoadEngineYAML(path)
	require.ErrorIs(t, err, ErrBadCurve)
}
