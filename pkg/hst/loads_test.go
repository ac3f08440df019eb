package hst

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectLoads re-derives the statics independently of the implementation.
func expectLoads(pistons int, swashDeg, area, pd, pc float64) LoadResult {
	high := float64(pistons/2 + 1)
	low := float64(pistons / 2)
	tan := math.Tan(swashDeg * math.Pi / 180)
	hx := high * pd * 1e5 * area / 1e3
	lx := low * pc * 1e5 * area / 1e3
	return LoadResult{
		ShaftRadial: (high*pd + low*pc) * 1e5 * area * tan / 1e3,
		SwashHighX:  hx,
		SwashLowX:   lx,
		SwashHighZ:  hx * tan,
		SwashLowZ:   lx * tan,
	}
}

func TestLoads_Reference(t *testing.T) {
	m := refMachine(t)
	loads, err := m.Loads(300, 25)
	require.NoError(t, err)

	// Spec check: shaft radial = (5*300 + 4*25)*1e5*Ap*tan(18deg)/1e3.
	sizes, err := m.Sizes()
	require.NoError(t, err)
	want := (5*300 + 4*25) * 1e5 * sizes.PistonArea * math.Tan(18*math.Pi/180) / 1e3
	require.InEpsilon(t, want, loads.ShaftRadial, 1e-12)
	require.InEpsilon(t, 20.6804206097, loads.ShaftRadial, 1e-9)

	exp := expectLoads(9, 18, sizes.PistonArea, 300, 25)
	require.InDelta(t, exp.SwashHighX, loads.SwashHighX, 1e-12)
	require.InDelta(t, exp.SwashLowX, loads.SwashLowX, 1e-12)
	require.InDelta(t, exp.SwashHighZ, loads.SwashHighZ, 1e-12)
	require.InDelta(t, exp.SwashLowZ, loads.SwashLowZ, 1e-12)

	t.Logf("shaft=%.2f kN highX=%.2f lowX=%.2f highZ=%.2f lowZ=%.2f",
		loads.ShaftRadial, loads.SwashHighX, loads.SwashLowX, loads.SwashHighZ, loads.SwashLowZ)
}

func TestLoads_PistonCountSplit(t *testing.T) {
	// Odd and even counts put floor(n/2)+1 pistons on the high side.
	for _, pistons := range []int{7, 8, 9, 11} {
		cfg := DefaultMachineConfig(100)
		cfg.Pistons = pistons
		m, err := New(cfg)
		require.NoError(t, err)
		sizes, err := m.Sizes()
		require.NoError(t, err)

		loads, err := m.Loads(300, 25)
		require.NoError(t, err)
		exp := expectLoads(pistons, 18, sizes.PistonArea, 300, 25)
		assert.InDelta(t, exp.ShaftRadial, loads.ShaftRadial, 1e-12, "pistons=%d", pistons)
		assert.InDelta(t, exp.SwashHighX, loads.SwashHighX, 1e-12, "pistons=%d", pistons)
	}
}

func TestLoads_ZeroChargeAndErrors(t *testing.T) {
	m := refMachine(t)

	loads, err := m.Loads(300, 0)
	require.NoError(t, err)
	assert.Zero(t, loads.SwashLowX)
	assert.Zero(t, loads.SwashLowZ)
	assert.Greater(t, loads.SwashHighX, 0.0)

	_, err = m.Loads(-10, 25)
	require.ErrorIs(t, err, ErrInvalidOperatingPoint)
	_, err = m.Loads(300, -1)
	require.ErrorIs(t, err, ErrInvalidOperatingPoint)
}
