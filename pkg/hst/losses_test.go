package hst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refSizes(t *testing.T) Sizes {
	t.Helper()
	s, err := ComputeSizes(DefaultMachineConfig(100), DesignBalances{})
	require.NoError(t, err)
	return s
}

func TestLeakage_Reference(t *testing.T) {
	s := refSizes(t)
	lc := *DefaultLossCoefficients()

	leak, err := Leakage(s, 9, 11.26, 300, 25, lc)
	require.NoError(t, err)

	// Hand-checked at 11.26 mPa*s, 300/25 bar.
	require.InEpsilon(t, 7.961673646e-05, leak.Block, 1e-8)
	require.InEpsilon(t, 4.206375875e-05, leak.Shoes, 1e-8)
	require.InEpsilon(t, 5.70006235e-04, leak.Pistons, 1e-8)
	require.InEpsilon(t, 6.916867302e-04, leak.Total, 1e-8)
	assert.InDelta(t, leak.Total, leak.Block+leak.Shoes+leak.Pistons, 1e-18)

	t.Logf("block=%.3e shoes=%.3e pistons=%.3e total=%.3e m3/s",
		leak.Block, leak.Shoes, leak.Pistons, leak.Total)
}

func TestLeakage_Scaling(t *testing.T) {
	s := refSizes(t)
	lc := *DefaultLossCoefficients()

	base, err := Leakage(s, 9, 11.26, 300, 25, lc)
	require.NoError(t, err)

	// Linear in mean pressure.
	doubledP, err := Leakage(s, 9, 11.26, 600, 50, lc)
	require.NoError(t, err)
	assert.InEpsilon(t, 2*base.Total, doubledP.Total, 1e-12)

	// Inverse in viscosity.
	doubledMu, err := Leakage(s, 9, 22.52, 300, 25, lc)
	require.NoError(t, err)
	assert.InEpsilon(t, base.Total/2, doubledMu.Total, 1e-12)

	// Cubic in the block clearance.
	wide := lc
	wide.H1 = 2 * lc.H1
	wideGap, err := Leakage(s, 9, 11.26, 300, 25, wide)
	require.NoError(t, err)
	assert.InEpsilon(t, 8*base.Block, wideGap.Block, 1e-12)
	assert.InDelta(t, base.Shoes, wideGap.Shoes, 1e-18)

	// Concentric piston drops the eccentricity factor 1+1.5e^3 from 2.5 to 1.
	conc := lc
	conc.Eccentricity = 0
	concentric, err := Leakage(s, 9, 11.26, 300, 25, conc)
	require.NoError(t, err)
	assert.InEpsilon(t, base.Pistons/2.5, concentric.Pistons, 1e-12)
}

func TestLeakage_BadInputs(t *testing.T) {
	s := refSizes(t)
	lc := *DefaultLossCoefficients()

	_, err := Leakage(s, 9, 0, 300, 25, lc)
	require.ErrorIs(t, err, ErrNumericDomain)

	inverted := s
	inverted.ShoeOuterRadius, inverted.ShoeInnerRadius = s.ShoeInnerRadius, s.ShoeOuterRadius
	_, err = Leakage(inverted, 9, 11.26, 300, 25, lc)
	require.ErrorIs(t, err, ErrNumericDomain)
}
