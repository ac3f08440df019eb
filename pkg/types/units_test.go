package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	assert.Equal(t, 3.0e7, Bar(300).Pascals())
	assert.InDelta(t, 209.4395102, Rpm(2000).RadPerSec(), 1e-6)
	assert.Equal(t, 1e-4, CcPerRev(100).CubicMetres())
	assert.Equal(t, 0.85, Percent(85).Fraction())
}

func TestTorqueFromPower(t *testing.T) {
	// 680 kW at 2025 rpm.
	tq := TorqueFromPower(680, 2025)
	assert.InDelta(t, 680e3/(2025*math.Pi/30), tq, 1e-12)

	// Round trip back through P = T*w.
	assert.InDelta(t, 680.0, tq*Rpm(2025).RadPerSec()/1e3, 1e-12)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "300.0 bar", Bar(300).String())
	assert.Equal(t, "2000 rpm", Rpm(2000).String())
	assert.Equal(t, "100 cc/rev", CcPerRev(100).String())
	assert.Equal(t, "89.73 %", Percent(89.73142876).String())
}
