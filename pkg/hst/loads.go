package hst

import (
	"fmt"
	"math"
)

// LoadResult holds the steady-state pressure-induced structural loads, in kN.
// X is along the shaft axis, Z normal to it in the swash tilt plane.
type LoadResult struct {
	ShaftRadial float64
	SwashHighX  float64
	SwashLowX   float64
	SwashHighZ  float64
	SwashLowZ   float64
}

// Loads computes the shaft radial load and the swash-plate high/low side
// forces at the given pressures (bar). At any instant n/2+1 pistons face the
// discharge side and n/2 the charge side.
func (m *Machine) Loads(pressureDischarge, pressureCharge float64) (LoadResult, error) {
	if pressureDischarge < 0 || pressureCharge < 0 {
		return LoadResult{}, fmt.Errorf("%w: negative pressure (discharge %g, charge %g bar)",
			ErrInvalidOperatingPoint, pressureDischarge, pressureCharge)
	}
	sizes, err := m.Sizes()
	if err != nil {
		return LoadResult{}, err
	}

	high := float64(m.cfg.Pistons/2 + 1)
	low := float64(m.cfg.Pistons / 2)
	tanSwash := math.Tan(m.cfg.SwashAngle * math.Pi / 180)
	area := sizes.PistonArea

	shaft := (high*pressureDischarge + low*pressureCharge) * 1e5 * area * tanSwash / 1e3
	highX := high * pressureDischarge * 1e5 * area / 1e3
	lowX := low * pressureCharge * 1e5 * area / 1e3

	return LoadResult{
		ShaftRadial: shaft,
		SwashHighX:  highX,
		SwashLowX:   lowX,
		SwashHighZ:  highX * tanSwash,
		SwashLowZ:   lowX * tanSwash,
	}, nil
}
