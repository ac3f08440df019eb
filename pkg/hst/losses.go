package hst

import (
	"fmt"
	"math"
)

// LeakageBreakdown is the internal leakage flow split by clearance path,
// all in m^3/s.
type LeakageBreakdown struct {
	Block   float64 // cylinder block / valve plate lands
	Shoes   float64 // shoe pockets, all pistons
	Pistons float64 // piston/bore annuli, all pistons
	Total   float64
}

// Leakage computes the three parallel clearance flows for the given geometry
// and operating pressures. Viscosity enters in mPa*s, pressures in bar; each
// path scales with clearance cubed and the mean of discharge and charge
// pressure, and inversely with dynamic viscosity.
func Leakage(s Sizes, pistons int, viscosity, pressureDischarge, pressureCharge float64, lc LossCoefficients) (LeakageBreakdown, error) {
	if viscosity <= 0 {
		return LeakageBreakdown{}, fmt.Errorf("%w: dynamic viscosity %g mPa*s", ErrNumericDomain, viscosity)
	}
	if s.OuterLandOuterRadius <= s.OuterLandInnerRadius ||
		s.InnerLandOuterRadius <= s.InnerLandInnerRadius ||
		s.ShoeOuterRadius <= s.ShoeInnerRadius {
		return LeakageBreakdown{}, fmt.Errorf("%w: inverted radial pair in sizes", ErrNumericDomain)
	}

	meanPa := 0.5 * (pressureDischarge*1e5 + pressureCharge*1e5)
	visc := viscosity * 1e-3 // Pa*s
	n := float64(pistons)

	block := math.Pi * lc.H1 * lc.H1 * lc.H1 * meanPa *
		(1/math.Log(s.OuterLandOuterRadius/s.OuterLandInnerRadius) +
			1/math.Log(s.InnerLandOuterRadius/s.InnerLandInnerRadius)) / (6 * visc)

	shoes := n * math.Pi * lc.H2 * lc.H2 * lc.H2 * meanPa /
		(6 * visc * math.Log(s.ShoeOuterRadius/s.ShoeInnerRadius))

	// Each piston sees a different bore overlap as it cycles around the
	// swash plate: eng + h*sin(pi*i/n).
	ecc := 1 + 1.5*lc.Eccentricity*lc.Eccentricity*lc.Eccentricity
	var pist float64
	for i := 0; i < pistons; i++ {
		overlap := s.Engagement + s.Stroke*math.Sin(math.Pi*float64(i)/n)
		pist += n * math.Pi * s.PistonDiameter * lc.H3 * lc.H3 * lc.H3 * meanPa * ecc /
			(12 * visc * overlap)
	}

	return LeakageBreakdown{
		Block:   block,
		Shoes:   shoes,
		Pistons: pist,
		Total:   block + shoes + pist,
	}, nil
}
