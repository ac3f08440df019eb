package hst

import (
	"fmt"
	"math"
)

// DesignBalances are the five dimensionless coefficients that apportion the
// pumping-group geometry: K1 piston fill of the pitch circle, K2 land share
// of the block face, K3 kidney-to-piston area ratio, K4 shoe pocket pressure
// balance, K5 shoe fill of the pitch circle.
type DesignBalances struct {
	K1 float64
	K2 float64
	K3 float64
	K4 float64
	K5 float64
}

// DefaultDesignBalances returns the reference balance set.
func DefaultDesignBalances() DesignBalances {
	return DesignBalances{K1: 0.75, K2: 0.91, K3: 0.48, K4: 0.93, K5: 0.91}
}

func (b DesignBalances) withDefaults() DesignBalances {
	def := DefaultDesignBalances()
	if b.K1 <= 0 {
		b.K1 = def.K1
	}
	if b.K2 <= 0 {
		b.K2 = def.K2
	}
	if b.K3 <= 0 {
		b.K3 = def.K3
	}
	if b.K4 <= 0 {
		b.K4 = def.K4
	}
	if b.K5 <= 0 {
		b.K5 = def.K5
	}
	return b
}

// Sizes holds the derived pumping-group dimensions. All lengths are in
// metres, areas in square metres.
type Sizes struct {
	PistonDiameter float64
	PistonArea     float64
	PitchDiameter  float64
	Stroke         float64
	Engagement     float64 // minimum piston/bore overlap

	// Valve-plate sealing land radii. The outer land lies outside the kidney
	// slots, the inner land inside; for each land the outer radius exceeds
	// the inner one.
	OuterLandInnerRadius float64
	OuterLandOuterRadius float64
	InnerLandOuterRadius float64
	InnerLandInnerRadius float64

	// Shoe pocket radii.
	ShoeInnerRadius float64
	ShoeOuterRadius float64
}

// ComputeSizes derives the pumping-group geometry from the machine
// configuration and design balances. Displacement enters in cc/rev and is
// converted to cubic metres internally.
func ComputeSizes(cfg MachineConfig, bal DesignBalances) (Sizes, error) {
	if err := cfg.Validate(); err != nil {
		return Sizes{}, err
	}
	bal = bal.withDefaults()

	swash := cfg.SwashAngle * math.Pi / 180
	n := float64(cfg.Pistons)
	vd := cfg.Displacement * 1e-6

	dia := math.Cbrt(4 * vd * bal.K1 / (n * n * math.Tan(swash)))
	area := math.Pi * dia * dia / 4
	pitch := n * dia / (math.Pi * bal.K1)
	stroke := pitch * math.Tan(swash)
	engagement := 1.4 * dia

	// Kidney width from the closed-form circular-segment area solution.
	kidneyArea := bal.K3 * area
	kidneyWidth := 2 * (math.Sqrt(dia*dia+(math.Pi-4)*kidneyArea) - dia) / (math.Pi - 4)
	landWidth := bal.K2*n*area/(math.Pi*pitch) - kidneyWidth

	outerInner := (pitch + kidneyWidth) / 2
	outerOuter := outerInner + landWidth
	innerOuter := (pitch - kidneyWidth) / 2
	innerInner := innerOuter - landWidth

	shoeArea := bal.K4 * area / math.Cos(swash)
	shoeOuter := math.Pi * pitch * bal.K5 / (2 * n)
	shoeInnerSq := shoeOuter*shoeOuter - shoeArea/math.Pi
	if shoeInnerSq <= 0 {
		return Sizes{}, fmt.Errorf("%w: shoe pocket area exceeds outer radius (k4=%g k5=%g)", ErrNumericDomain, bal.K4, bal.K5)
	}
	shoeInner := math.Sqrt(shoeInnerSq)

	s := Sizes{
		PistonDiameter:       dia,
		PistonArea:           area,
		PitchDiameter:        pitch,
		Stroke:               stroke,
		Engagement:           engagement,
		OuterLandInnerRadius: outerInner,
		OuterLandOuterRadius: outerOuter,
		InnerLandOuterRadius: innerOuter,
		InnerLandInnerRadius: innerInner,
		ShoeInnerRadius:      shoeInner,
		ShoeOuterRadius:      shoeOuter,
	}
	if landWidth <= 0 || innerInner <= 0 {
		return Sizes{}, fmt.Errorf("%w: degenerate sealing lands (k2=%g k3=%g)", ErrNumericDomain, bal.K2, bal.K3)
	}
	return s, nil
}
