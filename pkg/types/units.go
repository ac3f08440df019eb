package types

import (
	"fmt"
	"math"
)

// Bar is a pressure in bar.
type Bar float64

// Pascals returns the pressure in Pa.
func (b Bar) Pascals() float64 { return float64(b) * 1e5 }

func (b Bar) String() string { return fmt.Sprintf("%.1f bar", float64(b)) }

// Rpm is a rotational speed in revolutions per minute.
type Rpm float64

// RadPerSec returns the speed in rad/s.
func (r Rpm) RadPerSec() float64 { return float64(r) * math.Pi / 30 }

func (r Rpm) String() string { return fmt.Sprintf("%.0f rpm", float64(r)) }

// CcPerRev is a machine displacement in cubic centimetres per revolution.
type CcPerRev float64

// CubicMetres returns the displacement in m^3/rev.
func (v CcPerRev) CubicMetres() float64 { return float64(v) * 1e-6 }

func (v CcPerRev) String() string { return fmt.Sprintf("%.0f cc/rev", float64(v)) }

// Percent is an efficiency or ratio in per cent.
type Percent float64

// Fraction returns the value as a 0..1 fraction.
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) String() string { return fmt.Sprintf("%.2f %%", float64(p)) }

// TorqueFromPower converts power (kW) at a speed (rpm) to torque (Nm).
func TorqueFromPower(powerKW float64, speed Rpm) float64 {
	return powerKW * 1e3 / speed.RadPerSec()
}
