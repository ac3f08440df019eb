package hst

import "fmt"

// BulkModulusBar is the oil bulk modulus in bar, treated as grade-independent
// in this model.
const BulkModulusBar = 15000.0

// MachineConfig describes one axial-piston machine family. Units:
//   - Displacement: cc/rev
//   - SwashAngle: degrees, in (0, 90)
//   - OilTemp: degrees Celsius
//   - MaxPowerInput: kW
type MachineConfig struct {
	Displacement   float64
	SwashAngle     float64
	Pistons        int
	OilGrade       string
	OilTemp        float64
	InputGearRatio float64
	MaxPowerInput  float64
}

// DefaultMachineConfig returns a config for the given displacement with the
// customary defaults: 18 degree swash, 9 pistons, 15w40 oil at 100 C, a 0.75
// reduction gear train and 680 kW transmitted power.
func DefaultMachineConfig(displacement float64) MachineConfig {
	return MachineConfig{
		Displacement:   displacement,
		SwashAngle:     18,
		Pistons:        9,
		OilGrade:       "15w40",
		OilTemp:        100,
		InputGearRatio: 0.75,
		MaxPowerInput:  680,
	}
}

// Validate reports whether the configuration describes a buildable machine.
func (c MachineConfig) Validate() error {
	if c.Displacement <= 0 {
		return fmt.Errorf("%w: displacement %g cc/rev", ErrInvalidConfiguration, c.Displacement)
	}
	if c.SwashAngle <= 0 || c.SwashAngle >= 90 {
		return fmt.Errorf("%w: swash angle %g deg", ErrInvalidConfiguration, c.SwashAngle)
	}
	if c.Pistons < 3 {
		return fmt.Errorf("%w: %d pistons", ErrInvalidConfiguration, c.Pistons)
	}
	return nil
}

// LossCoefficients is the named set of semi-empirical tuning constants of the
// efficiency model. A, Bp, Bm, Cp, Cm, D are dimensionless; H1, H2, H3 are
// clearance gaps in metres (valve plate, shoe, piston/bore); Eccentricity is
// the piston-in-bore eccentricity ratio in [0, 1].
type LossCoefficients struct {
	A  float64
	Bp float64
	Bm float64
	Cp float64
	Cm float64
	D  float64

	H1 float64
	H2 float64
	H3 float64

	Eccentricity float64
}

// DefaultLossCoefficients returns the reference coefficient set.
func DefaultLossCoefficients() *LossCoefficients {
	return &LossCoefficients{
		A:            0.17,
		Bp:           1.0,
		Bm:           0.5,
		Cp:           0.001,
		Cm:           0.005,
		D:            125,
		H1:           15e-6,
		H2:           15e-6,
		H3:           25e-6,
		Eccentricity: 1,
	}
}

// mergeLossCoefficients overlays user overrides on the defaults.
// Positive values override; Eccentricity accepts any value in [0..1]
// (0 is a valid concentric piston).
func mergeLossCoefficients(lc *LossCoefficients) LossCoefficients {
	base := DefaultLossCoefficients()
	if lc == nil {
		return *base
	}
	merged := *base
	if lc.A > 0 {
		merged.A = lc.A
	}
	if lc.Bp > 0 {
		merged.Bp = lc.Bp
	}
	if lc.Bm > 0 {
		merged.Bm = lc.Bm
	}
	if lc.Cp > 0 {
		merged.Cp = lc.Cp
	}
	if lc.Cm > 0 {
		merged.Cm = lc.Cm
	}
	if lc.D > 0 {
		merged.D = lc.D
	}
	if lc.H1 > 0 {
		merged.H1 = lc.H1
	}
	if lc.H2 > 0 {
		merged.H2 = lc.H2
	}
	if lc.H3 > 0 {
		merged.H3 = lc.H3
	}
	if lc.Eccentricity >= 0 && lc.Eccentricity <= 1 {
		merged.Eccentricity = lc.Eccentricity
	}
	return merged
}

// Machine couples a validated configuration with its derived pumping-group
// geometry. The geometry is computed once on first use and cached; a Machine
// is immutable after construction, so the cache never goes stale.
type Machine struct {
	cfg   MachineConfig
	bal   DesignBalances
	sizes *Sizes
}

// New validates cfg and returns a Machine using the default design balances.
func New(cfg MachineConfig) (*Machine, error) {
	return NewWithBalances(cfg, DefaultDesignBalances())
}

// NewWithBalances validates cfg and returns a Machine sized with the given
// design balances. Zero or negative balance fields fall back to defaults.
func NewWithBalances(cfg MachineConfig, bal DesignBalances) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Machine{cfg: cfg, bal: bal.withDefaults()}, nil
}

// Config returns the machine configuration.
func (m *Machine) Config() MachineConfig { return m.cfg }

// Sizes returns the pumping-group geometry, computing it on first call.
func (m *Machine) Sizes() (Sizes, error) {
	if m.sizes != nil {
		return *m.sizes, nil
	}
	s, err := ComputeSizes(m.cfg, m.bal)
	if err != nil {
		return Sizes{}, err
	}
	m.sizes = &s
	return s, nil
}
