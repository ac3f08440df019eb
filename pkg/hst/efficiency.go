package hst

import (
	"fmt"
	"math"
)

// OperatingPoint is one steady-state point of the HST. Speed is the pump
// input speed in rpm, pressures are in bar.
type OperatingPoint struct {
	SpeedPump         float64
	PressureDischarge float64
	PressureCharge    float64
}

// Validate reports whether the point is evaluable: positive speed and a
// discharge pressure strictly above the charge pressure. Equal pressures make
// the mechanical-loss terms singular.
func (op OperatingPoint) Validate() error {
	if op.SpeedPump <= 0 {
		return fmt.Errorf("%w: pump speed %g rpm", ErrInvalidOperatingPoint, op.SpeedPump)
	}
	if op.PressureCharge < 0 {
		return fmt.Errorf("%w: charge pressure %g bar", ErrInvalidOperatingPoint, op.PressureCharge)
	}
	if op.PressureDischarge <= op.PressureCharge {
		return fmt.Errorf("%w: discharge %g bar <= charge %g bar",
			ErrInvalidOperatingPoint, op.PressureDischarge, op.PressureCharge)
	}
	return nil
}

// OilPoint is the oil state at one temperature, as supplied by a property
// table. DynamicViscosity in mPa*s, KinematicViscosity in cSt, Density in
// g/cm^3. The efficiency model reads only the dynamic viscosity.
type OilPoint struct {
	DynamicViscosity   float64
	KinematicViscosity float64
	Density            float64
}

// MachineEfficiency holds volumetric, mechanical and total efficiency of one
// machine (or of the whole HST) in per cent.
type MachineEfficiency struct {
	Volumetric float64
	Mechanical float64
	Total      float64
}

// EfficiencyResult is the efficiency split for pump, motor and the combined
// transmission.
type EfficiencyResult struct {
	Pump  MachineEfficiency
	Motor MachineEfficiency
	HST   MachineEfficiency
}

// MachinePerformance holds speed (rpm), torque (Nm) and power (kW) of one
// machine.
type MachinePerformance struct {
	Speed  float64
	Torque float64
	Power  float64
}

// PerformanceResult is the derived performance for pump and motor, their
// difference, and the pressures it was computed at.
type PerformanceResult struct {
	Pump  MachinePerformance
	Motor MachinePerformance
	Delta MachinePerformance

	PressureCharge    float64 // bar
	PressureDischarge float64 // bar
}

// Efficiency evaluates the loss model at one operating point and returns the
// efficiency and performance split. Results are plain values: evaluating a
// grid of points needs no shared state and is safe to run concurrently on
// the same Machine once its sizes are computed.
//
// The motor-side mechanical efficiency depends on the motor speed, which is
// itself the pump speed scaled by the HST volumetric efficiency of this same
// call; volumetric terms are therefore evaluated first.
func (m *Machine) Efficiency(op OperatingPoint, oil OilPoint, lc *LossCoefficients) (EfficiencyResult, PerformanceResult, error) {
	if err := op.Validate(); err != nil {
		return EfficiencyResult{}, PerformanceResult{}, err
	}
	sizes, err := m.Sizes()
	if err != nil {
		return EfficiencyResult{}, PerformanceResult{}, err
	}
	coeffs := mergeLossCoefficients(lc)

	leak, err := Leakage(sizes, m.cfg.Pistons, oil.DynamicViscosity,
		op.PressureDischarge, op.PressureCharge, coeffs)
	if err != nil {
		return EfficiencyResult{}, PerformanceResult{}, err
	}

	// rpm * cc/rev -> m^3/s
	flowTheoretical := op.SpeedPump * m.cfg.Displacement / 6e7
	deltaP := op.PressureDischarge - op.PressureCharge // bar

	volPump := (1 - deltaP/BulkModulusBar - leak.Total/flowTheoretical) * 100
	volMotor := (1 - leak.Total/flowTheoretical) * 100
	volHST := volPump * volMotor * 1e-2

	mechPump, err := mechanicalEfficiency(coeffs.A, coeffs.Bp, coeffs.Cp, coeffs.D,
		oil.DynamicViscosity, op.SpeedPump, m.cfg.SwashAngle, deltaP)
	if err != nil {
		return EfficiencyResult{}, PerformanceResult{}, err
	}
	speedMotor := op.SpeedPump * volHST * 1e-2
	mechMotor, err := mechanicalEfficiency(coeffs.A, coeffs.Bm, coeffs.Cm, coeffs.D,
		oil.DynamicViscosity, speedMotor, m.cfg.SwashAngle, deltaP)
	if err != nil {
		return EfficiencyResult{}, PerformanceResult{}, err
	}
	mechHST := mechPump * mechMotor * 1e-2

	totPump := volPump * mechPump * 1e-2
	totMotor := volMotor * mechMotor * 1e-2
	totHST := totPump * totMotor * 1e-2

	torquePump := deltaP * 1e5 * m.cfg.Displacement * 1e-6 / (2 * math.Pi * mechPump * 1e-2)
	torqueMotor := torquePump * mechHST * 1e-2
	powerPump := torquePump * op.SpeedPump * math.Pi / 30 * 1e-3
	powerMotor := powerPump * totHST * 1e-2

	eff := EfficiencyResult{
		Pump:  MachineEfficiency{Volumetric: volPump, Mechanical: mechPump, Total: totPump},
		Motor: MachineEfficiency{Volumetric: volMotor, Mechanical: mechMotor, Total: totMotor},
		HST:   MachineEfficiency{Volumetric: volHST, Mechanical: mechHST, Total: totHST},
	}
	perf := PerformanceResult{
		Pump:  MachinePerformance{Speed: op.SpeedPump, Torque: torquePump, Power: powerPump},
		Motor: MachinePerformance{Speed: speedMotor, Torque: torqueMotor, Power: powerMotor},
		Delta: MachinePerformance{
			Speed:  op.SpeedPump - speedMotor,
			Torque: torquePump - torqueMotor,
			Power:  powerPump - powerMotor,
		},
		PressureCharge:    op.PressureCharge,
		PressureDischarge: op.PressureDischarge,
	}
	return eff, perf, nil
}

// mechanicalEfficiency is the shared three-term semi-empirical form
// (1 - A*exp(-B*x) - C*sqrt(x) - D/(swash*dP)) * 100 with x = mu*N/(swash*dP).
func mechanicalEfficiency(a, b, c, d, viscosity, speed, swashDeg, deltaPBar float64) (float64, error) {
	if viscosity <= 0 {
		return 0, fmt.Errorf("%w: dynamic viscosity %g mPa*s", ErrNumericDomain, viscosity)
	}
	x := viscosity * speed / (swashDeg * deltaPBar)
	if x < 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, fmt.Errorf("%w: viscous group %g", ErrNumericDomain, x)
	}
	return (1 - a*math.Exp(-b*x) - c*math.Sqrt(x) - d/(swashDeg*deltaPBar)) * 100, nil
}
