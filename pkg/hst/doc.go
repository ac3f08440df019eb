// Package hst models the steady-state performance of hydrostatic
// transmissions built from a same-displacement axial-piston pump/motor pair.
//
// The package is pure computation: all inputs (geometry, oil state, operating
// point, tuning coefficients) arrive as plain values and every result is an
// explicit return value. Nothing here does I/O, logs, or keeps per-call
// state beyond the geometry cached on a Machine.
//
// # Pipeline
//
//   - ComputeSizes derives the pumping-group geometry (piston, valve-plate
//     lands, shoe pockets) from displacement, swash angle, piston count and
//     five dimensionless design balances.
//   - Leakage converts geometry + oil viscosity + pressures into the three
//     clearance flows (block, shoes, pistons).
//   - Machine.Efficiency combines leakage with theoretical flow and the
//     semi-empirical friction terms into volumetric/mechanical/total
//     efficiencies, torque, power and motor speed for pump, motor and HST.
//   - Machine.Loads derives shaft and swash-plate structural loads.
//   - RatedSpeeds turns an injected displacement->speed predictor into a
//     rated-speed band.
//
// # Units
//
// Displacement cc/rev, pressures bar, speeds rpm, dynamic viscosity mPa*s,
// lengths m, flows m^3/s, torque Nm, power kW, efficiencies per cent.
//
// Errors are sentinel values (ErrInvalidConfiguration,
// ErrInvalidOperatingPoint, ErrNumericDomain) wrapped with context; callers
// match them with errors.Is.
package hst
