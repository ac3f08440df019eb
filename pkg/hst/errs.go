package hst

import "errors"

var (
	// ErrInvalidConfiguration indicates a machine configuration that cannot
	// describe a real axial-piston unit (non-positive displacement, swash
	// angle outside (0, 90), fewer than 3 pistons).
	ErrInvalidConfiguration = errors.New("hst: invalid machine configuration")

	// ErrInvalidOperatingPoint indicates a non-positive pump speed or a
	// discharge pressure at or below the charge pressure.
	ErrInvalidOperatingPoint = errors.New("hst: invalid operating point")

	// ErrNumericDomain indicates a pathological coefficient combination that
	// would put a square root or logarithm outside its domain. It is surfaced
	// instead of letting NaN propagate into results.
	ErrNumericDomain = errors.New("hst: value outside numeric domain")
)
