package catalog

import "errors"

var (
	// ErrNoOil indicates an oil grade absent from the catalog.
	ErrNoOil = errors.New("catalog: unknown oil grade")

	// ErrNoEngine indicates an engine name absent from the catalog.
	ErrNoEngine = errors.New("catalog: unknown engine")

	// ErrNoTemperature indicates an oil table with no row at the requested
	// temperature. Tables are keyed, not interpolated.
	ErrNoTemperature = errors.New("catalog: no oil data at temperature")

	// ErrBadCurve indicates an engine curve with mismatched array lengths or
	// a pivot speed outside its speed range.
	ErrBadCurve = errors.New("catalog: malformed engine curve")
)
