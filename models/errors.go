package models

import "errors"

var (
	// ErrInvalidParameter is returned when a construction argument is outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateModel is returned when the up and down factors coincide, which
	// leaves the risk-neutral probability undefined.
	ErrDegenerateModel = errors.New("degenerate model")
)
