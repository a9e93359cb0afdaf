package domain

import "errors"

var (
	// ErrUnknownFuelType is returned when a fuel type code is not an FBP benchmark type.
	ErrUnknownFuelType = errors.New("unknown fuel type")
	// ErrInvalidInput is returned when station inputs cannot support an advisory.
	ErrInvalidInput = errors.New("invalid station inputs")
	// ErrCannotClassifyFireType is returned when crown fraction burned lies outside [0, 1].
	ErrCannotClassifyFireType = errors.New("cannot classify fire type")
)
