package cffdrs

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

var (
	// ErrMissingParam is returned when a parameter the fuel type requires is absent.
	ErrMissingParam = errors.New("missing required parameter")
	// ErrUnsupportedFuelType is returned for fuel types without FBP equations in this package.
	ErrUnsupportedFuelType = errors.New("unsupported fuel type")
)

// ParamError describes an equation that could not be evaluated because a
// fuel-type-specific parameter was nil.
type ParamError struct {
	Op       string
	FuelType domain.FuelType
	Param    string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("cffdrs: %s: %s requires %s", e.Op, e.FuelType, e.Param)
}

func (e *ParamError) Unwrap() error { return ErrMissingParam }

func missing(op string, ft domain.FuelType, param string) error {
	return &ParamError{Op: op, FuelType: ft, Param: param}
}

func unsupported(op string, ft domain.FuelType) error {
	return fmt.Errorf("cffdrs: %s: %w: %s", op, ErrUnsupportedFuelType, ft)
}
