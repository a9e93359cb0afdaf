package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/firebehaviour"
)

// Calculator computes an advisory from fully resolved station inputs.
type Calculator interface {
	Calculate(in domain.StationInputs) (domain.FireBehaviourAdvisory, error)
}

// AdvisoryTransformer implements Transformer: it decodes station inputs,
// fills fuel type defaults and computes the advisory.
type AdvisoryTransformer struct {
	calc   Calculator
	logger *slog.Logger
}

// NewTransformer creates an AdvisoryTransformer.
func NewTransformer(calc Calculator, logger *slog.Logger) *AdvisoryTransformer {
	return &AdvisoryTransformer{calc: calc, logger: logger}
}

func (t *AdvisoryTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.FireBehaviourAdvisory, error) {
	in, err := domain.ParseStationInputs(raw)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}
	in = domain.ApplyFuelTypeDefaults(in)

	adv, err := t.calc.Calculate(in)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}
	adv.ComputedAt = domain.Now()

	t.logger.Debug("advisory computed",
		"station_code", in.StationCode,
		"station_name", in.StationName,
		"fuel_type", in.FuelType,
		"hfi", adv.HFI,
		"fire_type", adv.FireType,
	)
	return adv, nil
}

// Failure reasons reported on the advisory failures metric.
const (
	ReasonInvalidInput        = "invalid_input"
	ReasonUnsupportedFuelType = "unsupported_fuel_type"
	ReasonMissingParameter    = "missing_parameter"
	ReasonMissingObservation  = "missing_observation"
	ReasonFireType            = "fire_type"
	ReasonOther               = "other"
)

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownFuelType):
		return ReasonInvalidInput
	case errors.Is(err, cffdrs.ErrUnsupportedFuelType):
		return ReasonUnsupportedFuelType
	case errors.Is(err, cffdrs.ErrMissingParam):
		return ReasonMissingParameter
	case errors.Is(err, firebehaviour.ErrMissingMorningRH),
		errors.Is(err, firebehaviour.ErrMissingPrevDayFFMC),
		errors.Is(err, diurnal.ErrRHOutOfRange):
		return ReasonMissingObservation
	case errors.Is(err, domain.ErrCannotClassifyFireType):
		return ReasonFireType
	default:
		return ReasonOther
	}
}
