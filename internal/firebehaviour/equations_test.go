package firebehaviour

import (
	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// curveEquations makes HFI a direct function of FFMC so solver behaviour can
// be pinned down without the FBP equations.
type curveEquations struct {
	CFFDRS
	hfi func(ffmc float64) float64
}

func (curveEquations) InitialSpreadIndex(ffmc, _ float64) float64 { return ffmc }

func (curveEquations) SurfaceFuelConsumption(domain.FuelType, float64, float64, *float64) (float64, error) {
	return 1, nil
}

func (curveEquations) RateOfSpread(_ domain.FuelType, isi, _, _, _ float64, _ cffdrs.Stand) (float64, error) {
	return isi, nil
}

func (e curveEquations) HeadFireIntensity(_ domain.FuelType, _ cffdrs.Stand, ros, _, _, _ float64) (float64, error) {
	return e.hfi(ros), nil
}

var _ Equations = curveEquations{}
