package cffdrs

import (
	"math"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// NetEffectiveWindSpeed returns the wind speed (km/h) driving spread. Ground
// slope is not modelled, so on level ground it is the observed wind speed.
func NetEffectiveWindSpeed(windSpeed float64) float64 {
	return windSpeed
}

// LengthToBreadthRatio returns the elliptical fire shape at equilibrium.
func LengthToBreadthRatio(ft domain.FuelType, wsv float64) (float64, error) {
	if !supported(ft) {
		return 0, unsupported("length to breadth ratio", ft)
	}
	if ft.IsGrass() {
		if wsv < 1 {
			return 1, nil
		}
		return 1.1 * math.Pow(wsv, 0.464), nil
	}
	return 1 + 8.729*math.Pow(1-math.Exp(-0.03*wsv), 2.155), nil
}

// acceleration returns the point-ignition acceleration coefficient. Open
// and slash fuels, C1 and D1 accelerate at the fixed rate.
func acceleration(ft domain.FuelType, cfb float64) float64 {
	switch ft {
	case domain.C1, domain.O1A, domain.O1B, domain.S1, domain.S2, domain.S3, domain.D1:
		return 0.115
	}
	return 0.115 - 18.8*math.Pow(cfb, 2.5)*math.Exp(-8*cfb)
}

// RateOfSpreadT returns the rate of spread (m/min) minutes after ignition.
func RateOfSpreadT(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error) {
	if !supported(ft) {
		return 0, unsupported("rate of spread at time t", ft)
	}
	alpha := acceleration(ft, cfb)
	return rosEq * (1 - math.Exp(-alpha*minutes)), nil
}

// FireDistance returns the head fire spread distance (m) minutes after ignition.
func FireDistance(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error) {
	if !supported(ft) {
		return 0, unsupported("fire distance", ft)
	}
	alpha := acceleration(ft, cfb)
	return rosEq * (minutes + math.Exp(-alpha*minutes)/alpha - 1/alpha), nil
}

// LengthToBreadthRatioT returns the fire shape minutes after ignition.
func LengthToBreadthRatioT(ft domain.FuelType, lb, minutes, cfb float64) (float64, error) {
	if !supported(ft) {
		return 0, unsupported("length to breadth ratio at time t", ft)
	}
	alpha := acceleration(ft, cfb)
	return (lb-1)*(1-math.Exp(-alpha*minutes)) + 1, nil
}

// BackRateOfSpread returns the back fire rate of spread (m/min). The back
// fire spreads against the wind, so the wind function is inverted.
func BackRateOfSpread(ft domain.FuelType, ffmc, bui, wsv, fmc, sfc float64, stand Stand) (float64, error) {
	bisi := 0.208 * math.Exp(-0.05039*wsv) * fineFuelMoistureFunction(ffmc)
	return RateOfSpread(ft, bisi, bui, fmc, sfc, stand)
}
