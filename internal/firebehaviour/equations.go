package firebehaviour

import (
	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// Equations is the FBP/FWI equation set the calculator is built on.
type Equations interface {
	InitialSpreadIndex(ffmc, windSpeed float64) float64
	FireWeatherIndex(isi, bui float64) float64
	FoliarMoistureContent(lat, long, elevation float64, dayOfYear int) float64
	SurfaceFuelConsumption(ft domain.FuelType, bui, ffmc float64, pc *float64) (float64, error)
	LengthToBreadthRatio(ft domain.FuelType, wsv float64) (float64, error)
	RateOfSpread(ft domain.FuelType, isi, bui, fmc, sfc float64, stand cffdrs.Stand) (float64, error)
	CrownFractionBurned(ft domain.FuelType, fmc, sfc, ros float64, cbh *float64) (float64, error)
	RateOfSpreadT(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error)
	HeadFireIntensity(ft domain.FuelType, stand cffdrs.Stand, ros, cfb, cfl, sfc float64) (float64, error)
	NetEffectiveWindSpeed(windSpeed float64) float64
	BackRateOfSpread(ft domain.FuelType, ffmc, bui, wsv, fmc, sfc float64, stand cffdrs.Stand) (float64, error)
	FireDistance(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error)
	LengthToBreadthRatioT(ft domain.FuelType, lb, minutes, cfb float64) (float64, error)
}

// CFFDRS implements Equations with the cffdrs package.
type CFFDRS struct{}

var _ Equations = CFFDRS{}

func (CFFDRS) InitialSpreadIndex(ffmc, windSpeed float64) float64 {
	return cffdrs.InitialSpreadIndex(ffmc, windSpeed)
}

func (CFFDRS) FireWeatherIndex(isi, bui float64) float64 {
	return cffdrs.FireWeatherIndex(isi, bui)
}

func (CFFDRS) FoliarMoistureContent(lat, long, elevation float64, dayOfYear int) float64 {
	return cffdrs.FoliarMoistureContent(lat, long, elevation, dayOfYear)
}

func (CFFDRS) SurfaceFuelConsumption(ft domain.FuelType, bui, ffmc float64, pc *float64) (float64, error) {
	return cffdrs.SurfaceFuelConsumption(ft, bui, ffmc, pc)
}

func (CFFDRS) LengthToBreadthRatio(ft domain.FuelType, wsv float64) (float64, error) {
	return cffdrs.LengthToBreadthRatio(ft, wsv)
}

func (CFFDRS) RateOfSpread(ft domain.FuelType, isi, bui, fmc, sfc float64, stand cffdrs.Stand) (float64, error) {
	return cffdrs.RateOfSpread(ft, isi, bui, fmc, sfc, stand)
}

func (CFFDRS) CrownFractionBurned(ft domain.FuelType, fmc, sfc, ros float64, cbh *float64) (float64, error) {
	return cffdrs.CrownFractionBurned(ft, fmc, sfc, ros, cbh)
}

func (CFFDRS) RateOfSpreadT(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error) {
	return cffdrs.RateOfSpreadT(ft, rosEq, minutes, cfb)
}

func (CFFDRS) HeadFireIntensity(ft domain.FuelType, stand cffdrs.Stand, ros, cfb, cfl, sfc float64) (float64, error) {
	return cffdrs.HeadFireIntensity(ft, stand, ros, cfb, cfl, sfc)
}

func (CFFDRS) NetEffectiveWindSpeed(windSpeed float64) float64 {
	return cffdrs.NetEffectiveWindSpeed(windSpeed)
}

func (CFFDRS) BackRateOfSpread(ft domain.FuelType, ffmc, bui, wsv, fmc, sfc float64, stand cffdrs.Stand) (float64, error) {
	return cffdrs.BackRateOfSpread(ft, ffmc, bui, wsv, fmc, sfc, stand)
}

func (CFFDRS) FireDistance(ft domain.FuelType, rosEq, minutes, cfb float64) (float64, error) {
	return cffdrs.FireDistance(ft, rosEq, minutes, cfb)
}

func (CFFDRS) LengthToBreadthRatioT(ft domain.FuelType, lb, minutes, cfb float64) (float64, error) {
	return cffdrs.LengthToBreadthRatioT(ft, lb, minutes, cfb)
}
