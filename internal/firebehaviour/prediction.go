package firebehaviour

import (
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// Elapsed times since ignition used for fire sizes and the _t variants.
const (
	SixtyMinutes  = 60.0
	ThirtyMinutes = 30.0
)

// CalculateCFB returns crown fraction burned. Fuel types that carry no crown
// fire get 0; any other type needs a crown base height.
func CalculateCFB(eq Equations, ft domain.FuelType, fmc, sfc, ros float64, cbh *float64) (float64, error) {
	if !ft.HasCrown() {
		return 0, nil
	}
	return eq.CrownFractionBurned(ft, fmc, sfc, ros, cbh)
}

// FireSize returns the area (ha) of an elliptical fire after the given
// minutes, from the head and back spread rates and the equilibrium
// length-to-breadth ratio (Alexander 1985, eq. 8).
func FireSize(eq Equations, ft domain.FuelType, ros, bros, minutes, cfb, lb float64) (float64, error) {
	if ft == "" {
		return 0, fmt.Errorf("%w: fire size needs a fuel type", domain.ErrInvalidInput)
	}
	if math.IsNaN(ros) || math.IsNaN(bros) || math.IsNaN(lb) {
		return 0, fmt.Errorf("%w: fire size needs ROS, BROS and LB (got %v, %v, %v)", domain.ErrInvalidInput, ros, bros, lb)
	}
	dist, err := eq.FireDistance(ft, ros+bros, minutes, cfb)
	if err != nil {
		return 0, err
	}
	lbt, err := eq.LengthToBreadthRatioT(ft, lb, minutes, cfb)
	if err != nil {
		return 0, err
	}
	return math.Pi / (4 * lbt) * dist * dist / 10000, nil
}

// FlameLength approximates flame length (m) from head fire intensity.
func FlameLength(hfi float64) float64 {
	return math.Sqrt(hfi / 300)
}

// standFor collects the stand attributes of in.
func standFor(in domain.StationInputs) cffdrs.Stand {
	return cffdrs.Stand{
		PercentConifer:       in.PercentConifer,
		PercentDeadBalsamFir: in.PercentDeadBalsamFir,
		GrassCure:            in.GrassCure,
		CrownBaseHeight:      in.CrownBaseHeight,
	}
}

// crownFuelLoad returns the station's crown fuel load, falling back to the
// fuel type default.
func crownFuelLoad(in domain.StationInputs) float64 {
	if in.CrownFuelLoad != nil {
		return *in.CrownFuelLoad
	}
	if cfl := domain.DefaultsFor(in.FuelType).CrownFuelLoad; cfl != nil {
		return *cfl
	}
	return 0
}

// initialSpreadIndex returns the station's ISI, computing it when absent.
func initialSpreadIndex(eq Equations, in domain.StationInputs) float64 {
	if in.ISI != nil {
		return *in.ISI
	}
	return eq.InitialSpreadIndex(*in.FFMC, *in.WindSpeed)
}

// CalculatePrediction computes the reduced fire behaviour prediction used by
// planning tools. Foliar moisture is taken for today in loc rather than the
// advisory date.
func CalculatePrediction(eq Equations, in domain.StationInputs, loc *time.Location) (domain.FireBehaviourPrediction, error) {
	if err := in.Validate(); err != nil {
		return domain.FireBehaviourPrediction{}, err
	}
	ft := in.FuelType
	ffmc, bui, ws := *in.FFMC, *in.BUI, *in.WindSpeed
	stand := standFor(in)

	fmc := eq.FoliarMoistureContent(in.Latitude, in.Longitude, in.Elevation, domain.Now().In(loc).YearDay())
	sfc, err := eq.SurfaceFuelConsumption(ft, bui, ffmc, stand.PercentConifer)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("surface fuel consumption: %w", err)
	}
	ros, err := eq.RateOfSpread(ft, initialSpreadIndex(eq, in), bui, fmc, sfc, stand)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("rate of spread: %w", err)
	}
	cfb, err := CalculateCFB(eq, ft, fmc, sfc, ros, stand.CrownBaseHeight)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("crown fraction burned: %w", err)
	}
	hfi, err := eq.HeadFireIntensity(ft, stand, ros, cfb, crownFuelLoad(in), sfc)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("head fire intensity: %w", err)
	}
	lb, err := eq.LengthToBreadthRatio(ft, ws)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("length to breadth ratio: %w", err)
	}
	bros, err := eq.BackRateOfSpread(ft, ffmc, bui, eq.NetEffectiveWindSpeed(ws), fmc, sfc, stand)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("back rate of spread: %w", err)
	}
	size, err := FireSize(eq, ft, ros, bros, SixtyMinutes, cfb, lb)
	if err != nil {
		return domain.FireBehaviourPrediction{}, fmt.Errorf("fire size: %w", err)
	}
	fireType, err := domain.ClassifyFireType(ft, cfb)
	if err != nil {
		return domain.FireBehaviourPrediction{}, err
	}

	return domain.FireBehaviourPrediction{
		ROS:                 ros,
		HFI:                 hfi,
		IntensityGroup:      domain.IntensityGroupFor(hfi),
		SixtyMinuteFireSize: size,
		FireType:            fireType,
	}, nil
}
