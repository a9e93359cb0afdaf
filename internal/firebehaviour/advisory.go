// Package firebehaviour computes Fire Behaviour Advisories: head fire
// intensity, spread, fire type and size for a station and fuel type, plus the
// critical hours during which intensity is expected to reach 4000 and
// 10000 kW/m.
package firebehaviour

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/observability"
)

// Calculator computes advisories. It is safe for concurrent use.
type Calculator struct {
	eq      Equations
	stepper Stepper
	loc     *time.Location
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCalculator creates a Calculator. loc is the stations' local time zone,
// which the diurnal tables and the advisory date are expressed in.
func NewCalculator(table *diurnal.Table, eq Equations, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Calculator {
	return &Calculator{
		eq:      eq,
		stepper: NewStepper(table),
		loc:     loc,
		logger:  logger,
		metrics: metrics,
	}
}

// surface is the equilibrium and 60-minute spread state shared by the
// advisory fields and the critical hours search.
type surface struct {
	fmc, sfc, isi float64
	ros, cfb, hfi float64
	rosT, cfbT    float64
	hfiT, cfl, lb float64
}

// Calculate computes the advisory for one station. Inputs are used as given;
// callers apply fuel type defaults beforehand.
func (c *Calculator) Calculate(in domain.StationInputs) (domain.FireBehaviourAdvisory, error) {
	if err := in.Validate(); err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}
	ft := in.FuelType
	ffmc, bui, ws := *in.FFMC, *in.BUI, *in.WindSpeed
	stand := standFor(in)

	s, err := c.surface(in)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}

	chIn := CriticalHoursInputs{
		Solver: SolverInputs{
			FuelType:  ft,
			Stand:     stand,
			BUI:       bui,
			WindSpeed: ws,
			FFMC:      ffmc,
			FMC:       s.fmc,
			CFB:       s.cfb,
			CFL:       s.cfl,
		},
		DailyFFMC:        ffmc,
		PrevDayDailyFFMC: in.PrevDayDailyFFMC,
		MorningRH:        in.MorningRH,
	}
	ch4000, err := c.criticalHours(in, domain.TargetHFI4000, chIn)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}
	ch10000, err := c.criticalHours(in, domain.TargetHFI10000, chIn)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}

	fireType, err := domain.ClassifyFireType(ft, s.cfb)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, err
	}

	bros, err := c.eq.BackRateOfSpread(ft, ffmc, bui, c.eq.NetEffectiveWindSpeed(ws), s.fmc, s.sfc, stand)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, fmt.Errorf("back rate of spread: %w", err)
	}
	size60, err := FireSize(c.eq, ft, s.ros, bros, SixtyMinutes, s.cfb, s.lb)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, fmt.Errorf("sixty minute fire size: %w", err)
	}
	size60T, err := FireSize(c.eq, ft, s.rosT, bros, SixtyMinutes, s.cfbT, s.lb)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, fmt.Errorf("sixty minute fire size (t): %w", err)
	}
	size30, err := FireSize(c.eq, ft, s.ros, bros, ThirtyMinutes, s.cfb, s.lb)
	if err != nil {
		return domain.FireBehaviourAdvisory{}, fmt.Errorf("thirty minute fire size: %w", err)
	}

	fwi := c.eq.FireWeatherIndex(s.isi, bui)
	if in.FWI != nil {
		fwi = *in.FWI
	}

	return domain.FireBehaviourAdvisory{
		StationCode:           in.StationCode,
		FuelType:              ft,
		HFI:                   s.hfi,
		ROS:                   s.ros,
		FireType:              fireType,
		CFB:                   s.cfb,
		FlameLength:           FlameLength(s.hfi),
		IntensityGroup:        domain.IntensityGroupFor(s.hfi),
		ISI:                   s.isi,
		FWI:                   fwi,
		SixtyMinuteFireSize:   size60,
		ThirtyMinuteFireSize:  size30,
		CriticalHoursHFI4000:  ch4000,
		CriticalHoursHFI10000: ch10000,
		HFIT:                  s.hfiT,
		ROST:                  s.rosT,
		CFBT:                  s.cfbT,
		SixtyMinuteFireSizeT:  size60T,
	}, nil
}

func (c *Calculator) surface(in domain.StationInputs) (surface, error) {
	ft := in.FuelType
	ffmc, bui, ws := *in.FFMC, *in.BUI, *in.WindSpeed
	stand := standFor(in)

	s := surface{
		fmc: c.eq.FoliarMoistureContent(in.Latitude, in.Longitude, in.Elevation, in.TimeOfInterest(c.loc).YearDay()),
		isi: initialSpreadIndex(c.eq, in),
		cfl: crownFuelLoad(in),
	}
	var err error
	if s.sfc, err = c.eq.SurfaceFuelConsumption(ft, bui, ffmc, stand.PercentConifer); err != nil {
		return surface{}, fmt.Errorf("surface fuel consumption: %w", err)
	}
	if s.lb, err = c.eq.LengthToBreadthRatio(ft, ws); err != nil {
		return surface{}, fmt.Errorf("length to breadth ratio: %w", err)
	}
	if s.ros, err = c.eq.RateOfSpread(ft, s.isi, bui, s.fmc, s.sfc, stand); err != nil {
		return surface{}, fmt.Errorf("rate of spread: %w", err)
	}
	if s.cfb, err = CalculateCFB(c.eq, ft, s.fmc, s.sfc, s.ros, stand.CrownBaseHeight); err != nil {
		return surface{}, fmt.Errorf("crown fraction burned: %w", err)
	}
	if s.rosT, err = c.eq.RateOfSpreadT(ft, s.ros, SixtyMinutes, s.cfb); err != nil {
		return surface{}, fmt.Errorf("rate of spread (t): %w", err)
	}
	if s.cfbT, err = CalculateCFB(c.eq, ft, s.fmc, s.sfc, s.rosT, stand.CrownBaseHeight); err != nil {
		return surface{}, fmt.Errorf("crown fraction burned (t): %w", err)
	}
	if s.hfi, err = c.eq.HeadFireIntensity(ft, stand, s.ros, s.cfb, s.cfl, s.sfc); err != nil {
		return surface{}, fmt.Errorf("head fire intensity: %w", err)
	}
	if s.hfiT, err = c.eq.HeadFireIntensity(ft, stand, s.rosT, s.cfbT, s.cfl, s.sfc); err != nil {
		return surface{}, fmt.Errorf("head fire intensity (t): %w", err)
	}
	return s, nil
}

func (c *Calculator) criticalHours(in domain.StationInputs, target float64, chIn CriticalHoursInputs) (*domain.CriticalHours, error) {
	res, err := CriticalHours(c.eq, c.stepper, target, chIn)
	if err != nil {
		return nil, fmt.Errorf("critical hours for hfi %v: %w", target, err)
	}

	c.metrics.SolverIterations.Observe(float64(res.Critical.Iterations))
	if res.Critical.Diverged {
		c.metrics.SolverDivergences.Inc()
		c.logger.Warn("critical ffmc search did not converge",
			"station_code", in.StationCode,
			"fuel_type", in.FuelType,
			"target_hfi", target,
			"ffmc", res.Critical.FFMC,
			"hfi", res.Critical.HFI,
			"iterations", res.Critical.Iterations,
		)
	}
	c.metrics.CriticalHoursOutcomes.WithLabelValues(strconv.FormatFloat(target, 'f', -1, 64), res.Outcome).Inc()

	c.logger.Debug("critical hours resolved",
		"station_code", in.StationCode,
		"target_hfi", target,
		"critical_ffmc", res.Critical.FFMC,
		"resulting_hfi", res.Critical.HFI,
		"outcome", res.Outcome,
	)
	return res.Window, nil
}
