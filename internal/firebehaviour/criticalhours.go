package firebehaviour

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

var (
	// ErrMissingMorningRH is returned when the morning walk reaches an hour with no RH observation.
	ErrMissingMorningRH = errors.New("missing morning relative humidity")
	// ErrMissingPrevDayFFMC is returned when a morning start needs the previous day's daily FFMC.
	ErrMissingPrevDayFFMC = errors.New("missing previous day's daily FFMC")
)

// Stepper walks the diurnal FFMC curves hour by hour to bound the window in
// which hourly FFMC stays at or above a critical FFMC.
type Stepper struct {
	table *diurnal.Table
}

// NewStepper creates a Stepper over table.
func NewStepper(table *diurnal.Table) Stepper {
	return Stepper{table: table}
}

// Start returns the first hour at which hourly FFMC reaches criticalFFMC.
// ok is false when no hour does: the morning RH window is absent or the
// daily FFMC, which is the day's peak, is below the critical value.
//
// When the solar noon FFMC already meets the threshold the crossing is in
// the morning and the walk runs back from 12:00 through the morning table,
// never earlier than 07:00. Otherwise it runs back from 16:00 through the
// afternoon table. Either way the result is one hour after the first hour
// that fails.
func (s Stepper) Start(criticalFFMC, dailyFFMC float64, prevDayDailyFFMC *float64, rh domain.RHObservationWindow) (start domain.Hour, ok bool, err error) {
	if rh == nil || dailyFFMC < criticalFFMC {
		return 0, false, nil
	}

	if s.table.AfternoonOvernight(domain.SolarNoon, dailyFFMC) < criticalFFMC {
		clock := domain.AfternoonProbeStart
		for s.table.AfternoonOvernight(clock, dailyFFMC) >= criticalFFMC {
			clock--
		}
		return clock + 1, true, nil
	}

	if prevDayDailyFFMC == nil {
		return 0, false, ErrMissingPrevDayFFMC
	}
	clock := domain.MorningStart
	for {
		hourlyRH, found := rh.At(clock)
		if !found {
			return 0, false, fmt.Errorf("%w at %v:00", ErrMissingMorningRH, float64(clock))
		}
		ffmc, err := s.table.Morning(clock, *prevDayDailyFFMC, hourlyRH)
		if err != nil {
			return 0, false, err
		}
		if ffmc < criticalFFMC {
			break
		}
		clock--
		if clock < domain.MorningFloor {
			break
		}
	}
	return clock + 1, true, nil
}

// End returns the last hour, on the 24h clock, at which hourly FFMC is still
// at or above criticalFFMC, walking forward from start through the
// afternoon/overnight table. A morning start resumes at 14:00 since solar
// noon is already known to qualify. The walk stops before 08:00 the next day.
func (s Stepper) End(criticalFFMC, dailyFFMC float64, start domain.Hour) float64 {
	clock := start + 1
	if start < domain.SolarNoon {
		clock = domain.PostNoonProbe
	}
	for s.table.AfternoonOvernight(clock, dailyFFMC) >= criticalFFMC {
		clock++
		if clock >= domain.WraparoundCeiling {
			break
		}
	}
	return (clock - 1).Clock()
}

// CriticalHoursInputs are the values the critical hours search needs beyond
// the solver inputs.
type CriticalHoursInputs struct {
	Solver           SolverInputs
	DailyFFMC        float64
	PrevDayDailyFFMC *float64
	MorningRH        domain.RHObservationWindow
}

// Critical hours outcomes.
const (
	OutcomeWindow         = "window"
	OutcomeAllDay         = "all_day"
	OutcomeUnreachable    = "unreachable"
	OutcomeBelowThreshold = "below_threshold"
)

// CriticalHoursResult is a critical hours window with how it was reached.
type CriticalHoursResult struct {
	Window   *domain.CriticalHours
	Outcome  string
	Critical CriticalFFMC
}

// CriticalHours finds the window in which head fire intensity meets target.
// A nil Window is a valid result: the target is unreachable at any FFMC or
// the day never gets dry enough.
func CriticalHours(eq Equations, s Stepper, target float64, in CriticalHoursInputs) (CriticalHoursResult, error) {
	crit, err := SolveCriticalFFMC(eq, in.Solver, target)
	if err != nil {
		return CriticalHoursResult{}, err
	}
	res := CriticalHoursResult{Critical: crit}

	if crit.Unreachable(target) {
		res.Outcome = OutcomeUnreachable
		return res, nil
	}
	if crit.AlwaysMet(target) {
		window := domain.AllDay
		res.Window, res.Outcome = &window, OutcomeAllDay
		return res, nil
	}

	start, ok, err := s.Start(crit.FFMC, in.DailyFFMC, in.PrevDayDailyFFMC, in.MorningRH)
	if err != nil {
		return CriticalHoursResult{}, err
	}
	if !ok {
		res.Outcome = OutcomeBelowThreshold
		return res, nil
	}
	res.Window = &domain.CriticalHours{
		Start: start.Clock(),
		End:   s.End(crit.FFMC, in.DailyFFMC, start),
	}
	res.Outcome = OutcomeWindow
	return res, nil
}
