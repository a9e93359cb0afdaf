package firebehaviour

import (
	"math"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// Bounds of the critical FFMC search.
const (
	MaxFFMC             = 101.0
	UnreachableFFMC     = 100.9 // at or above this, a target still missed is unreachable
	FloorFFMC           = 0.1
	HFITolerance        = 0.01 // relative error accepted as a match
	MaxSolverIterations = 1000
)

// SolverInputs fixes everything but FFMC for the critical FFMC search.
type SolverInputs struct {
	FuelType  domain.FuelType
	Stand     cffdrs.Stand
	BUI       float64
	WindSpeed float64
	FFMC      float64 // starting candidate, normally the station's daily FFMC
	FMC       float64
	CFB       float64
	CFL       float64
}

// CriticalFFMC is the outcome of a critical FFMC search.
type CriticalFFMC struct {
	FFMC       float64
	HFI        float64
	Iterations int
	// Diverged is set when the search stopped at MaxSolverIterations.
	Diverged bool
}

// Unreachable reports whether even the maximum FFMC misses the target.
func (c CriticalFFMC) Unreachable(target float64) bool {
	return c.FFMC >= UnreachableFFMC && c.HFI < target
}

// AlwaysMet reports whether the target is met at an FFMC of zero.
func (c CriticalFFMC) AlwaysMet(target float64) bool {
	return c.FFMC == 0 && c.HFI >= target
}

// SolveCriticalFFMC finds the lowest FFMC whose head fire intensity is
// within 1% of target, holding every other input fixed. From the current
// candidate it moves half the remaining distance to 101 when HFI is too
// low, and back by the same distance when HFI is too high. This is not an
// interval bisection and is not guaranteed to converge if HFI is not
// monotonic in FFMC, so the search is capped at MaxSolverIterations.
func SolveCriticalFFMC(eq Equations, in SolverInputs, target float64) (CriticalFFMC, error) {
	hfiAt := func(ffmc float64) (float64, error) {
		isi := eq.InitialSpreadIndex(ffmc, in.WindSpeed)
		sfc, err := eq.SurfaceFuelConsumption(in.FuelType, in.BUI, ffmc, in.Stand.PercentConifer)
		if err != nil {
			return 0, err
		}
		ros, err := eq.RateOfSpread(in.FuelType, isi, in.BUI, in.FMC, sfc, in.Stand)
		if err != nil {
			return 0, err
		}
		return eq.HeadFireIntensity(in.FuelType, in.Stand, ros, in.CFB, in.CFL, sfc)
	}

	candidate := in.FFMC
	hfi, err := hfiAt(candidate)
	if err != nil {
		return CriticalFFMC{}, err
	}
	relErr := (target - hfi) / target

	n := 0
	for math.Abs(relErr) > HFITolerance {
		if candidate >= UnreachableFFMC && hfi < target {
			break
		}
		if candidate <= FloorFFMC {
			break
		}
		if n == MaxSolverIterations {
			return CriticalFFMC{FFMC: candidate, HFI: hfi, Iterations: n, Diverged: true}, nil
		}
		gap := (MaxFFMC - candidate) / 2
		if relErr > 0 {
			candidate = math.Min(MaxFFMC, candidate+gap)
		} else {
			candidate = math.Max(0, candidate-gap)
		}
		if hfi, err = hfiAt(candidate); err != nil {
			return CriticalFFMC{}, err
		}
		relErr = (target - hfi) / target
		n++
	}
	return CriticalFFMC{FFMC: candidate, HFI: hfi, Iterations: n}, nil
}
