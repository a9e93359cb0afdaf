package firebehaviour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/cffdrs"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// c2Solver is a C2 stand at a July station with high buildup.
func c2Solver(ffmc float64) SolverInputs {
	return SolverInputs{
		FuelType: domain.C2,
		Stand: cffdrs.Stand{
			PercentConifer:       domain.Float(100),
			PercentDeadBalsamFir: domain.Float(0),
			CrownBaseHeight:      domain.Float(3),
		},
		BUI:       148.558,
		WindSpeed: 10.3,
		FFMC:      ffmc,
		FMC:       120,
		CFB:       0.9615453070844759,
		CFL:       0.8,
	}
}

const c2DailyFFMC = 92.08498474903236

func TestSolveCriticalFFMC_C2(t *testing.T) {
	tests := []struct {
		name     string
		ffmc     float64
		target   float64
		wantFFMC float64
	}{
		{"4000 from daily", c2DailyFFMC, domain.TargetHFI4000, 83.37318641969007},
		{"10000 from daily", c2DailyFFMC, domain.TargetHFI10000, 87.95782762565338},
		{"4000 from low start", 55, domain.TargetHFI4000, 83.368},
		{"10000 from low start", 55, domain.TargetHFI10000, 88.035},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SolveCriticalFFMC(CFFDRS{}, c2Solver(tt.ffmc), tt.target)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFFMC, got.FFMC, 0.01)
			assert.InDelta(t, tt.target, got.HFI, tt.target*HFITolerance)
			assert.False(t, got.Diverged)
			assert.False(t, got.Unreachable(tt.target))
			assert.False(t, got.AlwaysMet(tt.target))
		})
	}
}

func TestSolveCriticalFFMC_AlreadyWithinTolerance(t *testing.T) {
	eq := curveEquations{hfi: func(float64) float64 { return 4010 }}

	got, err := SolveCriticalFFMC(eq, SolverInputs{FFMC: 85}, 4000)
	require.NoError(t, err)
	assert.Equal(t, CriticalFFMC{FFMC: 85, HFI: 4010}, got)
}

func TestSolveCriticalFFMC_Unreachable(t *testing.T) {
	eq := curveEquations{hfi: func(float64) float64 { return 100 }}

	got, err := SolveCriticalFFMC(eq, SolverInputs{FFMC: 90}, 4000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.FFMC, UnreachableFFMC)
	assert.True(t, got.Unreachable(4000))
	assert.False(t, got.Diverged)
}

func TestSolveCriticalFFMC_AlwaysMet(t *testing.T) {
	eq := curveEquations{hfi: func(float64) float64 { return 50000 }}

	got, err := SolveCriticalFFMC(eq, SolverInputs{FFMC: 50}, 4000)
	require.NoError(t, err)
	assert.Zero(t, got.FFMC)
	assert.True(t, got.AlwaysMet(4000))
}

func TestSolveCriticalFFMC_StopsAtIterationCap(t *testing.T) {
	// A step in HFI that no candidate lands within tolerance of.
	eq := curveEquations{hfi: func(ffmc float64) float64 {
		if ffmc > 50 {
			return 8000
		}
		return 2000
	}}

	got, err := SolveCriticalFFMC(eq, SolverInputs{FFMC: 60}, 4000)
	require.NoError(t, err)
	assert.True(t, got.Diverged)
	assert.Equal(t, MaxSolverIterations, got.Iterations)
}

func TestSolveCriticalFFMC_PropagatesEquationErrors(t *testing.T) {
	in := c2Solver(c2DailyFFMC)
	in.FuelType = domain.M1
	in.Stand.PercentConifer = nil

	_, err := SolveCriticalFFMC(CFFDRS{}, in, 4000)
	assert.ErrorIs(t, err, cffdrs.ErrMissingParam)
}
