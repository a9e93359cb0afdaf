package firebehaviour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

func rhWindow(values map[int]float64) domain.RHObservationWindow {
	w := domain.RHObservationWindow{}
	for h := 7; h <= 12; h++ {
		w[h] = nil
	}
	for h, v := range values {
		w[h] = domain.Float(v)
	}
	return w
}

func uniformRH(rh float64) domain.RHObservationWindow {
	return rhWindow(map[int]float64{7: rh, 8: rh, 9: rh, 10: rh, 11: rh, 12: rh})
}

// drying is a morning that dries steadily towards noon.
var drying = rhWindow(map[int]float64{7: 54, 8: 47, 9: 46, 10: 45, 11: 44, 12: 38})

func TestCriticalHours_C2(t *testing.T) {
	stepper := NewStepper(diurnal.Default())

	tests := []struct {
		name    string
		target  float64
		daily   float64
		rh      domain.RHObservationWindow
		want    *domain.CriticalHours
		outcome string
	}{
		{"4000 dry morning wraps midnight", domain.TargetHFI4000, c2DailyFFMC, drying, &domain.CriticalHours{Start: 7, End: 0}, OutcomeWindow},
		{"10000 humid morning starts at noon", domain.TargetHFI10000, c2DailyFFMC, uniformRH(88), &domain.CriticalHours{Start: 13, End: 21}, OutcomeWindow},
		{"4000 humid morning", domain.TargetHFI4000, c2DailyFFMC, uniformRH(88), &domain.CriticalHours{Start: 13, End: 0}, OutcomeWindow},
		{"10000 dry morning", domain.TargetHFI10000, c2DailyFFMC, drying, &domain.CriticalHours{Start: 7, End: 21}, OutcomeWindow},
		{"4000 daily below critical", domain.TargetHFI4000, 55, uniformRH(88), nil, OutcomeBelowThreshold},
		{"10000 daily below critical", domain.TargetHFI10000, 55, uniformRH(88), nil, OutcomeBelowThreshold},
		{"no morning observations", domain.TargetHFI4000, c2DailyFFMC, nil, nil, OutcomeBelowThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CriticalHours(CFFDRS{}, stepper, tt.target, CriticalHoursInputs{
				Solver:           c2Solver(tt.daily),
				DailyFFMC:        tt.daily,
				PrevDayDailyFFMC: domain.Float(94.561),
				MorningRH:        tt.rh,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Window)
			assert.Equal(t, tt.outcome, got.Outcome)
		})
	}
}

func TestCriticalHours_Shortcuts(t *testing.T) {
	stepper := NewStepper(diurnal.Default())
	in := CriticalHoursInputs{DailyFFMC: 90, MorningRH: uniformRH(40), Solver: SolverInputs{FFMC: 90}}

	t.Run("unreachable", func(t *testing.T) {
		eq := curveEquations{hfi: func(float64) float64 { return 10 }}
		got, err := CriticalHours(eq, stepper, 4000, in)
		require.NoError(t, err)
		assert.Nil(t, got.Window)
		assert.Equal(t, OutcomeUnreachable, got.Outcome)
	})

	t.Run("all day", func(t *testing.T) {
		eq := curveEquations{hfi: func(float64) float64 { return 1e6 }}
		got, err := CriticalHours(eq, stepper, 4000, in)
		require.NoError(t, err)
		require.NotNil(t, got.Window)
		assert.Equal(t, domain.AllDay, *got.Window)
		assert.Equal(t, OutcomeAllDay, got.Outcome)
	})
}

func TestStepperStart(t *testing.T) {
	stepper := NewStepper(diurnal.Default())

	t.Run("daily below critical", func(t *testing.T) {
		_, ok, err := stepper.Start(90, 85, domain.Float(90), uniformRH(40))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil window", func(t *testing.T) {
		_, ok, err := stepper.Start(50, 85, domain.Float(90), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("morning walk bottoms out at 07:00", func(t *testing.T) {
		start, ok, err := stepper.Start(10, 95, domain.Float(95), uniformRH(10))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.MorningFloor, start)
	})

	t.Run("missing morning RH", func(t *testing.T) {
		window := rhWindow(map[int]float64{12: 10, 11: 10})
		_, _, err := stepper.Start(10, 95, domain.Float(95), window)
		assert.ErrorIs(t, err, ErrMissingMorningRH)
	})

	t.Run("morning start needs previous day FFMC", func(t *testing.T) {
		_, _, err := stepper.Start(10, 95, nil, uniformRH(10))
		assert.ErrorIs(t, err, ErrMissingPrevDayFFMC)
	})

	t.Run("afternoon start needs no previous day FFMC", func(t *testing.T) {
		table := diurnal.Default()
		crit := table.AfternoonOvernight(15, 92)
		require.Greater(t, crit, table.AfternoonOvernight(domain.SolarNoon, 92))

		start, ok, err := stepper.Start(crit, 92, nil, uniformRH(40))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.LessOrEqual(t, start, domain.Hour(15))
		assert.Greater(t, start, domain.SolarNoon)
	})
}

func TestStepperEnd(t *testing.T) {
	stepper := NewStepper(diurnal.Default())

	t.Run("runs to the next morning", func(t *testing.T) {
		assert.Equal(t, 7.0, stepper.End(74.51679687499995, 94.8, 7))
	})

	t.Run("afternoon start probes the following hour", func(t *testing.T) {
		// Nothing after the start qualifies, so the window closes where it opened.
		assert.Equal(t, 16.0, stepper.End(101, 94.8, 16))
	})
}
