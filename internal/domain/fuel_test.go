package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuelType(t *testing.T) {
	tests := []struct {
		in   string
		want FuelType
	}{
		{"C2", C2},
		{"c2", C2},
		{" o1a ", O1A},
		{"C7b", C7B},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFuelType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFuelType("X9")
		require.ErrorIs(t, err, ErrUnknownFuelType)
	})
}

func TestFuelTypeUnmarshalJSON(t *testing.T) {
	var v struct {
		FuelType FuelType `json:"fuel_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"fuel_type":"m1"}`), &v))
	assert.Equal(t, M1, v.FuelType)

	err := json.Unmarshal([]byte(`{"fuel_type":"Z1"}`), &v)
	require.ErrorIs(t, err, ErrUnknownFuelType)
}

func TestFuelTypeClasses(t *testing.T) {
	assert.True(t, O1A.IsGrass())
	assert.True(t, O1B.IsGrass())
	assert.False(t, C2.IsGrass())

	assert.True(t, C2.HasCrown())
	assert.True(t, M3.HasCrown())
	assert.True(t, D2.HasCrown())
	for _, ft := range []FuelType{D1, O1A, O1B, S1, S2, S3} {
		assert.False(t, ft.HasCrown(), ft)
	}
}

func TestDefaultsForIsTotal(t *testing.T) {
	for _, ft := range FuelTypes {
		d := DefaultsFor(ft)
		require.NotNil(t, d.PercentConifer, ft)
		require.NotNil(t, d.PercentDeadBalsamFir, ft)
		require.NotNil(t, d.CrownFuelLoad, ft)
	}

	c2 := DefaultsFor(C2)
	assert.InDelta(t, 100.0, *c2.PercentConifer, 1e-9)
	assert.InDelta(t, 3.0, *c2.CrownBaseHeight, 1e-9)
	assert.InDelta(t, 0.8, *c2.CrownFuelLoad, 1e-9)

	assert.Nil(t, DefaultsFor(D1).CrownBaseHeight)
	assert.InDelta(t, 50.0, *DefaultsFor(M1).PercentConifer, 1e-9)
	assert.InDelta(t, 60.0, *DefaultsFor(M3).PercentDeadBalsamFir, 1e-9)
}

func TestParseFuelDefaultsRejectsMissingType(t *testing.T) {
	_, err := parseFuelDefaults([]byte("C1: {percent_conifer: 100}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestApplyFuelTypeDefaults(t *testing.T) {
	t.Run("fills unset values", func(t *testing.T) {
		in := ApplyFuelTypeDefaults(StationInputs{FuelType: M2})
		require.NotNil(t, in.PercentConifer)
		assert.InDelta(t, 50.0, *in.PercentConifer, 1e-9)
		require.NotNil(t, in.CrownBaseHeight)
		assert.InDelta(t, 6.0, *in.CrownBaseHeight, 1e-9)
		assert.Nil(t, in.CrownFuelLoad, "crown fuel load is resolved at calculation time")
	})

	t.Run("keeps caller values", func(t *testing.T) {
		in := ApplyFuelTypeDefaults(StationInputs{FuelType: C2, CrownBaseHeight: Float(5)})
		assert.InDelta(t, 5.0, *in.CrownBaseHeight, 1e-9)
	})

	t.Run("does not alias the defaults", func(t *testing.T) {
		in := ApplyFuelTypeDefaults(StationInputs{FuelType: C3})
		*in.CrownBaseHeight = 99
		assert.InDelta(t, 8.0, *DefaultsFor(C3).CrownBaseHeight, 1e-9)
	})
}
