package domain

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FuelType is an FBP System benchmark fuel type code.
type FuelType string

const (
	C1  FuelType = "C1"
	C2  FuelType = "C2"
	C3  FuelType = "C3"
	C4  FuelType = "C4"
	C5  FuelType = "C5"
	C6  FuelType = "C6"
	C7  FuelType = "C7"
	C7B FuelType = "C7B"
	D1  FuelType = "D1"
	D2  FuelType = "D2"
	M1  FuelType = "M1"
	M2  FuelType = "M2"
	M3  FuelType = "M3"
	M4  FuelType = "M4"
	O1A FuelType = "O1A"
	O1B FuelType = "O1B"
	S1  FuelType = "S1"
	S2  FuelType = "S2"
	S3  FuelType = "S3"
)

// FuelTypes lists every supported code in canonical order.
var FuelTypes = []FuelType{C1, C2, C3, C4, C5, C6, C7, C7B, D1, D2, M1, M2, M3, M4, O1A, O1B, S1, S2, S3}

// ParseFuelType resolves a fuel type code, ignoring case and surrounding whitespace.
func ParseFuelType(s string) (FuelType, error) {
	code := FuelType(strings.ToUpper(strings.TrimSpace(s)))
	for _, ft := range FuelTypes {
		if ft == code {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFuelType, s)
}

// UnmarshalText lets fuel types decode from JSON strings and YAML keys.
func (f *FuelType) UnmarshalText(b []byte) error {
	ft, err := ParseFuelType(string(b))
	if err != nil {
		return err
	}
	*f = ft
	return nil
}

// IsGrass reports whether the fuel type is an open grass type, which needs a
// degree-of-curing observation.
func (f FuelType) IsGrass() bool {
	return f == O1A || f == O1B
}

// HasCrown reports whether the fuel type can carry a crown fire.
func (f FuelType) HasCrown() bool {
	switch f {
	case D1, O1A, O1B, S1, S2, S3:
		return false
	}
	return true
}

// FuelTypeDefaults are the published stand attributes used when a station's
// fuel record omits a value. A nil field is not applicable to the fuel type.
type FuelTypeDefaults struct {
	PercentConifer       *float64 `yaml:"percent_conifer"`
	PercentDeadBalsamFir *float64 `yaml:"percent_dead_balsam_fir"`
	CrownBaseHeight      *float64 `yaml:"crown_base_height"`
	CrownFuelLoad        *float64 `yaml:"crown_fuel_load"`
}

//go:embed fuel_types.yaml
var fuelTypesYAML []byte

var (
	fuelDefaultsOnce sync.Once
	fuelDefaults     map[FuelType]FuelTypeDefaults
)

func loadFuelDefaults() {
	m, err := parseFuelDefaults(fuelTypesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded fuel_types.yaml: %v", err))
	}
	fuelDefaults = m
}

func parseFuelDefaults(data []byte) (map[FuelType]FuelTypeDefaults, error) {
	var m map[FuelType]FuelTypeDefaults
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode fuel type defaults: %w", err)
	}
	for _, ft := range FuelTypes {
		if _, ok := m[ft]; !ok {
			return nil, fmt.Errorf("fuel type defaults: missing %s", ft)
		}
	}
	return m, nil
}

// DefaultsFor returns the published defaults for a fuel type. The lookup is
// total over FuelTypes.
func DefaultsFor(ft FuelType) FuelTypeDefaults {
	fuelDefaultsOnce.Do(loadFuelDefaults)
	return fuelDefaults[ft]
}

// ApplyFuelTypeDefaults fills unset stand attributes of in from the fuel
// type's defaults. Values supplied by the caller are never overwritten.
func ApplyFuelTypeDefaults(in StationInputs) StationInputs {
	d := DefaultsFor(in.FuelType)
	if in.PercentConifer == nil {
		in.PercentConifer = copyFloat(d.PercentConifer)
	}
	if in.PercentDeadBalsamFir == nil {
		in.PercentDeadBalsamFir = copyFloat(d.PercentDeadBalsamFir)
	}
	if in.CrownBaseHeight == nil {
		in.CrownBaseHeight = copyFloat(d.CrownBaseHeight)
	}
	return in
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
