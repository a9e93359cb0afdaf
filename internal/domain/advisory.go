package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// FireType classifies a fire by how much of the crown it consumes.
type FireType string

const (
	Surface           FireType = "SUR"
	IntermittentCrown FireType = "IC"
	ContinuousCrown   FireType = "CC"
)

// ClassifyFireType maps crown fraction burned to a fire type. Deciduous D1
// stands are always surface fires. Values below 0.1 are surface and values
// from 0.9 up are continuous crown; only a CFB that fits no band (NaN) fails.
func ClassifyFireType(ft FuelType, cfb float64) (FireType, error) {
	if ft == D1 {
		return Surface, nil
	}
	switch {
	case cfb < 0.1:
		return Surface, nil
	case cfb < 0.9:
		return IntermittentCrown, nil
	case cfb >= 0.9:
		return ContinuousCrown, nil
	default:
		return "", fmt.Errorf("%w: crown fraction burned %v", ErrCannotClassifyFireType, cfb)
	}
}

// IntensityGroup buckets head fire intensity into the 1-5 planning scale.
type IntensityGroup int

// IntensityGroupFor returns the intensity group for hfi in kW/m:
//
//	HFI        IG
//	0-499      1
//	500-999    2
//	1000-1999  3
//	2000-3999  4
//	4000+      5
func IntensityGroupFor(hfi float64) IntensityGroup {
	switch {
	case hfi < 500:
		return 1
	case hfi < 1000:
		return 2
	case hfi < 2000:
		return 3
	case hfi < 4000:
		return 4
	default:
		return 5
	}
}

// CriticalHours is a window on the 24h clock during which HFI is expected to
// meet a target. End before Start means the window wraps through midnight.
type CriticalHours struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// AllDay is the canonical window for a target met at every hour.
var AllDay = CriticalHours{Start: float64(SolarNoon), End: float64(MorningFloor)}

// Target head fire intensities (kW/m) for which critical hours are reported.
const (
	TargetHFI4000  = 4000.0
	TargetHFI10000 = 10000.0
)

// FireBehaviourAdvisory is the computed fire behaviour for one station and
// fuel type. The _t variants assume 60 minutes since ignition.
type FireBehaviourAdvisory struct {
	StationCode int      `json:"station_code"`
	FuelType    FuelType `json:"fuel_type"`

	HFI                  float64        `json:"hfi"`
	ROS                  float64        `json:"ros"`
	FireType             FireType       `json:"fire_type"`
	CFB                  float64        `json:"cfb"`
	FlameLength          float64        `json:"flame_length"`
	IntensityGroup       IntensityGroup `json:"intensity_group"`
	ISI                  float64        `json:"isi"`
	FWI                  float64        `json:"fwi"`
	SixtyMinuteFireSize  float64        `json:"sixty_minute_fire_size"`
	ThirtyMinuteFireSize float64        `json:"thirty_minute_fire_size"`

	CriticalHoursHFI4000  *CriticalHours `json:"critical_hours_hfi_4000"`
	CriticalHoursHFI10000 *CriticalHours `json:"critical_hours_hfi_10000"`

	HFIT                 float64 `json:"hfi_t"`
	ROST                 float64 `json:"ros_t"`
	CFBT                 float64 `json:"cfb_t"`
	SixtyMinuteFireSizeT float64 `json:"sixty_minute_fire_size_t"`

	ComputedAt time.Time `json:"computed_at"`
}

// FireBehaviourPrediction is the reduced prediction used for planning tools.
type FireBehaviourPrediction struct {
	ROS                 float64        `json:"ros"`
	HFI                 float64        `json:"hfi"`
	IntensityGroup      IntensityGroup `json:"intensity_group"`
	SixtyMinuteFireSize float64        `json:"sixty_minute_fire_size"`
	FireType            FireType       `json:"fire_type"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParseStationInputs decodes a source message into station inputs.
func ParseStationInputs(raw RawEvent) (StationInputs, error) {
	var in StationInputs
	if err := json.Unmarshal(raw.Value, &in); err != nil {
		return StationInputs{}, fmt.Errorf("%w: decode station inputs: %w", ErrInvalidInput, err)
	}
	if in.FuelType == "" {
		return StationInputs{}, fmt.Errorf("%w: fuel type is required", ErrInvalidInput)
	}
	return in, nil
}
