package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// StationInputs is everything needed to compute one advisory for a weather
// station and fuel type. Optional values are pointers; nil means unknown.
// Date is the calendar day of the advisory; only its year, month and day are
// used.
type StationInputs struct {
	StationCode int      `json:"station_code"`
	StationName string   `json:"station_name,omitempty"`
	FuelType    FuelType `json:"fuel_type"`

	Date      time.Time `json:"date"`
	Elevation float64   `json:"elevation"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"long"`

	PercentConifer       *float64 `json:"percentage_conifer,omitempty"`
	PercentDeadBalsamFir *float64 `json:"percentage_dead_balsam_fir,omitempty"`
	GrassCure            *float64 `json:"grass_cure,omitempty"`
	CrownBaseHeight      *float64 `json:"crown_base_height,omitempty"`
	CrownFuelLoad        *float64 `json:"crown_fuel_load,omitempty"`

	BUI              *float64 `json:"bui,omitempty"`
	FFMC             *float64 `json:"ffmc,omitempty"`
	ISI              *float64 `json:"isi,omitempty"`
	FWI              *float64 `json:"fwi,omitempty"`
	WindSpeed        *float64 `json:"wind_speed,omitempty"`
	WindDirection    *float64 `json:"wind_direction,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	RelativeHumidity *float64 `json:"relative_humidity,omitempty"`
	Precipitation    *float64 `json:"precipitation,omitempty"`
	Status           string   `json:"status,omitempty"`

	PrevDayDailyFFMC *float64            `json:"prev_day_daily_ffmc,omitempty"`
	MorningRH        RHObservationWindow `json:"last_observed_morning_rh_values,omitempty"`
}

// TimeOfInterest returns 20:00 on the advisory date in loc.
func (s StationInputs) TimeOfInterest(loc *time.Location) time.Time {
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, 20, 0, 0, 0, loc)
}

// Validate checks the inputs every advisory requires.
func (s StationInputs) Validate() error {
	switch {
	case s.WindSpeed == nil:
		return fmt.Errorf("%w: wind speed must be specified", ErrInvalidInput)
	case s.BUI == nil:
		return fmt.Errorf("%w: BUI is required", ErrInvalidInput)
	case s.FFMC == nil:
		return fmt.Errorf("%w: FFMC is required", ErrInvalidInput)
	case s.GrassCure == nil && s.FuelType.IsGrass():
		return fmt.Errorf("%w: grass cure must be specified for grass fuel types", ErrInvalidInput)
	}
	return nil
}

// Float returns a pointer to v, for building optional inputs.
func Float(v float64) *float64 {
	return &v
}

// Morning hours covered by an RHObservationWindow.
var morningRHHours = []int{7, 8, 9, 10, 11, 12}

// RHObservationWindow maps each morning hour (7 to 12, local time) to the most
// recently observed relative humidity at that hour. A nil value marks an hour
// with no observation.
type RHObservationWindow map[int]*float64

// At returns the RH observed at hour h, if any.
func (w RHObservationWindow) At(h Hour) (float64, bool) {
	v, ok := w[int(h)]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// UnmarshalJSON accepts hour keys written as "7" or "7.0".
func (w *RHObservationWindow) UnmarshalJSON(b []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(RHObservationWindow, len(raw))
	for k, v := range raw {
		h, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return fmt.Errorf("rh window hour %q: %w", k, err)
		}
		out[int(h)] = v
	}
	*w = out
	return nil
}

// HourlyReading is a single hourly weather station observation.
type HourlyReading struct {
	Time             time.Time `json:"datetime"`
	RelativeHumidity *float64  `json:"relative_humidity"`
}

// BuildMorningRHWindow scans readings newest-first and keeps the first RH
// seen for each morning hour, with hours taken in loc. Hours never observed
// map to nil.
func BuildMorningRHWindow(readings []HourlyReading, loc *time.Location) RHObservationWindow {
	sorted := make([]HourlyReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	w := make(RHObservationWindow, len(morningRHHours))
	for _, h := range morningRHHours {
		w[h] = nil
	}
	remaining := len(morningRHHours)
	for _, r := range sorted {
		if remaining == 0 {
			break
		}
		h := r.Time.In(loc).Hour()
		current, tracked := w[h]
		if !tracked || current != nil {
			continue
		}
		w[h] = copyFloat(r.RelativeHumidity)
		// An observation without RH does not fill the hour.
		if w[h] != nil {
			remaining--
		}
	}
	return w
}
