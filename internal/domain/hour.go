package domain

import "math"

// Hour is a time of day on the extended clock used by the critical hours
// search: 13 is 13:00 today, 24 is midnight, 31 is 07:00 tomorrow.
type Hour float64

// Boundaries of the diurnal FFMC curves on the extended clock.
const (
	MorningFloor        Hour = 7    // earliest hour covered by the morning table
	MorningStart        Hour = 12   // last morning hour before solar noon
	SolarNoon           Hour = 13   // first hour of the afternoon/overnight table (LST noon in PDT)
	PostNoonProbe       Hour = 14   // first hour probed for the end of a morning-started window
	AfternoonProbeStart Hour = 16   // latest afternoon hour probed backwards for a start
	NextDayFold         Hour = 23.5 // extended hours at or past this fold onto next-day table columns
	WraparoundCeiling   Hour = 32   // 08:00 tomorrow; the end search never reaches it
	HoursPerDay         Hour = 24
)

// Day returns how many whole days h lies past the day it started on.
func (h Hour) Day() int {
	return int(math.Floor(float64(h) / float64(HoursPerDay)))
}

// Clock renormalises h into [0, 24).
func (h Hour) Clock() float64 {
	return float64(h) - float64(h.Day())*float64(HoursPerDay)
}
