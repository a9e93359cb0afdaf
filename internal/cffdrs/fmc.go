package cffdrs

import "math"

// FoliarMoistureContent estimates foliar moisture content (%) for a location
// and day of year. The date of minimum FMC is derived from latitude,
// longitude and elevation; a negative elevation means elevation is unknown.
// Longitude may be given in either sign convention.
func FoliarMoistureContent(lat, long, elevation float64, dayOfYear int) float64 {
	long = math.Abs(long)

	var d0 float64
	if elevation < 0 {
		latN := 46 + 23.4*math.Exp(-0.036*(150-long))
		d0 = 151 * (lat / latN)
	} else {
		latN := 43 + 33.7*math.Exp(-0.0351*(150-long))
		d0 = 142.1*(lat/latN) + 0.0172*elevation
	}
	d0 = math.RoundToEven(d0)

	nd := math.Abs(float64(dayOfYear) - d0)
	switch {
	case nd < 30:
		return 85 + 0.0189*nd*nd
	case nd < 50:
		return 32.9 + 3.17*nd - 0.0288*nd*nd
	default:
		return 120
	}
}
