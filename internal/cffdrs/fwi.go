package cffdrs

import "math"

// ffmcMoisture converts FFMC to fine fuel moisture content (%), using the
// 1987 FWI System moisture scale.
func ffmcMoisture(ffmc float64) float64 {
	return 147.2 * (101 - ffmc) / (59.5 + ffmc)
}

// fineFuelMoistureFunction is the FFMC component of the spread index.
func fineFuelMoistureFunction(ffmc float64) float64 {
	m := ffmcMoisture(ffmc)
	return 91.9 * math.Exp(-0.1386*m) * (1 + math.Pow(m, 5.31)/4.93e7)
}

// InitialSpreadIndex combines FFMC and 10 m wind speed (km/h) into ISI.
func InitialSpreadIndex(ffmc, windSpeed float64) float64 {
	return 0.208 * math.Exp(0.05039*windSpeed) * fineFuelMoistureFunction(ffmc)
}

// FireWeatherIndex combines ISI and BUI into FWI.
func FireWeatherIndex(isi, bui float64) float64 {
	var fD float64
	if bui > 80 {
		fD = 1000 / (25 + 108.64*math.Exp(-0.023*bui))
	} else {
		fD = 0.626*math.Pow(bui, 0.809) + 2
	}
	b := 0.1 * isi * fD
	if b <= 1 {
		return b
	}
	return math.Exp(2.72 * math.Pow(0.434*math.Log(b), 0.647))
}
