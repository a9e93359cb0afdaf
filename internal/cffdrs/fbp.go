package cffdrs

import (
	"math"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// GrassFuelLoad is the standard grass fuel load (kg/m²) for O1A/O1B.
const GrassFuelLoad = 0.35

// minValue replaces non-positive spread rates and consumptions.
const minValue = 1e-6

// Stand holds the optional stand attributes some fuel types require.
type Stand struct {
	PercentConifer       *float64
	PercentDeadBalsamFir *float64
	GrassCure            *float64
	CrownBaseHeight      *float64
}

type spreadCoefficients struct{ a, b, c float64 }

var rsiCoefficients = map[domain.FuelType]spreadCoefficients{
	domain.C1:  {90, 0.0649, 4.5},
	domain.C2:  {110, 0.0282, 1.5},
	domain.C3:  {110, 0.0444, 3.0},
	domain.C4:  {110, 0.0293, 1.5},
	domain.C5:  {30, 0.0697, 4.0},
	domain.C6:  {30, 0.0800, 3.0},
	domain.C7:  {45, 0.0305, 2.0},
	domain.D1:  {30, 0.0232, 1.6},
	domain.M1:  {}, // blend of C2 and D1
	domain.M2:  {}, // blend of C2 and D1
	domain.M3:  {120, 0.0572, 1.4},
	domain.M4:  {100, 0.0404, 1.48},
	domain.S1:  {75, 0.0297, 1.3},
	domain.S2:  {40, 0.0438, 1.7},
	domain.S3:  {55, 0.0829, 3.2},
	domain.O1A: {190, 0.0310, 1.4},
	domain.O1B: {250, 0.0350, 1.7},
}

type buildupCoefficients struct{ buio, q float64 }

var beCoefficients = map[domain.FuelType]buildupCoefficients{
	domain.C1:  {72, 0.9},
	domain.C2:  {64, 0.7},
	domain.C3:  {62, 0.75},
	domain.C4:  {66, 0.8},
	domain.C5:  {56, 0.8},
	domain.C6:  {62, 0.8},
	domain.C7:  {106, 0.85},
	domain.D1:  {32, 0.9},
	domain.M1:  {50, 0.8},
	domain.M2:  {50, 0.8},
	domain.M3:  {50, 0.8},
	domain.M4:  {50, 0.8},
	domain.S1:  {38, 0.75},
	domain.S2:  {63, 0.75},
	domain.S3:  {31, 0.75},
	domain.O1A: {1, 1},
	domain.O1B: {1, 1},
}

// noBUI disables the buildup effect inside the mixedwood blends.
const noBUI = -1.0

func supported(ft domain.FuelType) bool {
	_, ok := rsiCoefficients[ft]
	return ok
}

// SurfaceFuelConsumption returns surface fuel consumption (kg/m²).
func SurfaceFuelConsumption(ft domain.FuelType, bui, ffmc float64, pc *float64) (float64, error) {
	const op = "surface fuel consumption"
	var sfc float64
	switch ft {
	case domain.C1:
		if ffmc > 84 {
			sfc = 0.75 + 0.75*math.Sqrt(1-math.Exp(-0.23*(ffmc-84)))
		} else {
			sfc = 0.75 - 0.75*math.Sqrt(1-math.Exp(0.23*(ffmc-84)))
		}
	case domain.C2, domain.M3, domain.M4:
		sfc = 5 * (1 - math.Exp(-0.0115*bui))
	case domain.C3, domain.C4:
		sfc = 5 * math.Pow(1-math.Exp(-0.0164*bui), 2.24)
	case domain.C5, domain.C6:
		sfc = 5 * math.Pow(1-math.Exp(-0.0149*bui), 2.48)
	case domain.C7:
		if ffmc > 70 {
			sfc = 2 * (1 - math.Exp(-0.104*(ffmc-70)))
		}
		sfc += 1.5 * (1 - math.Exp(-0.0201*bui))
	case domain.D1:
		sfc = 1.5 * (1 - math.Exp(-0.0183*bui))
	case domain.M1, domain.M2:
		if pc == nil {
			return 0, missing(op, ft, "percent conifer")
		}
		sfc = *pc/100*(5*(1-math.Exp(-0.0115*bui))) + (100-*pc)/100*(1.5*(1-math.Exp(-0.0183*bui)))
	case domain.O1A, domain.O1B:
		sfc = GrassFuelLoad
	case domain.S1:
		sfc = 4*(1-math.Exp(-0.025*bui)) + 4*(1-math.Exp(-0.034*bui))
	case domain.S2:
		sfc = 10*(1-math.Exp(-0.013*bui)) + 6*(1-math.Exp(-0.06*bui))
	case domain.S3:
		sfc = 12*(1-math.Exp(-0.0166*bui)) + 20*(1-math.Exp(-0.021*bui))
	default:
		return 0, unsupported(op, ft)
	}
	if sfc <= 0 {
		sfc = minValue
	}
	return sfc, nil
}

// BuildupEffect returns the BUI adjustment to rate of spread. A non-positive
// BUI disables the effect.
func BuildupEffect(ft domain.FuelType, bui float64) (float64, error) {
	c, ok := beCoefficients[ft]
	if !ok {
		return 0, unsupported("buildup effect", ft)
	}
	if bui <= 0 || c.buio <= 0 {
		return 1, nil
	}
	return math.Exp(50 * math.Log(c.q) * (1/bui - 1/c.buio)), nil
}

// RateOfSpread returns the equilibrium head fire rate of spread (m/min).
func RateOfSpread(ft domain.FuelType, isi, bui, fmc, sfc float64, stand Stand) (float64, error) {
	if ft == domain.C6 {
		r, err := c6Spread(isi, bui, fmc, sfc, stand.CrownBaseHeight)
		if err != nil {
			return 0, err
		}
		return clampMin(r.ros), nil
	}
	rsi, err := initialSpreadRate(ft, isi, stand)
	if err != nil {
		return 0, err
	}
	be, err := BuildupEffect(ft, bui)
	if err != nil {
		return 0, err
	}
	return clampMin(be * rsi), nil
}

func clampMin(v float64) float64 {
	if v <= 0 {
		return minValue
	}
	return v
}

func baseRSI(ft domain.FuelType, isi float64) float64 {
	c := rsiCoefficients[ft]
	return c.a * math.Pow(1-math.Exp(-c.b*isi), c.c)
}

// initialSpreadRate is the rate of spread before the buildup effect.
func initialSpreadRate(ft domain.FuelType, isi float64, stand Stand) (float64, error) {
	const op = "rate of spread"
	switch ft {
	case domain.M1, domain.M2:
		if stand.PercentConifer == nil {
			return 0, missing(op, ft, "percent conifer")
		}
		pc := *stand.PercentConifer
		deciduous := 1.0
		if ft == domain.M2 {
			deciduous = 0.2
		}
		return pc/100*baseRSI(domain.C2, isi) + deciduous*(100-pc)/100*baseRSI(domain.D1, isi), nil
	case domain.M3, domain.M4:
		if stand.PercentDeadBalsamFir == nil {
			return 0, missing(op, ft, "percent dead balsam fir")
		}
		pdf := *stand.PercentDeadBalsamFir
		deciduous := 1.0
		if ft == domain.M4 {
			deciduous = 0.2
		}
		return pdf/100*baseRSI(ft, isi) + deciduous*(1-pdf/100)*baseRSI(domain.D1, isi), nil
	case domain.O1A, domain.O1B:
		if stand.GrassCure == nil {
			return 0, missing(op, ft, "grass cure")
		}
		return baseRSI(ft, isi) * curingFactor(*stand.GrassCure), nil
	}
	if !supported(ft) {
		return 0, unsupported(op, ft)
	}
	return baseRSI(ft, isi), nil
}

func curingFactor(cc float64) float64 {
	if cc < 58.8 {
		return 0.005 * (math.Exp(0.061*cc) - 1)
	}
	return 0.176 + 0.02*(cc-58.8)
}

type c6Result struct {
	ros, cfb float64
}

// c6Spread models C6 plantations as separate surface and crown fires.
func c6Spread(isi, bui, fmc, sfc float64, cbh *float64) (c6Result, error) {
	if cbh == nil {
		return c6Result{}, missing("rate of spread", domain.C6, "crown base height")
	}
	const fmeAvg = 0.778
	fme := math.Pow(1.5-0.00275*fmc, 4) / (460 + 25.9*fmc) * 1000
	be, _ := BuildupEffect(domain.C6, bui)
	rss := 30 * math.Pow(1-math.Exp(-0.08*isi), 3) * be
	rsc := 60 * (1 - math.Exp(-0.0497*isi)) * fme / fmeAvg
	if rsc <= rss {
		return c6Result{ros: rss}, nil
	}
	cfb := crownFraction(fmc, sfc, rss, *cbh)
	return c6Result{ros: rss + cfb*(rsc-rss), cfb: cfb}, nil
}

// CriticalSurfaceIntensity is the surface intensity (kW/m) needed to ignite the crown.
func CriticalSurfaceIntensity(fmc, cbh float64) float64 {
	return 0.001 * math.Pow(cbh, 1.5) * math.Pow(460+25.9*fmc, 1.5)
}

func crownFraction(fmc, sfc, ros, cbh float64) float64 {
	rso := CriticalSurfaceIntensity(fmc, cbh) / (300 * sfc)
	if ros > rso {
		return 1 - math.Exp(-0.23*(ros-rso))
	}
	return 0
}

// CrownFractionBurned returns the fraction [0, 1] of the crown consumed.
func CrownFractionBurned(ft domain.FuelType, fmc, sfc, ros float64, cbh *float64) (float64, error) {
	if !supported(ft) {
		return 0, unsupported("crown fraction burned", ft)
	}
	if cbh == nil {
		return 0, missing("crown fraction burned", ft, "crown base height")
	}
	return crownFraction(fmc, sfc, ros, *cbh), nil
}

// TotalFuelConsumption returns surface plus crown fuel consumption (kg/m²).
func TotalFuelConsumption(ft domain.FuelType, cfb, sfc, cfl float64, stand Stand) (float64, error) {
	const op = "total fuel consumption"
	if !supported(ft) {
		return 0, unsupported(op, ft)
	}
	cfc := cfl * cfb
	switch ft {
	case domain.M1, domain.M2:
		if stand.PercentConifer == nil {
			return 0, missing(op, ft, "percent conifer")
		}
		cfc *= *stand.PercentConifer / 100
	case domain.M3, domain.M4:
		if stand.PercentDeadBalsamFir == nil {
			return 0, missing(op, ft, "percent dead balsam fir")
		}
		cfc *= *stand.PercentDeadBalsamFir / 100
	}
	return sfc + cfc, nil
}

// FireIntensity is Byram's intensity (kW/m) from fuel consumption and spread rate.
func FireIntensity(fuelConsumption, ros float64) float64 {
	return 300 * fuelConsumption * ros
}

// HeadFireIntensity returns head fire intensity (kW/m).
func HeadFireIntensity(ft domain.FuelType, stand Stand, ros, cfb, cfl, sfc float64) (float64, error) {
	tfc, err := TotalFuelConsumption(ft, cfb, sfc, cfl, stand)
	if err != nil {
		return 0, err
	}
	return FireIntensity(tfc, ros), nil
}
