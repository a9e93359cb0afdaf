package diurnal

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// Model approximates the published diurnal curves by relaxing fine fuel
// moisture from the daily (17:00) value. It regenerates the bundled tables.
type Model struct {
	// MinFFMC and MaxFFMC bound the row keys, in whole FFMC steps.
	MinFFMC int
	MaxFFMC int
}

// DefaultModel covers the range of the bundled tables.
var DefaultModel = Model{MinFFMC: 40, MaxFFMC: 101}

// afternoonHours lists the afternoon/overnight columns in table order.
var afternoonHours = []int{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 0, 1, 2, 3, 4, 5, 6, 7}

// moistureFactors scale the 17:00 fine fuel moisture content at each hour.
var moistureFactors = map[int]float64{
	13: 1.22, 14: 1.12, 15: 1.05, 16: 1.01, 17: 1.0, 18: 1.04, 19: 1.12,
	20: 1.25, 21: 1.42, 22: 1.62, 23: 1.85, 0: 2.05, 1: 2.2, 2: 2.35,
	3: 2.48, 4: 2.6, 5: 2.7, 6: 2.78, 7: 2.84,
}

var morningBuckets = []RHRange{{0, 57}, {58, 77}, {78, 100}}

// equilibriumMoisture is the morning equilibrium moisture content per RH bucket.
var equilibriumMoisture = []float64{8, 15, 24}

const (
	morningDryingRate = 0.335
	overnightRecovery = 1.6
	maxMoisture       = 150.0
)

func moistureFromFFMC(ffmc float64) float64 {
	return 147.2 * (101 - ffmc) / (59.5 + ffmc)
}

func ffmcFromMoisture(m float64) float64 {
	m = math.Min(m, maxMoisture)
	f := (14867.2 - 59.5*m) / (147.2 + m)
	return math.Max(0, math.Min(101, f))
}

// round1 rounds to the table's one-decimal precision.
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

// AfternoonRow returns the modelled FFMC for each afternoonHours column.
func (m Model) AfternoonRow(daily float64) []float64 {
	md := moistureFromFFMC(daily)
	row := make([]float64, len(afternoonHours))
	for i, h := range afternoonHours {
		if h == dailyFFMCHour {
			row[i] = daily
			continue
		}
		row[i] = round1(ffmcFromMoisture(md * moistureFactors[h]))
	}
	return row
}

// MorningValue returns the modelled FFMC at a morning hour for each RH bucket.
func (m Model) MorningValue(hour int, prevDaily float64, bucket int) float64 {
	mp := overnightRecovery * moistureFromFFMC(prevDaily)
	e := equilibriumMoisture[bucket]
	return round1(ffmcFromMoisture(e + (mp-e)*math.Exp(-morningDryingRate*float64(hour-5))))
}

func format1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// WriteAfternoonCSV writes the afternoon/overnight table.
func (m Model) WriteAfternoonCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(afternoonHours))
	for i, h := range afternoonHours {
		header[i] = strconv.Itoa(h)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for d := m.MinFFMC; d <= m.MaxFFMC; d++ {
		row := m.AfternoonRow(float64(d))
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = format1(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMorningCSV writes the morning table with its two-row header.
func (m Model) WriteMorningCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	hours := []string{""}
	buckets := []string{"ffmc"}
	for h := int(domain.MorningFloor); h <= int(domain.MorningStart); h++ {
		for b, r := range morningBuckets {
			label := ""
			if b == 0 {
				label = strconv.Itoa(h)
			}
			hours = append(hours, label)
			buckets = append(buckets, r.String())
		}
	}
	if err := cw.Write(hours); err != nil {
		return err
	}
	if err := cw.Write(buckets); err != nil {
		return err
	}
	for p := m.MinFFMC; p <= m.MaxFFMC; p++ {
		rec := []string{format1(float64(p))}
		for h := int(domain.MorningFloor); h <= int(domain.MorningStart); h++ {
			for b := range morningBuckets {
				rec = append(rec, format1(m.MorningValue(h, float64(p), b)))
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
