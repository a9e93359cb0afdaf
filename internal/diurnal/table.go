// Package diurnal looks up hourly FFMC values from diurnal FFMC curves
// shaped like the published tables (Red Book, 3rd ed., 2018, tables 4.1 and
// 4.2).
//
// The afternoon/overnight table gives FFMC for 13:00 through 07:00 the next
// morning, indexed by the daily FFMC, which equals the 17:00 value. The
// morning table gives FFMC for 07:00 through 12:00, indexed by the previous
// day's daily FFMC and bucketed by the hour's relative humidity.
//
// The bundled tables are generated by [Model], a moisture relaxation
// approximation of the published curves. The published tables can be
// supplied instead through [LoadFiles].
//
// A Table is immutable once loaded and safe for concurrent use.
package diurnal

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

var (
	// ErrMalformedTable is returned when a table file cannot be parsed.
	ErrMalformedTable = errors.New("malformed diurnal table")
	// ErrRHOutOfRange is returned when no morning RH bucket contains the humidity.
	ErrRHOutOfRange = errors.New("relative humidity outside morning table buckets")
	// ErrHourNotInTable is returned for a morning hour the table does not cover.
	ErrHourNotInTable = errors.New("hour not covered by morning table")
)

//go:embed data/afternoon_overnight.csv
var afternoonCSV []byte

//go:embed data/morning.csv
var morningCSV []byte

// dailyFFMCHour is the afternoon column whose value is the daily FFMC.
const dailyFFMCHour = 17

// Table holds both diurnal curves.
type Table struct {
	afternoon afternoonTable
	morning   morningTable
}

type afternoonTable struct {
	keys  []float64 // daily FFMC per row
	hours []float64 // column hours, excluding the key column
	cells [][]float64
}

type morningColumn struct {
	rh  RHRange
	col int
}

type morningTable struct {
	keys    []float64 // previous day's daily FFMC per row
	columns map[int][]morningColumn
	hours   []int
	cells   [][]float64
}

// Load parses both tables from CSV.
func Load(afternoon, morning io.Reader) (*Table, error) {
	a, err := parseAfternoon(afternoon)
	if err != nil {
		return nil, fmt.Errorf("afternoon/overnight table: %w", err)
	}
	m, err := parseMorning(morning)
	if err != nil {
		return nil, fmt.Errorf("morning table: %w", err)
	}
	return &Table{afternoon: a, morning: m}, nil
}

// LoadFiles loads the tables from disk. An empty path selects the bundled
// table for that curve.
func LoadFiles(afternoonPath, morningPath string) (*Table, error) {
	a, err := readOrBundled(afternoonPath, afternoonCSV)
	if err != nil {
		return nil, err
	}
	m, err := readOrBundled(morningPath, morningCSV)
	if err != nil {
		return nil, err
	}
	return Load(bytes.NewReader(a), bytes.NewReader(m))
}

func readOrBundled(path string, bundled []byte) ([]byte, error) {
	if path == "" {
		return bundled, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read diurnal table: %w", err)
	}
	return data, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the bundled tables, parsed on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(afternoonCSV), bytes.NewReader(morningCSV))
		if err != nil {
			panic(fmt.Sprintf("bundled diurnal tables: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// AfternoonOvernight returns the FFMC at hour h for a day whose daily FFMC
// is dailyFFMC. Hours from 23.5 onward are read from the next-morning
// columns. The nearest row and nearest column are used; a column tie goes to
// the later hour.
func (t *Table) AfternoonOvernight(h domain.Hour, dailyFFMC float64) float64 {
	row := nearest(t.afternoon.keys, dailyFFMC)
	hour := float64(h)
	if h >= domain.NextDayFold {
		hour -= float64(domain.HoursPerDay)
	}

	best := -1
	bestDiff := math.Inf(1)
	for i, colHour := range t.afternoon.hours {
		d := math.Abs(colHour - hour)
		if d < bestDiff || (d == bestDiff && colHour > t.afternoon.hours[best]) {
			best, bestDiff = i, d
		}
	}
	return t.afternoon.cells[row][best]
}

// Morning returns the FFMC at morning hour h given the previous day's daily
// FFMC and the relative humidity observed at that hour. RH is rounded to the
// nearest whole percent before bucketing.
func (t *Table) Morning(h domain.Hour, prevDayDailyFFMC, rh float64) (float64, error) {
	columns, ok := t.morning.columns[int(h)]
	if !ok || float64(int(h)) != float64(h) {
		return 0, fmt.Errorf("%w: %v", ErrHourNotInTable, float64(h))
	}
	row := nearest(t.morning.keys, prevDayDailyFFMC)
	pct := int(math.Floor(rh + 0.5))
	for _, c := range columns {
		if c.rh.Contains(pct) {
			return t.morning.cells[row][c.col], nil
		}
	}
	return 0, fmt.Errorf("%w: %v%% at %v:00", ErrRHOutOfRange, rh, int(h))
}

// DailyFFMCs returns the afternoon table's row keys.
func (t *Table) DailyFFMCs() []float64 {
	return append([]float64(nil), t.afternoon.keys...)
}

// PrevDayFFMCs returns the morning table's row keys.
func (t *Table) PrevDayFFMCs() []float64 {
	return append([]float64(nil), t.morning.keys...)
}

// AfternoonHours returns the afternoon/overnight column hours in table order.
func (t *Table) AfternoonHours() []float64 {
	return append([]float64(nil), t.afternoon.hours...)
}

// MorningHours returns the morning hours in table order.
func (t *Table) MorningHours() []int {
	return append([]int(nil), t.morning.hours...)
}

// MorningRanges returns the RH buckets for a morning hour in table order.
func (t *Table) MorningRanges(hour int) []RHRange {
	cols := t.morning.columns[hour]
	out := make([]RHRange, len(cols))
	for i, c := range cols {
		out[i] = c.rh
	}
	return out
}

// nearest returns the index of the key closest to v, preferring the first
// on a tie.
func nearest(keys []float64, v float64) int {
	best := 0
	bestDiff := math.Abs(keys[0] - v)
	for i := 1; i < len(keys); i++ {
		if d := math.Abs(keys[i] - v); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
