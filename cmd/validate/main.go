// Command validate checks the structural integrity of the diurnal FFMC tables
// before they are shipped or supplied through DIURNAL_AFTERNOON_TABLE and
// DIURNAL_MORNING_TABLE. It verifies hour coverage, RH bucket coverage,
// FFMC bounds, row ordering, and a set of published anchor cells.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -afternoon internal/diurnal/data/afternoon_overnight.csv \
//	  -morning internal/diurnal/data/morning.csv
//
// Omitting a flag validates the bundled table for that curve.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
)

// expectedAfternoonHours are the afternoon/overnight columns, 13:00 through 07:00.
var expectedAfternoonHours = []float64{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 0, 1, 2, 3, 4, 5, 6, 7}

// anchor is a table cell whose value is known from the published curves.
type anchor struct {
	name  string
	hour  domain.Hour
	ffmc  float64
	rh    *float64 // nil for the afternoon table
	value float64
}

var anchors = []anchor{
	{name: "afternoon 13:00, daily 55", hour: 13, ffmc: 55, value: 48.2},
	{name: "afternoon 16:00, daily 92", hour: 16, ffmc: 92, value: 91.9},
	{name: "afternoon 17:00 equals daily", hour: 17, ffmc: 92, value: 92.0},
	{name: "morning 07:00, prev 55, RH 67", hour: 7, ffmc: 55, rh: domain.Float(67), value: 56.9},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	afternoon := flag.String("afternoon", "", "afternoon/overnight table CSV (default: bundled)")
	morning := flag.String("morning", "", "morning table CSV (default: bundled)")
	flag.Parse()

	os.Exit(run(*afternoon, *morning))
}

func run(afternoonPath, morningPath string) int {
	fmt.Println("=== Diurnal FFMC Table Validation ===")
	fmt.Println()

	table, err := diurnal.LoadFiles(afternoonPath, morningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load tables: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHourCoverage(table),
		validateRHBuckets(table),
		validateBounds(table),
		validateOrdering(table),
		validateAnchors(table),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d afternoon/overnight, %d morning\n", len(table.DailyFFMCs()), len(table.PrevDayFFMCs()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-20)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println("\nAll checks passed.")
	return 0
}

func validateHourCoverage(t *diurnal.Table) *phase {
	p := &phase{name: "Hour coverage"}
	if got := t.AfternoonHours(); !slices.Equal(got, expectedAfternoonHours) {
		p.errorf("afternoon hours = %v, want %v", got, expectedAfternoonHours)
	}
	var want []int
	for h := int(domain.MorningFloor); h <= int(domain.MorningStart); h++ {
		want = append(want, h)
	}
	if got := t.MorningHours(); !slices.Equal(got, want) {
		p.errorf("morning hours = %v, want %v", got, want)
	}
	return p
}

// validateRHBuckets checks that each morning hour's buckets tile 0–100
// without gaps or overlaps.
func validateRHBuckets(t *diurnal.Table) *phase {
	p := &phase{name: "Morning RH buckets cover 0-100"}
	for _, h := range t.MorningHours() {
		ranges := t.MorningRanges(h)
		if len(ranges) == 0 {
			p.errorf("%d:00 has no RH buckets", h)
			continue
		}
		next := 0
		for _, r := range ranges {
			if r.Lower != next {
				p.errorf("%d:00 bucket %s starts at %d, want %d", h, r, r.Lower, next)
			}
			next = r.Upper + 1
		}
		if next != 101 {
			p.errorf("%d:00 buckets end at %d, want 100", h, next-1)
		}
	}
	return p
}

func inFFMCRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 101
}

func validateBounds(t *diurnal.Table) *phase {
	p := &phase{name: "FFMC values within 0-101"}
	for _, daily := range t.DailyFFMCs() {
		for _, h := range t.AfternoonHours() {
			hour := domain.Hour(h)
			if h < float64(domain.SolarNoon) {
				hour += domain.HoursPerDay
			}
			if v := t.AfternoonOvernight(hour, daily); !inFFMCRange(v) {
				p.errorf("afternoon daily=%.1f hour=%v: %v", daily, h, v)
			}
		}
	}
	for _, prev := range t.PrevDayFFMCs() {
		for _, h := range t.MorningHours() {
			for _, r := range t.MorningRanges(h) {
				v, err := t.Morning(domain.Hour(h), prev, float64(r.Lower))
				if err != nil {
					p.errorf("morning prev=%.1f hour=%d rh=%s: %v", prev, h, r, err)
					continue
				}
				if !inFFMCRange(v) {
					p.errorf("morning prev=%.1f hour=%d rh=%s: %v", prev, h, r, v)
				}
			}
		}
	}
	return p
}

// validateOrdering checks that row keys ascend strictly and that each
// afternoon row peaks at the daily (17:00) value.
func validateOrdering(t *diurnal.Table) *phase {
	p := &phase{name: "Row ordering"}
	checkAscending(p, "afternoon", t.DailyFFMCs())
	checkAscending(p, "morning", t.PrevDayFFMCs())
	for _, daily := range t.DailyFFMCs() {
		peak := t.AfternoonOvernight(17, daily)
		for h := domain.SolarNoon; h < domain.NextDayFold; h++ {
			if v := t.AfternoonOvernight(h, daily); v > peak {
				p.errorf("daily=%.1f: %v:00 value %.1f exceeds 17:00 value %.1f", daily, float64(h), v, peak)
			}
		}
	}
	return p
}

func checkAscending(p *phase, name string, keys []float64) {
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			p.errorf("%s row %d key %.1f not above previous %.1f", name, i, keys[i], keys[i-1])
		}
	}
}

func validateAnchors(t *diurnal.Table) *phase {
	p := &phase{name: "Published anchor cells"}
	for _, a := range anchors {
		var got float64
		if a.rh == nil {
			got = t.AfternoonOvernight(a.hour, a.ffmc)
		} else {
			v, err := t.Morning(a.hour, a.ffmc, *a.rh)
			if err != nil {
				p.errorf("%s: %v", a.name, err)
				continue
			}
			got = v
		}
		if math.Abs(got-a.value) > 0.05 {
			p.errorf("%s: got %.1f, want %.1f", a.name, got, a.value)
		}
	}
	return p
}
