// Command gendiurnal regenerates the bundled diurnal FFMC tables from the
// moisture relaxation model in package diurnal.
//
// Usage:
//
//	go run ./cmd/gendiurnal \
//	  -afternoon internal/diurnal/data/afternoon_overnight.csv \
//	  -morning internal/diurnal/data/morning.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/diurnal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	afternoonOut := flag.String("afternoon", "internal/diurnal/data/afternoon_overnight.csv", "output path for the afternoon/overnight table")
	morningOut := flag.String("morning", "internal/diurnal/data/morning.csv", "output path for the morning table")
	minFFMC := flag.Int("min-ffmc", diurnal.DefaultModel.MinFFMC, "lowest daily FFMC row")
	maxFFMC := flag.Int("max-ffmc", diurnal.DefaultModel.MaxFFMC, "highest daily FFMC row")
	flag.Parse()

	if *minFFMC < 0 || *maxFFMC > 101 || *minFFMC >= *maxFFMC {
		flag.Usage()
		return fmt.Errorf("invalid FFMC range %d..%d", *minFFMC, *maxFFMC)
	}
	model := diurnal.Model{MinFFMC: *minFFMC, MaxFFMC: *maxFFMC}

	if err := writeFile(*afternoonOut, model.WriteAfternoonCSV); err != nil {
		return fmt.Errorf("afternoon table: %w", err)
	}
	if err := writeFile(*morningOut, model.WriteMorningCSV); err != nil {
		return fmt.Errorf("morning table: %w", err)
	}

	rows := model.MaxFFMC - model.MinFFMC + 1
	fmt.Printf("Wrote %d rows to %s\n", rows, *afternoonOut)
	fmt.Printf("Wrote %d rows to %s\n", rows, *morningOut)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
