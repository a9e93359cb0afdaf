package diurnal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	return records, nil
}

func parseCell(s string, line, col int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d column %d: %q", ErrMalformedTable, line, col+1, s)
	}
	return v, nil
}

// parseAfternoon reads a table whose header row lists the hours of day and
// whose 17:00 column holds the daily FFMC row key.
func parseAfternoon(r io.Reader) (afternoonTable, error) {
	records, err := readRecords(r)
	if err != nil {
		return afternoonTable{}, err
	}
	if len(records) < 2 {
		return afternoonTable{}, fmt.Errorf("%w: no data rows", ErrMalformedTable)
	}

	keyCol := -1
	var t afternoonTable
	var dataCols []int
	for i, h := range records[0] {
		hour, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return afternoonTable{}, fmt.Errorf("%w: header hour %q", ErrMalformedTable, h)
		}
		if hour == dailyFFMCHour {
			keyCol = i
			continue
		}
		t.hours = append(t.hours, float64(hour))
		dataCols = append(dataCols, i)
	}
	if keyCol < 0 {
		return afternoonTable{}, fmt.Errorf("%w: no %d:00 column", ErrMalformedTable, dailyFFMCHour)
	}

	for n, rec := range records[1:] {
		line := n + 2
		key, err := parseCell(rec[keyCol], line, keyCol)
		if err != nil {
			return afternoonTable{}, err
		}
		row := make([]float64, len(dataCols))
		for j, c := range dataCols {
			if row[j], err = parseCell(rec[c], line, c); err != nil {
				return afternoonTable{}, err
			}
		}
		t.keys = append(t.keys, key)
		t.cells = append(t.cells, row)
	}
	return t, nil
}

// parseMorning reads a table with a two-row header: the first row names the
// hour above the first of its RH buckets, the second row names the buckets.
// The first column holds the previous day's daily FFMC row key.
func parseMorning(r io.Reader) (morningTable, error) {
	records, err := readRecords(r)
	if err != nil {
		return morningTable{}, err
	}
	if len(records) < 3 {
		return morningTable{}, fmt.Errorf("%w: no data rows", ErrMalformedTable)
	}

	t := morningTable{columns: make(map[int][]morningColumn)}
	hourRow, bucketRow := records[0], records[1]
	hour := -1
	for c := 1; c < len(hourRow); c++ {
		if label := strings.TrimSpace(hourRow[c]); label != "" {
			h, err := strconv.Atoi(label)
			if err != nil {
				return morningTable{}, fmt.Errorf("%w: header hour %q", ErrMalformedTable, label)
			}
			hour = h
			t.hours = append(t.hours, h)
		}
		if hour < 0 {
			return morningTable{}, fmt.Errorf("%w: bucket column %d has no hour", ErrMalformedTable, c+1)
		}
		rh, err := ParseRHRange(bucketRow[c])
		if err != nil {
			return morningTable{}, err
		}
		// Cells exclude the key column.
		t.columns[hour] = append(t.columns[hour], morningColumn{rh: rh, col: c - 1})
	}

	for n, rec := range records[2:] {
		line := n + 3
		key, err := parseCell(rec[0], line, 0)
		if err != nil {
			return morningTable{}, err
		}
		row := make([]float64, len(rec)-1)
		for c := 1; c < len(rec); c++ {
			if row[c-1], err = parseCell(rec[c], line, c); err != nil {
				return morningTable{}, err
			}
		}
		t.keys = append(t.keys, key)
		t.cells = append(t.cells, row)
	}
	return t, nil
}
