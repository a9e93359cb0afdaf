package diurnal

import (
	"fmt"
	"strconv"
	"strings"
)

// RHRange is a closed interval of whole relative humidity percentages.
type RHRange struct {
	Lower int
	Upper int
}

// ParseRHRange parses a bucket label such as "58-77".
func ParseRHRange(s string) (RHRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return RHRange{}, fmt.Errorf("%w: rh bucket %q", ErrMalformedTable, s)
	}
	lower, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return RHRange{}, fmt.Errorf("%w: rh bucket %q: %v", ErrMalformedTable, s, err)
	}
	upper, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return RHRange{}, fmt.Errorf("%w: rh bucket %q: %v", ErrMalformedTable, s, err)
	}
	if lower > upper {
		return RHRange{}, fmt.Errorf("%w: rh bucket %q is inverted", ErrMalformedTable, s)
	}
	return RHRange{Lower: lower, Upper: upper}, nil
}

// Contains reports whether rh lies within the bucket, bounds included.
func (r RHRange) Contains(rh int) bool {
	return r.Lower <= rh && rh <= r.Upper
}

func (r RHRange) String() string {
	return fmt.Sprintf("%d-%d", r.Lower, r.Upper)
}
