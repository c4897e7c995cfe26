package util

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mrsinham/markforge/internal/rng"
)

var countRangePattern = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)

// CountRange is an integer count that is either fixed (Min == Max) or
// sampled uniformly from [Min, Max] at generation time.
type CountRange struct {
	Min int
	Max int
}

// Fixed creates a CountRange holding a single value.
func Fixed(n int) CountRange {
	return CountRange{Min: n, Max: n}
}

// ParseCountRange parses a count specification like "50" or "20-80".
func ParseCountRange(s string) (CountRange, error) {
	matches := countRangePattern.FindStringSubmatch(s)
	if matches == nil {
		return CountRange{}, fmt.Errorf("invalid count: '%s'. Use a number like '50' or a range like '20-80'", s)
	}

	minVal, err := strconv.Atoi(matches[1])
	if err != nil {
		return CountRange{}, fmt.Errorf("invalid count value: %v", err)
	}

	maxVal := minVal
	if matches[2] != "" {
		maxVal, err = strconv.Atoi(matches[2])
		if err != nil {
			return CountRange{}, fmt.Errorf("invalid count value: %v", err)
		}
	}

	if maxVal < minVal {
		return CountRange{}, fmt.Errorf("invalid count range: %d-%d (max < min)", minVal, maxVal)
	}

	return CountRange{Min: minVal, Max: maxVal}, nil
}

// IsFixed reports whether the range holds a single value.
func (r CountRange) IsFixed() bool {
	return r.Min == r.Max
}

// IsZero reports whether the range was never set.
func (r CountRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Sample draws a count from the range using the run's random stream.
// Fixed ranges do not consume randomness, so toggling between a fixed
// count and a degenerate range does not shift later draws.
func (r CountRange) Sample(rs *rng.Stream) (int, error) {
	if r.IsFixed() {
		return r.Min, nil
	}
	return rs.IntInRange(r.Min, r.Max)
}

// String formats the range in the same syntax ParseCountRange accepts.
func (r CountRange) String() string {
	if r.IsFixed() {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}
