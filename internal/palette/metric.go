package palette

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Metric selects the color-difference function used for nearest-color
// lookups (palette quantization during dithering).
type Metric int

const (
	MetricRGB Metric = iota
	MetricLab
	MetricLuv
	MetricCIE94
	MetricCIEDE2000
)

var metricNames = map[Metric]string{
	MetricRGB:       "rgb",
	MetricLab:       "lab",
	MetricLuv:       "luv",
	MetricCIE94:     "cie94",
	MetricCIEDE2000: "ciede2000",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric parses a metric name as accepted on the command line.
func ParseMetric(s string) (Metric, error) {
	for m, name := range metricNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown color difference metric: '%s' (valid: rgb, lab, luv, cie94, ciede2000)", s)
}

// Diff returns the difference between two colors under the metric.
func (m Metric) Diff(a, b colorful.Color) float64 {
	switch m {
	case MetricLab:
		return a.DistanceLab(b)
	case MetricLuv:
		return a.DistanceLuv(b)
	case MetricCIE94:
		return a.DistanceCIE94(b)
	case MetricCIEDE2000:
		return a.DistanceCIEDE2000(b)
	default:
		return a.DistanceRgb(b)
	}
}

// Nearest returns the palette entry closest to c under the metric, along
// with its slot. Ties resolve to the lowest slot, keeping the result
// independent of palette iteration details.
func (p *Palette) Nearest(c colorful.Color, m Metric) (int, colorful.Color) {
	bestSlot := 0
	bestDiff := m.Diff(p.entries[0].Color, c)
	for i := 1; i < len(p.entries); i++ {
		if d := m.Diff(p.entries[i].Color, c); d < bestDiff {
			bestSlot, bestDiff = i, d
		}
	}
	return bestSlot, p.entries[bestSlot].Color
}
