package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/popsim/internal/dynamo"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
	margin        = 40
)

// PopulationSVG draws P(t) as a path with the carrying capacity as a
// dashed guide line. capacity <= 0 omits the guide.
func PopulationSVG(samples []dynamo.Sample, capacity float64, width, height int) string {
	if len(samples) < 2 {
		return ""
	}

	maxT := samples[len(samples)-1].Time
	maxY := capacity
	for _, s := range samples {
		if s.Population > maxY {
			maxY = s.Population
		}
	}
	if maxT == 0 {
		maxT = 1
	}
	if maxY <= 0 {
		maxY = 1
	}
	maxY *= 1.05

	plotW := float64(width - 2*margin)
	plotH := float64(height - 2*margin)
	px := func(t float64) float64 { return margin + t/maxT*plotW }
	py := func(p float64) float64 { return margin + plotH - p/maxY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#444466" stroke-width="1">
<line x1="%d" y1="%d" x2="%d" y2="%d"/>
<line x1="%d" y1="%d" x2="%d" y2="%d"/>
</g>
`, width, height, width, height,
		margin, height-margin, width-margin, height-margin,
		margin, margin, margin, height-margin))

	if capacity > 0 {
		y := py(capacity)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#ffaa00" stroke-dasharray="6,4"/>
<text x="%d" y="%.1f" fill="#ffaa00" font-size="12" font-family="monospace">K = %.0f</text>
`, margin, y, width-margin, y, width-margin-80, y-4, capacity))
	}

	sb.WriteString(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`)
	for i, s := range samples {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(s.Time), py(s.Population)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(s.Time), py(s.Population)))
		}
	}
	sb.WriteString(fmt.Sprintf(`"/>
<text x="%d" y="%d" fill="#888899" font-size="12" font-family="monospace">t = 0 .. %.2f</text>
</svg>`, margin, height-margin/3, samples[len(samples)-1].Time))

	return sb.String()
}

// CapacityOf recovers K from a sample's population and percentage of K.
// It returns 0 when the sample carries no percentage.
func CapacityOf(s dynamo.Sample) float64 {
	if s.PercentOfCapacity <= 0 {
		return 0
	}
	return s.Population * 100 / s.PercentOfCapacity
}

// WriteSVG renders samples and writes the document to path.
func WriteSVG(path string, samples []dynamo.Sample, capacity float64) error {
	doc := PopulationSVG(samples, capacity, DefaultWidth, DefaultHeight)
	if doc == "" {
		return fmt.Errorf("need at least two samples to draw, got %d", len(samples))
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
