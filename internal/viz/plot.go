package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/dynamo"
)

const (
	plotWidth  = 70
	plotHeight = 15
)

// PlotPopulation charts P(t) over the given samples.
func PlotPopulation(samples []dynamo.Sample) string {
	if len(samples) == 0 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Population
	}
	last := samples[len(samples)-1].Time
	return graphStyle.Render(asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("population, t = 0 .. %.2f", last)),
	))
}

// PlotRate charts dP/dt against P over [0, K], the logistic parabola.
func PlotRate(params dynamo.Parameters) string {
	curve := analysis.RateCurve(params, plotWidth)
	data := make([]float64, len(curve))
	for i, p := range curve {
		data[i] = p.Rate
	}
	return graphStyle.Render(asciigraph.Plot(data,
		asciigraph.Height(plotHeight/2),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("dP/dt over P = 0 .. %.0f", params.CarryingCapacity)),
	))
}
