package viz

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/sim"
)

const rowFormat = "%-10.2f %-15.2f %-15.4f %-15.2f%%\n"

// Header writes the model line and the parameter block of a run.
func Header(w io.Writer, params dynamo.Parameters) {
	fmt.Fprintln(w, HeaderStyle.Render("POPULATION GROWTH SIMULATION"))
	fmt.Fprintln(w, "Model: logistic growth (dP/dt = r*P*(1-P/K))")
	fmt.Fprintf(w, "- Growth rate (r):          %.4f\n", params.GrowthRate)
	fmt.Fprintf(w, "- Carrying capacity (K):    %.0f\n", params.CarryingCapacity)
	fmt.Fprintf(w, "- Initial population (P0):  %.0f\n", params.InitialPopulation)
	fmt.Fprintf(w, "- Max time:                 %.2f\n", params.MaxTime)
	fmt.Fprintf(w, "- Time step (dt):           %.4f\n\n", params.StepSize)
}

// Table writes every Nth sample of res followed by the saturation notice
// when the run stopped early. every < 1 is treated as 1.
func Table(w io.Writer, res *sim.Result, every int) {
	if every < 1 {
		every = 1
	}

	fmt.Fprintf(w, "%-10s %-15s %-15s %-15s\n", "Time", "Population", "Growth Rate", "% of K")
	fmt.Fprintf(w, "%-10s %-15s %-15s %-15s\n", "----", "----------", "-----------", "------")
	for i, s := range res.Samples {
		if i%every == 0 {
			fmt.Fprintf(w, rowFormat, s.Time, s.Population, s.GrowthRate, s.PercentOfCapacity)
		}
	}

	if res.Reason == dynamo.Saturated {
		fmt.Fprintln(w)
		fmt.Fprintln(w, NoticeStyle.Render(fmt.Sprintf(">>> population reached 99.9%% of carrying capacity at t = %.2f", res.Final().Time)))
	}
}

// Summary writes the closed-form facts of a parameter set.
func Summary(w io.Writer, params dynamo.Parameters) {
	facts := analysis.Analyze(params)
	eq := analysis.Stability(params)

	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("MODEL ANALYSIS"))
	fmt.Fprintln(w, "Equilibrium points:")
	fmt.Fprintf(w, "- P = %.0f (extinction, %s)\n", facts.Equilibria[0], eq[0])
	fmt.Fprintf(w, "- P = K = %.0f (carrying capacity, %s)\n", facts.Equilibria[1], eq[1])

	if t, ok := facts.HalfCapacityTime(); ok {
		fmt.Fprintf(w, "\nTime to reach 50%% of carrying capacity: %.2f time units\n", t)
	}
	fmt.Fprintf(w, "Maximum growth rate: %.4f at P = %.0f\n", facts.MaxGrowthRate, facts.MaxGrowthPopulation)
}

// Metrics writes name/value pairs in the given order.
func Metrics(w io.Writer, names []string, values map[string]float64) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("METRICS"))
	for _, name := range names {
		v, ok := values[name]
		if !ok {
			continue
		}
		text := fmt.Sprintf("%.6g", v)
		if math.IsNaN(v) {
			text = "not reached"
		}
		fmt.Fprintln(w, LabelStyle.Render(strings.ReplaceAll(name, "_", " "))+ValueStyle.Render(text))
	}
}

// Interpretation writes the closing notes on reading a logistic run.
func Interpretation(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("INTERPRETATION"))
	fmt.Fprintln(w, "- An S-shaped curve indicates logistic growth")
	fmt.Fprintln(w, "- Growth is fast at first and slows near K")
	fmt.Fprintln(w, "- The carrying capacity is the population ceiling")
	fmt.Fprintln(w, "- The growth rate peaks at P = K/2")
}
