package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/integrators"
)

var _ = Describe("Run", func() {
	bacteria := dynamo.Parameters{GrowthRate: 0.5, CarryingCapacity: 1000, InitialPopulation: 10, MaxTime: 50, StepSize: 0.1}
	city := dynamo.Parameters{GrowthRate: 0.03, CarryingCapacity: 100000, InitialPopulation: 5000, MaxTime: 200, StepSize: 0.1}
	fish := dynamo.Parameters{GrowthRate: 0.2, CarryingCapacity: 500, InitialPopulation: 20, MaxTime: 50, StepSize: 0.1}

	Describe("the first sample", func() {
		DescribeTable("starts at t=0 with P0",
			func(p dynamo.Parameters) {
				samples := collectAll(Run(p))
				Expect(samples).NotTo(BeEmpty())
				Expect(samples[0].Time).To(Equal(0.0))
				Expect(samples[0].Population).To(Equal(p.InitialPopulation))
			},
			Entry("bacteria", bacteria),
			Entry("city", city),
			Entry("fish", fish),
			Entry("above capacity", dynamo.Parameters{GrowthRate: 0.3, CarryingCapacity: 100, InitialPopulation: 250, MaxTime: 10, StepSize: 0.5}),
		)

		It("reports rate and percentage of capacity for the bacteria scenario", func() {
			first := collectAll(Run(bacteria))[0]
			Expect(first.GrowthRate).To(BeNumerically("~", 4.95, 1e-12))
			Expect(first.PercentOfCapacity).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Describe("growth below capacity", func() {
		DescribeTable("is monotonic with non-negative rates",
			func(p dynamo.Parameters) {
				samples := collectAll(Run(p))
				for i := 1; i < len(samples); i++ {
					Expect(samples[i].Population).To(BeNumerically(">=", samples[i-1].Population))
					Expect(samples[i].Time).To(BeNumerically(">", samples[i-1].Time))
				}
				for _, s := range samples {
					Expect(s.GrowthRate).To(BeNumerically(">=", 0))
				}
			},
			Entry("bacteria", bacteria),
			Entry("city", city),
			Entry("fish", fish),
		)

		It("slows down as the population approaches K", func() {
			samples := collectAll(Run(bacteria))
			last := samples[len(samples)-1]
			Expect(last.GrowthRate).To(BeNumerically("<", 1.0))
			Expect(last.GrowthRate).To(BeNumerically("<", samples[0].GrowthRate))
		})
	})

	Describe("saturation", func() {
		It("terminates the bacteria scenario before the horizon", func() {
			samples := collectAll(Run(bacteria))
			Expect(len(samples)).To(BeNumerically("<", bacteria.Steps()+1))

			last := samples[len(samples)-1]
			Expect(last.Population).To(BeNumerically(">=", bacteria.SaturationLevel()))
			Expect(samples[len(samples)-2].Population).To(BeNumerically("<", bacteria.SaturationLevel()))
		})

		DescribeTable("emits exactly one sample when P0 is already saturated",
			func(p0 float64) {
				p := bacteria
				p.InitialPopulation = p0
				samples := collectAll(Run(p))
				Expect(samples).To(HaveLen(1))
				Expect(samples[0].Time).To(Equal(0.0))
			},
			Entry("at K", 1000.0),
			Entry("above K", 1500.0),
			Entry("far above K", 1e6),
		)

		It("reports negative growth when starting above K", func() {
			p := bacteria
			p.InitialPopulation = 1500
			samples := collectAll(Run(p))
			Expect(samples[0].GrowthRate).To(BeNumerically("<", 0))
			Expect(samples[0].PercentOfCapacity).To(BeNumerically("~", 150, 1e-9))
		})

		It("records the stop reason", func() {
			res, err := New(integrators.NewRK4()).Collect(context.Background(), bacteria)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(dynamo.Saturated))
		})
	})

	Describe("step exhaustion", func() {
		It("runs the city scenario to the horizon", func() {
			res, err := New(integrators.NewRK4()).Collect(context.Background(), city)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(dynamo.Exhausted))
			Expect(res.Samples).To(HaveLen(city.Steps() + 1))

			// Closed form puts P(200) near 95 502, short of 99.9% of K.
			final := res.Final()
			Expect(final.Time).To(BeNumerically("~", 200, 1e-9))
			Expect(final.Population).To(BeNumerically("~", 95502, 5))
			Expect(final.Population).To(BeNumerically("<", city.SaturationLevel()))
		})

		It("saturates the city scenario once the horizon is long enough", func() {
			p := city
			p.MaxTime = 400
			res, err := New(integrators.NewRK4()).Collect(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(dynamo.Saturated))
			Expect(len(res.Samples)).To(BeNumerically("<=", p.Steps()+1))
		})

		It("never simulates the fractional remainder of the horizon", func() {
			p := dynamo.Parameters{GrowthRate: 0.01, CarryingCapacity: 1000, InitialPopulation: 1, MaxTime: 1.2, StepSize: 0.25}
			samples := collectAll(Run(p))
			Expect(samples).To(HaveLen(5))
			Expect(samples[4].Time).To(Equal(1.0))
		})

		It("emits a single sample when the horizon is shorter than one step", func() {
			p := dynamo.Parameters{GrowthRate: 0.01, CarryingCapacity: 1000, InitialPopulation: 1, MaxTime: 0.1, StepSize: 0.25}
			Expect(collectAll(Run(p))).To(HaveLen(1))
		})
	})

	Describe("termination bound", func() {
		DescribeTable("never exceeds floor(t_max/dt)+1 samples",
			func(p dynamo.Parameters) {
				Expect(len(collectAll(Run(p)))).To(BeNumerically("<=", int(math.Floor(p.MaxTime/p.StepSize))+1))
			},
			Entry("bacteria", bacteria),
			Entry("city", city),
			Entry("fish", fish),
			Entry("coarse step", dynamo.Parameters{GrowthRate: 1, CarryingCapacity: 10, InitialPopulation: 1, MaxTime: 3, StepSize: 0.7}),
		)
	})

	Describe("determinism", func() {
		It("produces identical sequences for identical parameters", func() {
			Expect(collectAll(Run(fish))).To(Equal(collectAll(Run(fish))))
		})

		It("restarts from P0 when the sequence is ranged again", func() {
			seq := Run(bacteria)
			first := collectAll(seq)
			second := collectAll(seq)
			Expect(second).To(Equal(first))
		})
	})

	Describe("early abort", func() {
		It("stops integrating when the consumer stops ranging", func() {
			stepper := &testStepper{}
			n := 0
			for range New(stepper).Run(bacteria) {
				n++
				if n == 5 {
					break
				}
			}
			Expect(n).To(Equal(5))
			Expect(stepper.calls).To(Equal(4))
		})
	})
})
