package metrics

import (
	"math"

	"github.com/san-kum/popsim/internal/dynamo"
)

// PeakGrowth tracks the largest observed growth rate and where it occurred.
type PeakGrowth struct {
	name    string
	peak    dynamo.Sample
	samples int
}

func NewPeakGrowth() *PeakGrowth {
	return &PeakGrowth{name: "peak_growth"}
}

func (p *PeakGrowth) Name() string { return p.name }

func (p *PeakGrowth) OnSample(s dynamo.Sample) {
	if p.samples == 0 || s.GrowthRate > p.peak.GrowthRate {
		p.peak = s
	}
	p.samples++
}

func (p *PeakGrowth) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.peak.GrowthRate
}

// At returns the sample holding the peak rate.
func (p *PeakGrowth) At() dynamo.Sample { return p.peak }

func (p *PeakGrowth) Reset() {
	p.peak = dynamo.Sample{}
	p.samples = 0
}

// Saturation records the first time the population reached 99.9% of K.
type Saturation struct {
	name    string
	level   float64
	time    float64
	reached bool
}

func NewSaturation(params dynamo.Parameters) *Saturation {
	return &Saturation{
		name:  "saturation_time",
		level: params.SaturationLevel(),
	}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) OnSample(sample dynamo.Sample) {
	if !s.reached && sample.Population >= s.level {
		s.time = sample.Time
		s.reached = true
	}
}

// Value is the saturation time, or NaN if the level was never reached.
func (s *Saturation) Value() float64 {
	if !s.reached {
		return math.NaN()
	}
	return s.time
}

func (s *Saturation) Reached() bool { return s.reached }

func (s *Saturation) Reset() {
	s.time = 0
	s.reached = false
}
