package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/popsim/internal/dynamo"
)

func TestGrowthRate(t *testing.T) {
	params := dynamo.Parameters{GrowthRate: 0.5, CarryingCapacity: 1000}

	tests := []struct {
		name     string
		pop      float64
		expected float64
	}{
		{"extinct", 0, 0},
		{"at capacity", 1000, 0},
		{"small population", 10, 4.95},
		{"half capacity", 500, 125},
		{"above capacity", 2000, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrowthRate(tt.pop, params)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("GrowthRate(%v) = %v, want %v", tt.pop, got, tt.expected)
			}
		})
	}
}

func TestLogisticMatchesGrowthRate(t *testing.T) {
	params := dynamo.Parameters{GrowthRate: 0.2, CarryingCapacity: 500}
	l := NewLogistic(params)

	for _, pop := range []float64{0, 20, 250, 499, 750} {
		if got, want := l.Derive(3.0, pop), GrowthRate(pop, params); got != want {
			t.Errorf("Derive(%v) = %v, GrowthRate = %v", pop, got, want)
		}
	}
}

func TestLogisticSetParam(t *testing.T) {
	l := &Logistic{R: 0.1, K: 100}

	if err := l.SetParam("r", 0.3); err != nil {
		t.Fatalf("SetParam(r) failed: %v", err)
	}
	if err := l.SetParam("k", 250); err != nil {
		t.Fatalf("SetParam(k) failed: %v", err)
	}
	if got := l.GetParams(); got["r"] != 0.3 || got["k"] != 250 {
		t.Errorf("GetParams() = %v", got)
	}

	if err := l.SetParam("r", -0.1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("SetParam(r, -0.1) = %v, want ErrParameterBounds", err)
	}
	if l.R != 0.3 {
		t.Errorf("rejected SetParam changed r to %v", l.R)
	}
	if err := l.SetParam("k", 0); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("SetParam(k, 0) = %v, want ErrParameterBounds", err)
	}
	if err := l.SetParam("mass", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("SetParam(mass) = %v, want ErrUnknownParam", err)
	}
}
