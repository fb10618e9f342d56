package sim

import (
	"iter"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/popsim/internal/dynamo"
)

func TestSim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sim Suite")
}

func collectAll(seq iter.Seq[dynamo.Sample]) []dynamo.Sample {
	var out []dynamo.Sample
	for s := range seq {
		out = append(out, s)
	}
	return out
}
