package stego

import (
	"math/rand"
)

// EmbeddingPlan is a deterministic, non-repeating visit order over the
// cover's LSB slots. Step i maps to bit slot i%lsbBits of the sample at
// position i/lsbBits in the visit order, so consecutive stream bits fill
// one sample's low bits before moving on to the next sample.
//
// For fixed (seed, sampleCount, lsbBits, randomized) the plan is
// prefix-stable: asking for more steps never changes the earlier ones.
// Extraction relies on this to read the payload as a continuation of the
// header read.
type EmbeddingPlan struct {
	order   []int // sample visit order; nil means ascending from 0
	lsbBits int
	steps   int
}

// NewEmbeddingPlan builds the schedule for stepsNeeded bits. When
// randomized, the sample order is a full permutation drawn from a
// generator seeded with the key-derived seed; otherwise samples are
// visited in ascending order. Fails when the cover cannot hold
// stepsNeeded bits.
func NewEmbeddingPlan(seed uint64, sampleCount, lsbBits, stepsNeeded int, randomized bool) (*EmbeddingPlan, error) {
	if err := CheckCapacity(sampleCount, lsbBits, 0, stepsNeeded); err != nil {
		return nil, err
	}

	plan := &EmbeddingPlan{lsbBits: lsbBits, steps: stepsNeeded}
	if randomized {
		rng := rand.New(rand.NewSource(int64(seed)))
		plan.order = rng.Perm(sampleCount)
	}
	return plan, nil
}

// Steps reports how many bit slots the plan covers.
func (p *EmbeddingPlan) Steps() int {
	return p.steps
}

// Position returns the (sample index, bit slot) pair for step i.
func (p *EmbeddingPlan) Position(i int) (sample, bit int) {
	idx := i / p.lsbBits
	if p.order != nil {
		return p.order[idx], i % p.lsbBits
	}
	return idx, i % p.lsbBits
}
