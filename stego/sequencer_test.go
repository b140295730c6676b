package stego

import (
	"errors"
	"testing"
)

func TestSequentialPlanAscending(t *testing.T) {
	plan, err := NewEmbeddingPlan(0, 100, 2, 10, false)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}

	for i := 0; i < plan.Steps(); i++ {
		sample, bit := plan.Position(i)
		if sample != i/2 || bit != i%2 {
			t.Fatalf("step %d: got (%d, %d), want (%d, %d)", i, sample, bit, i/2, i%2)
		}
	}
}

func TestRandomizedPlanDeterministic(t *testing.T) {
	seed := DeriveSeed("RAHASIA")
	a, err := NewEmbeddingPlan(seed, 500, 1, 400, true)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}
	b, err := NewEmbeddingPlan(seed, 500, 1, 400, true)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}

	for i := 0; i < 400; i++ {
		as, ab := a.Position(i)
		bs, bb := b.Position(i)
		if as != bs || ab != bb {
			t.Fatalf("step %d differs between identical plans: (%d,%d) vs (%d,%d)", i, as, ab, bs, bb)
		}
	}
}

func TestRandomizedPlanNonRepeating(t *testing.T) {
	plan, err := NewEmbeddingPlan(DeriveSeed("key"), 200, 2, 400, true)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}

	seen := make(map[[2]int]bool)
	for i := 0; i < plan.Steps(); i++ {
		sample, bit := plan.Position(i)
		pos := [2]int{sample, bit}
		if seen[pos] {
			t.Fatalf("position (%d, %d) visited twice", sample, bit)
		}
		seen[pos] = true
		if sample < 0 || sample >= 200 || bit < 0 || bit >= 2 {
			t.Fatalf("position (%d, %d) out of range", sample, bit)
		}
	}
}

func TestPlanPrefixStable(t *testing.T) {
	seed := DeriveSeed("prefix")
	short, err := NewEmbeddingPlan(seed, 300, 3, 50, true)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}
	long, err := NewEmbeddingPlan(seed, 300, 3, 900, true)
	if err != nil {
		t.Fatalf("NewEmbeddingPlan: %v", err)
	}

	for i := 0; i < short.Steps(); i++ {
		ss, sb := short.Position(i)
		ls, lb := long.Position(i)
		if ss != ls || sb != lb {
			t.Fatalf("step %d differs between short and long plan", i)
		}
	}
}

func TestPlanDiffersAcrossSeeds(t *testing.T) {
	a, _ := NewEmbeddingPlan(DeriveSeed("RAHASIA"), 1000, 1, 1000, true)
	b, _ := NewEmbeddingPlan(DeriveSeed("WRONG"), 1000, 1, 1000, true)

	same := true
	for i := 0; i < 1000; i++ {
		as, _ := a.Position(i)
		bs, _ := b.Position(i)
		if as != bs {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical plans")
	}
}

func TestPlanCapacityFailure(t *testing.T) {
	_, err := NewEmbeddingPlan(0, 10, 1, 11, false)
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Errorf("got %v, want ErrInsufficientCapacity", err)
	}
}
