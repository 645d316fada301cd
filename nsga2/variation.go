package nsga2

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats/scalar"
)

// Bounds holds the per-gene lower and upper bound, both of length L.
type Bounds struct {
	Lo []float64
	Hi []float64
}

// sameParentEps is the SBX equal-parent detection tolerance (spec §5, 1e-14).
const sameParentEps = 1e-14

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// initPopulation draws size individuals with genes sampled uniformly in
// [lo_i, hi_i] per gene.
func initPopulation(size int, bounds Bounds, rng *rand.Rand) []*Individual {
	pop := make([]*Individual, size)
	l := len(bounds.Lo)
	for i := range pop {
		genes := make([]float64, l)
		for g := 0; g < l; g++ {
			genes[g] = bounds.Lo[g] + rng.Float64()*(bounds.Hi[g]-bounds.Lo[g])
		}
		pop[i] = &Individual{Genes: genes}
	}
	return pop
}

// tournamentSelect runs a binary tournament: lower rank wins, ties broken
// by higher crowding distance.
func tournamentSelect(pop []*Individual, rng *rand.Rand) *Individual {
	a := pop[rng.Intn(len(pop))]
	b := pop[rng.Intn(len(pop))]
	if crowdedBetter(a, b) {
		return a
	}
	return b
}

// sbxCrossover performs simulated binary crossover per gene, applied only
// when a Bernoulli(pc) trial passes; otherwise the genes are cloned from
// the parents unchanged.
func sbxCrossover(p1, p2 *Individual, bounds Bounds, pc, etaC float64, rng *rand.Rand) (*Individual, *Individual) {
	if rng.Float64() > pc {
		return p1.clone(), p2.clone()
	}

	l := len(p1.Genes)
	c1 := &Individual{Genes: make([]float64, l)}
	c2 := &Individual{Genes: make([]float64, l)}

	for g := 0; g < l; g++ {
		x1, x2 := p1.Genes[g], p2.Genes[g]
		lo, hi := bounds.Lo[g], bounds.Hi[g]

		if scalar.EqualWithinAbs(x1, x2, sameParentEps) {
			c1.Genes[g] = x1
			c2.Genes[g] = x2
			continue
		}

		y1, y2 := x1, x2
		if y1 > y2 {
			y1, y2 = y2, y1
		}

		u := rng.Float64()
		beta := 1 + 2*(y1-lo)/(y2-y1)
		alpha := 2 - math.Pow(beta, -(etaC+1))
		var betaQ float64
		if u <= 1/alpha {
			betaQ = math.Pow(u*alpha, 1/(etaC+1))
		} else {
			betaQ = math.Pow(1/(2-u*alpha), 1/(etaC+1))
		}

		child1 := 0.5 * ((y1 + y2) - betaQ*(y2-y1))
		child2 := 0.5 * ((y1 + y2) + betaQ*(y2-y1))
		child1 = clamp(child1, lo, hi)
		child2 = clamp(child2, lo, hi)

		if rng.Float64() < 0.5 {
			c1.Genes[g], c2.Genes[g] = child1, child2
		} else {
			c1.Genes[g], c2.Genes[g] = child2, child1
		}
	}

	return c1, c2
}

// polynomialMutate mutates ind's genes in place, per gene, applied only
// when a Bernoulli(pm) trial passes.
func polynomialMutate(ind *Individual, bounds Bounds, pm, etaM float64, rng *rand.Rand) {
	for g := range ind.Genes {
		if rng.Float64() >= pm {
			continue
		}

		x := ind.Genes[g]
		lo, hi := bounds.Lo[g], bounds.Hi[g]
		if hi <= lo {
			continue
		}

		delta1 := (x - lo) / (hi - lo)
		delta2 := (hi - x) / (hi - lo)
		u := rng.Float64()

		var deltaQ float64
		if u < 0.5 {
			val := 2*u + (1-2*u)*math.Pow(1-delta1, etaM+1)
			deltaQ = math.Pow(val, 1/(etaM+1)) - 1
		} else {
			val := 2*(1-u) + 2*(u-0.5)*math.Pow(1-delta2, etaM+1)
			deltaQ = 1 - math.Pow(val, 1/(etaM+1))
		}

		x += deltaQ * (hi - lo)
		ind.Genes[g] = clamp(x, lo, hi)
	}
}
