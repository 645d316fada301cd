// Package nsga2 implements a NSGA-II multi-objective evolutionary driver:
// SBX crossover, polynomial mutation, fast non-dominated sort, and crowding
// distance, parallelizing evaluation across individuals within a generation.
package nsga2

// Individual is one genome in the population, together with its evaluated
// objectives and the bookkeeping NSGA-II's selection needs.
type Individual struct {
	Genes      []float64
	Objectives []float64
	Rank       int
	Crowding   float64
}

// clone returns a deep copy of ind.
func (ind *Individual) clone() *Individual {
	out := &Individual{
		Genes:    make([]float64, len(ind.Genes)),
		Rank:     ind.Rank,
		Crowding: ind.Crowding,
	}
	copy(out.Genes, ind.Genes)
	if ind.Objectives != nil {
		out.Objectives = make([]float64, len(ind.Objectives))
		copy(out.Objectives, ind.Objectives)
	}
	return out
}

// dominates reports whether a Pareto-dominates b: every objective of a is
// no worse (minimization) than b's, and at least one is strictly better.
func dominates(a, b *Individual) bool {
	betterInAny := false
	for i := range a.Objectives {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			betterInAny = true
		}
	}
	return betterInAny
}

// crowdedBetter is the binary tournament comparator: lower rank wins; ties
// broken by higher crowding distance.
func crowdedBetter(a, b *Individual) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Crowding > b.Crowding
}
