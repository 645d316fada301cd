package nsga2

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/condor86/CurveGrowthSystem/ioformat"
)

// Config holds the NSGA-II driver's hyperparameters.
type Config struct {
	PopulationSize      int
	Generations         int
	CrossoverProb       float64
	MutationProb        float64
	SBXEta              float64
	MutationEta         float64
	Bounds              Bounds
	Seed                int64
	DegreeOfParallelism int
	LogDir              string // empty disables per-generation CSV logging

	// OnGeneration, if set, is called after each generation's environmental
	// selection completes, before logging. Useful for progress reporting.
	OnGeneration func(gen int, population []*Individual)
}

// Run executes the full NSGA-II loop and returns the final population,
// ranked and with crowding distances assigned.
func Run(cfg Config, eval Evaluator) ([]*Individual, error) {
	l := len(cfg.Bounds.Lo)
	if l == 0 || len(cfg.Bounds.Hi) != l {
		return nil, fmt.Errorf("nsga2: bounds length mismatch (lo=%d, hi=%d)", len(cfg.Bounds.Lo), len(cfg.Bounds.Hi))
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("nsga2: population size must be positive, got %d", cfg.PopulationSize)
	}
	if eval == nil {
		return nil, fmt.Errorf("nsga2: evaluator must not be nil")
	}
	degree := cfg.DegreeOfParallelism
	if degree <= 0 {
		degree = 1
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("nsga2: creating log dir %s: %w", cfg.LogDir, err)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	parents := initPopulation(cfg.PopulationSize, cfg.Bounds, rng)
	evaluateAll(parents, eval, degree)
	rankAndCrowd(parents)

	for gen := 0; gen < cfg.Generations; gen++ {
		offspring := makeOffspring(parents, cfg, rng)
		evaluateAll(offspring, eval, degree)

		combined := append(append([]*Individual{}, parents...), offspring...)
		parents = environmentalSelect(combined, cfg.PopulationSize)

		if cfg.OnGeneration != nil {
			cfg.OnGeneration(gen, parents)
		}
		if cfg.LogDir != "" {
			if err := logGeneration(cfg.LogDir, gen, parents); err != nil {
				return nil, err
			}
		}
	}

	return parents, nil
}

// makeOffspring produces PopulationSize children via binary tournament
// selection, SBX crossover, and polynomial mutation.
func makeOffspring(parents []*Individual, cfg Config, rng *rand.Rand) []*Individual {
	offspring := make([]*Individual, 0, cfg.PopulationSize)
	for len(offspring) < cfg.PopulationSize {
		p1 := tournamentSelect(parents, rng)
		p2 := tournamentSelect(parents, rng)
		c1, c2 := sbxCrossover(p1, p2, cfg.Bounds, cfg.CrossoverProb, cfg.SBXEta, rng)
		polynomialMutate(c1, cfg.Bounds, cfg.MutationProb, cfg.MutationEta, rng)
		polynomialMutate(c2, cfg.Bounds, cfg.MutationProb, cfg.MutationEta, rng)
		offspring = append(offspring, c1, c2)
	}
	return offspring[:cfg.PopulationSize]
}

// environmentalSelect fills a new population of size target from combined
// by fronts, truncating the overflowing front by decreasing crowding
// distance.
func environmentalSelect(combined []*Individual, target int) []*Individual {
	fronts := fastNonDominatedSort(combined)
	for _, front := range fronts {
		crowdingDistance(front)
	}

	next := make([]*Individual, 0, target)
	for _, front := range fronts {
		if len(next)+len(front) <= target {
			next = append(next, front...)
			continue
		}

		remaining := target - len(next)
		sorted := append([]*Individual{}, front...)
		sort.Slice(sorted, func(a, b int) bool {
			return sorted[a].Crowding > sorted[b].Crowding
		})
		next = append(next, sorted[:remaining]...)
		break
	}
	return next
}

// rankAndCrowd assigns Rank and Crowding over the whole population, used
// once after the initial population is evaluated.
func rankAndCrowd(pop []*Individual) {
	fronts := fastNonDominatedSort(pop)
	for _, front := range fronts {
		crowdingDistance(front)
	}
}

// logGeneration writes gen_<k>_front0.csv and gen_<k>_bestGenes.csv.
func logGeneration(dir string, gen int, pop []*Individual) error {
	var front0 []*Individual
	for _, ind := range pop {
		if ind.Rank == 0 {
			front0 = append(front0, ind)
		}
	}

	objectives := make([][]float64, len(front0))
	genes := make([][]float64, len(front0))
	for i, ind := range front0 {
		objectives[i] = ind.Objectives
		genes[i] = ind.Genes
	}

	frontPath := filepath.Join(dir, fmt.Sprintf("gen_%d_front0.csv", gen))
	if err := ioformat.SaveFront0(frontPath, objectives, genes); err != nil {
		return err
	}

	best := bestByObjectiveSum(pop)
	bestPath := filepath.Join(dir, fmt.Sprintf("gen_%d_bestGenes.csv", gen))
	return ioformat.SaveBestGenes(bestPath, best.Genes)
}

// bestByObjectiveSum returns the individual with the lowest sum of
// objectives (both minimization-oriented here).
func bestByObjectiveSum(pop []*Individual) *Individual {
	best := pop[0]
	bestSum := sum(best.Objectives)
	for _, ind := range pop[1:] {
		s := sum(ind.Objectives)
		if s < bestSum {
			best, bestSum = ind, s
		}
	}
	return best
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
