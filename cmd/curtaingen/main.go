// Package main drives the curtain wall growth-and-daylighting optimizer
// end to end: load inputs, run NSGA-II against the deterministic geometry
// pipeline, and write the winning curve and light-hour grids.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/condor86/CurveGrowthSystem/applog"
	"github.com/condor86/CurveGrowthSystem/config"
	"github.com/condor86/CurveGrowthSystem/evaluator"
	"github.com/condor86/CurveGrowthSystem/geom"
	"github.com/condor86/CurveGrowthSystem/ioformat"
	"github.com/condor86/CurveGrowthSystem/nsga2"
	"gonum.org/v1/gonum/stat"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	startingPositions := flag.String("starting-positions", "", "iStartingPositions.csv path (required)")
	repellersPath := flag.String("repellers", "", "iRepellers.csv path (empty = no repellers)")
	outputDir := flag.String("output", "", "Output directory for results (required)")
	generations := flag.Int("generations", 0, "Generations override (0 = use config)")
	population := flag.Int("population", 0, "Population size override (0 = use config)")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *startingPositions == "" {
		log.Fatal("--starting-positions is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	if *generations > 0 {
		cfg.NSGA2.Generations = *generations
	}
	if *population > 0 {
		cfg.NSGA2.PopulationSize = *population
	}

	initial, err := ioformat.LoadPoints(*startingPositions)
	if err != nil {
		log.Fatalf("failed to load starting positions: %v", err)
	}

	var repellers []geom.Vec3
	if *repellersPath != "" {
		repellers, err = ioformat.LoadPoints(*repellersPath)
		if err != nil {
			log.Fatalf("failed to load repellers: %v", err)
		}
	}

	eval, err := evaluator.New(cfg, initial, repellers)
	if err != nil {
		log.Fatalf("failed to construct evaluator: %v", err)
	}

	bounds := geneBounds(cfg)
	logDir := cfg.NSGA2.LogDir
	if logDir == "" {
		logDir = filepath.Join(*outputDir, "nsga_logs")
	}

	startTime := time.Now()
	nsgaCfg := nsga2.Config{
		PopulationSize:      cfg.NSGA2.PopulationSize,
		Generations:         cfg.NSGA2.Generations,
		CrossoverProb:       cfg.NSGA2.CrossoverProb,
		MutationProb:        cfg.NSGA2.MutationProb,
		SBXEta:              cfg.NSGA2.SBXEta,
		MutationEta:         cfg.NSGA2.MutationEta,
		Bounds:              bounds,
		Seed:                cfg.NSGA2.Seed,
		DegreeOfParallelism: cfg.NSGA2.DegreeOfParallelism,
		LogDir:              logDir,
		OnGeneration: func(gen int, pop []*nsga2.Individual) {
			front0 := 0
			bestSum := 1e18
			summerCol := make([]float64, len(pop))
			winterCol := make([]float64, len(pop))
			for i, ind := range pop {
				if ind.Rank == 0 {
					front0++
				}
				s := ind.Objectives[0] + ind.Objectives[1]
				if s < bestSum {
					bestSum = s
				}
				summerCol[i] = ind.Objectives[0]
				winterCol[i] = -ind.Objectives[1]
			}
			summer := applog.ObjectiveStats{Mean: stat.Mean(summerCol, nil), StdDev: stat.StdDev(summerCol, nil)}
			winter := applog.ObjectiveStats{Mean: stat.Mean(winterCol, nil), StdDev: stat.StdDev(winterCol, nil)}
			applog.Generation(gen, cfg.NSGA2.Generations, front0, bestSum, summer, winter, time.Since(startTime))
		},
	}

	applog.Logf("Starting NSGA-II with population=%d generations=%d genes=%d",
		nsgaCfg.PopulationSize, nsgaCfg.Generations, len(bounds.Lo))

	finalPop, err := nsga2.Run(nsgaCfg, eval.Evaluate)
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	best := bestOf(finalPop)
	applog.Logf("Best objectives: summer_hours=%.2f winter_hours=%.2f (total elapsed %s)",
		best.Objectives[0], -best.Objectives[1], time.Since(startTime).Round(time.Second))

	if err := writeBestResults(cfg, eval, best, *outputDir); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	applog.Logf("Results written to %s", *outputDir)
}

// geneBounds builds the fixed-layout gene bounds: repeller factors followed
// by per-vertex offsets.
func geneBounds(cfg *config.Config) nsga2.Bounds {
	l := cfg.Derived.GeneLength
	lo := make([]float64, l)
	hi := make([]float64, l)
	for i := 0; i < cfg.Genes.NumRepellerFactors; i++ {
		lo[i] = cfg.Genes.RepellerBounds.Lo
		hi[i] = cfg.Genes.RepellerBounds.Hi
	}
	for i := cfg.Genes.NumRepellerFactors; i < l; i++ {
		lo[i] = cfg.Genes.OffsetBounds.Lo
		hi[i] = cfg.Genes.OffsetBounds.Hi
	}
	return nsga2.Bounds{Lo: lo, Hi: hi}
}

// bestOf picks the rank-0 individual with the lowest objective sum, the
// same rule the per-generation logger uses for gen_<k>_bestGenes.csv.
func bestOf(pop []*nsga2.Individual) *nsga2.Individual {
	best := pop[0]
	bestSum := best.Objectives[0] + best.Objectives[1]
	for _, ind := range pop[1:] {
		s := ind.Objectives[0] + ind.Objectives[1]
		if s < bestSum {
			best, bestSum = ind, s
		}
	}
	return best
}

// writeBestResults reconstructs the winning candidate's geometry and writes
// resultsCrv.csv and resultsLighting[_summer|_winter].csv.
func writeBestResults(cfg *config.Config, eval *evaluator.Evaluator, best *nsga2.Individual, outputDir string) error {
	curve, summerGrid, winterGrid, err := eval.Rebuild(best.Genes)
	if err != nil {
		return fmt.Errorf("rebuilding winning candidate: %w", err)
	}

	if err := ioformat.SaveCurve(filepath.Join(outputDir, "resultsCrv.csv"), curve); err != nil {
		return err
	}
	if err := ioformat.SaveLightingGrid(filepath.Join(outputDir, "resultsLighting_summer.csv"), summerGrid); err != nil {
		return err
	}
	if err := ioformat.SaveLightingGrid(filepath.Join(outputDir, "resultsLighting_winter.csv"), winterGrid); err != nil {
		return err
	}
	return cfg.WriteYAML(filepath.Join(outputDir, "used_config.yaml"))
}
