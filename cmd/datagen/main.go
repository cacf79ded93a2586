package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mwhitby/kinship/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		founders         = flag.Int("founders", cfg.FounderCouples, "number of founder couples")
		generations      = flag.Int("generations", cfg.Generations, "number of generations to simulate")
		maxChildren      = flag.Int("max-children", cfg.MaxChildren, "maximum children per couple")
		marriageChance   = flag.Float64("marriage-chance", cfg.MarriageChance, "probability that an adult marries")
		fissionChance    = flag.Float64("fission-chance", cfg.FissionChance, "probability that a married son splits off a new household")
		emigrationChance = flag.Float64("emigration-chance", cfg.EmigrationChance, "probability that a person leaves the community")
		seed             = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir        = flag.String("output-dir", "derived-data", "directory to write identities.csv, marriages.csv and master.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		FounderCouples:   *founders,
		Generations:      *generations,
		MaxChildren:      *maxChildren,
		MarriageChance:   clampProbability(*marriageChance),
		FissionChance:    clampProbability(*fissionChance),
		EmigrationChance: clampProbability(*emigrationChance),
		Seed:             *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d people and %d marriages into %s\n",
		len(dataset.Identities), len(dataset.Marriages), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
