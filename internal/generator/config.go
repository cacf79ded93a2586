package generator

// Config drives the synthetic village generator.
type Config struct {
	FounderCouples   int
	Generations      int
	MaxChildren      int
	MarriageChance   float64
	FissionChance    float64
	EmigrationChance float64
	Seed             int64
}

// DefaultConfig returns baseline settings that produce a village of a few
// hundred people across four generations.
func DefaultConfig() Config {
	return Config{
		FounderCouples:   40,
		Generations:      4,
		MaxChildren:      5,
		MarriageChance:   0.8,
		FissionChance:    0.3,
		EmigrationChance: 0.08,
		Seed:             42,
	}
}
