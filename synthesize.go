package widepath

import (
	"math/rand"
	"time"
)

// Dedicated seeds per reproducible attribute group. Keeping the streams apart
// means changing one assignment's algorithm never perturbs the other.
const (
	// SeedScores drives the positive-score assignment.
	SeedScores int64 = 42
	// SeedClearway drives the clearway classification.
	SeedClearway int64 = 123
	// DefaultCostSeed drives per-edge speed and rush-multiplier draws. A
	// negative cost seed switches to time-based seeding, restoring
	// run-to-run variability of the cost vectors.
	DefaultCostSeed int64 = 1
)

// SpeedModel Draws an edge's free-flow speed in distance-units-per-minute
type SpeedModel func(rng *rand.Rand) float64

const mphToKmPerHour = 1.60934

// UniformMPHSpeed Speed sampled uniformly in [low, high] mph, converted to km/min
/*
	Matches datasets whose distances are kilometers.
*/
func UniformMPHSpeed(low, high float64) SpeedModel {
	return func(rng *rand.Rand) float64 {
		mph := uniform(rng, low, high)
		return mph * mphToKmPerHour / 60.0
	}
}

// ScaledSpeed Base speed (units per minute) scaled uniformly by [low, high]
func ScaledSpeed(base, low, high float64) SpeedModel {
	return func(rng *rand.Rand) float64 {
		return base * uniform(rng, low, high)
	}
}

// EdgeAttributes Synthesized per-edge payload, never mutated after creation
/*
	Costs is aligned 1:1 with the grid's ArrivalPoints. Score is retained for
	forward compatibility but not serialized. Distance is carried through from
	the canonical edge unchanged.
*/
type EdgeAttributes struct {
	Src       int
	Dst       int
	Costs     []float64
	BaseWidth float64
	RushWidth float64
	Distance  float64
	Score     int
}

// Synthesizer Produces time-dependent costs and clearway widths per canonical edge
type Synthesizer struct {
	grid          TimeGrid
	baseWidth     float64
	clearwayWidth float64
	clearwayPct   int
	densityPct    int
	speed         SpeedModel
	costSeed      int64
}

func NewSynthesizer(grid TimeGrid, options ...func(*Synthesizer)) *Synthesizer {
	synth := &Synthesizer{
		grid:          grid,
		baseWidth:     3.5,
		clearwayWidth: 4.5,
		clearwayPct:   5,
		densityPct:    20,
		speed:         ScaledSpeed(100.0, 0.8, 1.2),
		costSeed:      DefaultCostSeed,
	}
	for _, option := range options {
		option(synth)
	}
	return synth
}

// WithBaseWidth Base lane width in meters
func WithBaseWidth(width float64) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.baseWidth = width
	}
}

// WithClearwayWidth Rush-hour width in meters for clearway edges
func WithClearwayWidth(width float64) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.clearwayWidth = width
	}
}

// WithClearwayPercentage Integer percentage of edges classified as clearway
func WithClearwayPercentage(pct int) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.clearwayPct = pct
	}
}

// WithScoreDensity Integer percentage of edges carrying a positive score
func WithScoreDensity(pct int) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.densityPct = pct
	}
}

// WithSpeedModel Free-flow speed distribution for the dataset
func WithSpeedModel(model SpeedModel) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.speed = model
	}
}

// WithCostSeed Seed for speed and rush-multiplier draws; negative means time-based
func WithCostSeed(seed int64) func(*Synthesizer) {
	return func(synth *Synthesizer) {
		synth.costSeed = seed
	}
}

// Synthesize Produces attributes for every canonical edge, in canonical order
/*
	Clearway and score assignments index by canonical edge position, so the
	same input graph and seeds reproduce the same classification. Every cost
	is >= the edge's free-flow base cost.
*/
func (synth *Synthesizer) Synthesize(edges []EdgeRecord) []EdgeAttributes {
	scores := binaryAssignment(len(edges), synth.densityPct, SeedScores)
	clearway := binaryAssignment(len(edges), synth.clearwayPct, SeedClearway)

	seed := synth.costSeed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	costRng := rand.New(rand.NewSource(seed))

	attrs := make([]EdgeAttributes, len(edges))
	for i, edge := range edges {
		speed := synth.speed(costRng)
		baseCost := edge.Distance / speed

		rushWidth := synth.baseWidth
		if clearway[i] == 1 {
			rushWidth = synth.clearwayWidth
		}

		attrs[i] = EdgeAttributes{
			Src:       edge.Src,
			Dst:       edge.Dst,
			Costs:     synth.travelCosts(baseCost, costRng),
			BaseWidth: synth.baseWidth,
			RushWidth: rushWidth,
			Distance:  edge.Distance,
			Score:     scores[i],
		}
	}
	return attrs
}

// travelCosts Walks the arrival grid through the rush-window automaton
/*
	Entering a window at its start raises costs by a position-dependent
	multiplier; reaching the end boundary leaves the window before the cost is
	computed, so boundary samples stay at base cost. Windows are visited in
	order and never revisited.
*/
func (synth *Synthesizer) travelCosts(baseCost float64, rng *rand.Rand) []float64 {
	windows := synth.grid.Windows
	costs := make([]float64, 0, len(synth.grid.ArrivalPoints))
	rushIdx := 0
	insideRush := false
	for _, t := range synth.grid.ArrivalPoints {
		if rushIdx < len(windows) {
			if t == windows[rushIdx].Start {
				insideRush = true
			} else if t >= windows[rushIdx].End && insideRush {
				insideRush = false
				rushIdx++
			}
		}
		cost := baseCost
		if insideRush {
			position := (t - windows[rushIdx].Start) / timeGridStep
			cost += baseCost * rushMultiplier(position, rng)
		}
		costs = append(costs, cost)
	}
	return costs
}

// rushMultiplier Piecewise congestion bump by half-hour position within the window
func rushMultiplier(position int, rng *rand.Rand) float64 {
	switch position {
	case 0, 4:
		return uniform(rng, 0.10, 0.15)
	case 1, 3:
		return uniform(rng, 0.20, 0.25)
	case 2:
		return uniform(rng, 0.30, 0.40)
	}
	return 0
}

// binaryAssignment Shuffled 0/1 vector with floor(n*pct/100) ones
func binaryAssignment(n, pct int, seed int64) []int {
	assignment := make([]int, n)
	ones := n * pct / 100
	for i := 0; i < ones; i++ {
		assignment[i] = 1
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		assignment[i], assignment[j] = assignment[j], assignment[i]
	})
	return assignment
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + (high-low)*rng.Float64()
}
