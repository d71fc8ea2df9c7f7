package widepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEdges(n int) []EdgeRecord {
	edges := make([]EdgeRecord, n)
	for i := 0; i < n; i++ {
		edges[i] = EdgeRecord{Src: i, Dst: i + 1, Distance: float64(i%17) + 0.5}
	}
	return edges
}

func TestCostFloorAndAlignment(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	synth := NewSynthesizer(grid)
	attrs := synth.Synthesize(testEdges(200))
	require.Len(t, attrs, 200)
	for _, attr := range attrs {
		require.Len(t, attr.Costs, len(grid.ArrivalPoints))
		// The midnight sample is outside any rush window, so it is the
		// free-flow base cost and a floor for every other sample.
		base := attr.Costs[0]
		for i, cost := range attr.Costs {
			assert.GreaterOrEqual(t, cost, base, "cost at point %d below free-flow base", i)
		}
	}
}

func TestRushBoundarySamplesStayAtBase(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	synth := NewSynthesizer(grid)
	attrs := synth.Synthesize(testEdges(50))
	for _, attr := range attrs {
		base := attr.Costs[0]
		for i, tp := range grid.ArrivalPoints {
			for _, window := range grid.Windows {
				if tp == window.End {
					assert.Equal(t, base, attr.Costs[i], "window end boundary must stay at base cost")
				}
			}
			if tp == grid.Windows[1].Start+60 {
				// Mid-window peak must actually be elevated.
				assert.Greater(t, attr.Costs[i], base)
			}
		}
	}
}

func TestClearwayAssignment(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	synth := NewSynthesizer(grid,
		WithBaseWidth(3.5),
		WithClearwayWidth(4.5),
		WithClearwayPercentage(5),
	)
	attrs := synth.Synthesize(testEdges(100))

	clearways := 0
	for _, attr := range attrs {
		assert.Equal(t, 3.5, attr.BaseWidth)
		assert.GreaterOrEqual(t, attr.RushWidth, attr.BaseWidth)
		switch attr.RushWidth {
		case 4.5:
			clearways++
		case 3.5:
		default:
			t.Errorf("unexpected rush width %f", attr.RushWidth)
		}
	}
	assert.Equal(t, 5, clearways, "floor(100*5/100) edges must be clearways")
}

func TestScoreDensity(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	synth := NewSynthesizer(grid, WithScoreDensity(20))
	attrs := synth.Synthesize(testEdges(250))
	positive := 0
	for _, attr := range attrs {
		positive += attr.Score
	}
	assert.Equal(t, 50, positive)
}

func TestSynthesisReproducible(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	edges := testEdges(80)
	first := NewSynthesizer(grid, WithCostSeed(7)).Synthesize(edges)
	second := NewSynthesizer(grid, WithCostSeed(7)).Synthesize(edges)
	assert.Equal(t, first, second)
}

func TestClassificationIndependentOfCostSeed(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	edges := testEdges(80)
	first := NewSynthesizer(grid, WithCostSeed(1)).Synthesize(edges)
	second := NewSynthesizer(grid, WithCostSeed(999)).Synthesize(edges)
	for i := range first {
		assert.Equal(t, first[i].RushWidth, second[i].RushWidth, "clearway classification must not depend on the cost stream")
		assert.Equal(t, first[i].Score, second[i].Score, "score assignment must not depend on the cost stream")
	}
}

func TestDistanceCarriedThrough(t *testing.T) {
	grid := BuildTimeGrid(DefaultRushWindows)
	edges := testEdges(10)
	attrs := NewSynthesizer(grid).Synthesize(edges)
	for i := range edges {
		assert.Equal(t, edges[i].Src, attrs[i].Src)
		assert.Equal(t, edges[i].Dst, attrs[i].Dst)
		assert.Equal(t, edges[i].Distance, attrs[i].Distance)
	}
}
