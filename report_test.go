package widepath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Source: 1042
Destination: 7
Departure Time: 990.0 minutes (16:30)
Budget: 45.5 minutes

--- Pareto Path #1 ---
Wideness Score: 4.93%
Right Turns: 7
Sharp Turns: 2
Travel Time: 38.25 minutes

--- Pareto Path #2 ---
Wideness Score: 3.40%
Right Turns: 0
Sharp Turns: 0
Travel Time: 44.10 minutes
`

func TestParseParetoReport(t *testing.T) {
	report, err := ParseParetoReport(strings.NewReader(sampleReport))
	require.NoError(t, err)

	assert.Equal(t, 1042, report.Source)
	assert.Equal(t, 7, report.Destination)
	assert.Equal(t, 990.0, report.DepartureMinutes)
	assert.Equal(t, "16:30", report.DepartureClock)
	assert.Equal(t, 45.5, report.BudgetMinutes)

	require.Len(t, report.Paths, 2)
	assert.Equal(t, ParetoPath{Index: 1, WidenessScore: 4.93, RightTurns: 7, SharpTurns: 2, TravelTime: 38.25}, report.Paths[0])
	assert.Equal(t, ParetoPath{Index: 2, WidenessScore: 3.40, RightTurns: 0, SharpTurns: 0, TravelTime: 44.10}, report.Paths[1])
}

func TestParseParetoReportWithoutHeader(t *testing.T) {
	_, err := ParseParetoReport(strings.NewReader("no routes here"))
	require.Error(t, err)
}

func TestParseParetoReportMalformedNumbers(t *testing.T) {
	// The dotted-number captures admit strings like '1.2.3'; those must be
	// rejected, not recorded as zero.
	malformedPath := `Source: 1
Destination: 2

--- Pareto Path #1 ---
Wideness Score: 4.93%
Right Turns: 7
Sharp Turns: 2
Travel Time: 1.2.3 minutes
`
	_, err := ParseParetoReport(strings.NewReader(malformedPath))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.2.3")

	malformedHeader := "Source: 1\nDestination: 2\nBudget: 4..5 minutes\n"
	_, err = ParseParetoReport(strings.NewReader(malformedHeader))
	require.Error(t, err)
}

func TestParseParetoReportNoPaths(t *testing.T) {
	report, err := ParseParetoReport(strings.NewReader("Source: 1\nDestination: 2\n"))
	require.NoError(t, err)
	assert.Empty(t, report.Paths)
}
