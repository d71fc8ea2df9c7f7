package widepath

// RushWindow Time-of-day interval with elevated travel cost, minutes from midnight
/*
	The end boundary belongs to the sampling grid but the cost model treats
	reaching it as leaving the window.
*/
type RushWindow struct {
	Start int
	End   int
}

// DefaultRushWindows Morning 7:30-9:30 and evening 16:00-18:30
var DefaultRushWindows = []RushWindow{
	{Start: 7*60 + 30, End: 9*60 + 30},
	{Start: 16 * 60, End: 18*60 + 30},
}

// timeGridStep Sampling step inside a rush window, minutes
const timeGridStep = 30

// TimeGrid Shared sampling grid indexed by every edge's cost vector
/*
	ArrivalPoints is a hard contract with the downstream solver: vector length
	and positional meaning must match exactly. WidthPoints is degenerate (just
	0), reserved for per-width time dependence, and not read by the consumer.
*/
type TimeGrid struct {
	ArrivalPoints []int
	WidthPoints   []int
	Windows       []RushWindow
}

// BuildTimeGrid Produces the arrival grid for the given rush windows
/*
	Starts at 0, then samples every window from its start to its end boundary
	inclusive, every 30 minutes, windows in chronological order. The default
	windows yield 1 + 5 + 6 = 12 strictly increasing points.
*/
func BuildTimeGrid(windows []RushWindow) TimeGrid {
	arrival := []int{0}
	for _, window := range windows {
		for t := window.Start; t <= window.End; t += timeGridStep {
			arrival = append(arrival, t)
		}
	}
	return TimeGrid{
		ArrivalPoints: arrival,
		WidthPoints:   []int{0},
		Windows:       windows,
	}
}
