package widepath

import (
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// ParetoPath One non-dominated route block from the solver's report
type ParetoPath struct {
	Index         int
	WidenessScore float64
	RightTurns    int
	SharpTurns    int
	TravelTime    float64
}

// ParetoReport Parsed summary of the solver's textual output
type ParetoReport struct {
	Source           int
	Destination      int
	DepartureMinutes float64
	DepartureClock   string
	BudgetMinutes    float64
	Paths            []ParetoPath
}

var (
	reSource      = regexp.MustCompile(`Source: (\d+)`)
	reDestination = regexp.MustCompile(`Destination: (\d+)`)
	reDeparture   = regexp.MustCompile(`Departure Time: ([\d.]+) minutes \((\d+:\d+)\)`)
	reBudget      = regexp.MustCompile(`Budget: ([\d.]+) minutes`)
	reParetoPath  = regexp.MustCompile(`--- Pareto Path #(\d+) ---\s+` +
		`Wideness Score: ([\d.]+)%\s+` +
		`Right Turns: (\d+)\s+` +
		`Sharp Turns: (\d+)\s+` +
		`Travel Time: ([\d.]+) minutes`)
)

// ParseParetoReport Extracts the query header and every Pareto path block
/*
	The report is produced by the downstream solver; this parser only consumes
	it for human display. A report without a Source/Destination header is
	rejected, everything else is best effort.
*/
func ParseParetoReport(r io.Reader) (*ParetoReport, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read report")
	}
	text := string(content)

	srcMatch := reSource.FindStringSubmatch(text)
	dstMatch := reDestination.FindStringSubmatch(text)
	if srcMatch == nil || dstMatch == nil {
		return nil, errors.New("report carries no source/destination pair")
	}

	report := &ParetoReport{}
	report.Source, err = strconv.Atoi(srcMatch[1])
	if err != nil {
		return nil, errors.Wrap(err, "Bad source node id")
	}
	report.Destination, err = strconv.Atoi(dstMatch[1])
	if err != nil {
		return nil, errors.Wrap(err, "Bad destination node id")
	}

	// The dotted-number captures admit strings like '1.2.3'; reject those
	// instead of recording a zero value.
	if m := reDeparture.FindStringSubmatch(text); m != nil {
		report.DepartureMinutes, err = strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad departure time '%s'", m[1])
		}
		report.DepartureClock = m[2]
	}
	if m := reBudget.FindStringSubmatch(text); m != nil {
		report.BudgetMinutes, err = strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad budget '%s'", m[1])
		}
	}

	for _, m := range reParetoPath.FindAllStringSubmatch(text, -1) {
		var path ParetoPath
		path.Index, err = strconv.Atoi(m[1])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad path index '%s'", m[1])
		}
		path.WidenessScore, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad wideness score '%s' in path #%d", m[2], path.Index)
		}
		path.RightTurns, err = strconv.Atoi(m[3])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad right turn count '%s' in path #%d", m[3], path.Index)
		}
		path.SharpTurns, err = strconv.Atoi(m[4])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad sharp turn count '%s' in path #%d", m[4], path.Index)
		}
		path.TravelTime, err = strconv.ParseFloat(m[5], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad travel time '%s' in path #%d", m[5], path.Index)
		}
		report.Paths = append(report.Paths, path)
	}
	return report, nil
}

// ParseParetoReportFile Convenience wrapper over ParseParetoReport
func ParseParetoReportFile(fname string) (*ParetoReport, error) {
	file, err := os.Open(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &InputNotFoundError{Path: fname}
		}
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return ParseParetoReport(file)
}
