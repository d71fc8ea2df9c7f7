package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dkhrmv/widepath"
)

var (
	reportFile = flag.String("report", "output/pareto_pairs_test.txt", "Solver report file to summarize")
)

func main() {

	flag.Parse()

	report, err := widepath.ParseParetoReportFile(*reportFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println("Pareto optimal route summary")
	fmt.Printf("\tSource node:      %d\n", report.Source)
	fmt.Printf("\tDestination node: %d\n", report.Destination)
	if report.DepartureClock != "" {
		fmt.Printf("\tDeparture time:   %s (%.1f minutes)\n", report.DepartureClock, report.DepartureMinutes)
	}
	if report.BudgetMinutes > 0 {
		fmt.Printf("\tBudget:           %.1f minutes\n", report.BudgetMinutes)
	}
	fmt.Printf("\tPareto routes:    %d\n\n", len(report.Paths))

	if len(report.Paths) == 0 {
		return
	}

	fmt.Printf("%6s %10s %8s %8s %10s\n", "Path", "Wideness", "R-Turns", "S-Turns", "Travel")
	for _, p := range report.Paths {
		fmt.Printf("%6s %9.2f%% %8d %8d %7.2f min\n",
			fmt.Sprintf("#%d", p.Index), p.WidenessScore, p.RightTurns, p.SharpTurns, p.TravelTime)
	}
	fmt.Println()
	fmt.Println("All listed paths are Pareto optimal: no path dominates another on both wideness and turn count.")
}
