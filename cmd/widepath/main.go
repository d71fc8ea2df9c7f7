package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/LdDl/ch"
	"github.com/dkhrmv/widepath"
)

var defaults = widepath.DefaultConfig()

var (
	dataset    = flag.String("dataset", "plain", "Raw dataset layout. Expected values: plain (whitespace node+edge files) / csv (single edge-list CSV) / osm (*.osm.pbf file)")
	input      = flag.String("input", defaults.InputDir, "Input directory containing the raw files")
	output     = flag.String("output", defaults.OutputDir, "Output directory for the wide-path formatted files")
	nodeFile   = flag.String("nodes", "node coordinates.txt", "Node file name inside the input directory (plain layout)")
	edgeFile   = flag.String("edges", "edge distance.txt", "Edge file name inside the input directory (plain layout)")
	csvFile    = flag.String("edgelist", "London_Edgelist.csv", "Edge-list file name inside the input directory (csv layout)")
	osmFile    = flag.String("osm", "my_graph.osm.pbf", "OSM PBF file name inside the input directory (osm layout)")
	configFile = flag.String("config", "", "Optional HCL configuration file; explicitly set flags win over it")

	baseWidth     = flag.Float64("base-width", defaults.BaseWidth, "Base lane width (m)")
	rushWidth     = flag.Float64("rush-width", defaults.RushWidth, "Rush-hour width (m) for non-clearway roads (recognized, kept for the solver's forward compatibility)")
	clearwayWidth = flag.Float64("clearway-width", defaults.ClearwayWidth, "Clearway width during rush hour (m)")
	clearwayPct   = flag.Int("clearway-pct", defaults.ClearwayPercentage, "Percentage of roads with the urban clearway condition")
	density       = flag.Int("density", defaults.ScoreDensity, "Percentage of edges with positive scores")
	speed         = flag.Float64("speed", defaults.BaseSpeed, "Base speed in meters per minute (csv and osm layouts)")
	costSeed      = flag.Int64("cost-seed", widepath.DefaultCostSeed, "Seed for per-edge speed and rush-multiplier draws; negative switches to time-based seeding (run-to-run variability)")

	geojsonOut = flag.String("geojson", "", "Optional file name for a GeoJSON preview of the canonical graph")
	verify     = flag.Bool("verify", false, "Load the converted graph into a contraction-hierarchies structure and run a sample shortest-path query")
)

func main() {

	flag.Parse()

	cfg := widepath.DefaultConfig()
	if *configFile != "" {
		fileCfg, err := widepath.LoadConfigFile(*configFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cfg = fileCfg
	}
	applySetFlags(&cfg)

	loader, policy, speedModel, err := pickDataset(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Loading %s dataset from '%s'...", *dataset, cfg.InputDir)
	st := time.Now()
	nodes, edges, err := loader.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Done in %v\n\tNodes: %d Edges: %d\n", time.Since(st), len(nodes), len(edges))

	fmt.Printf("Canonicalizing (%s policy)...", policy)
	st = time.Now()
	graph, err := widepath.Canonicalize(nodes, edges, policy)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Done in %v\n\tNodes: %d Edges: %d\n", time.Since(st), len(graph.Nodes), len(graph.Edges))

	grid := widepath.BuildTimeGrid(widepath.DefaultRushWindows)
	synth := widepath.NewSynthesizer(grid,
		widepath.WithBaseWidth(cfg.BaseWidth),
		widepath.WithClearwayWidth(cfg.ClearwayWidth),
		widepath.WithClearwayPercentage(cfg.ClearwayPercentage),
		widepath.WithScoreDensity(cfg.ScoreDensity),
		widepath.WithSpeedModel(speedModel),
		widepath.WithCostSeed(*costSeed),
	)

	fmt.Printf("Synthesizing time-dependent attributes...")
	st = time.Now()
	attrs := synth.Synthesize(graph.Edges)
	fmt.Printf("Done in %v\n", time.Since(st))

	err = os.MkdirAll(cfg.OutputDir, 0755)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	n := len(graph.Nodes)
	nodesOut := path.Join(cfg.OutputDir, widepath.NodesFileName(n))
	edgesOut := path.Join(cfg.OutputDir, widepath.EdgesFileName(n))

	err = widepath.WriteNodesFile(nodesOut, graph.Nodes)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	err = widepath.WriteEdgesFile(edgesOut, grid, attrs)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cleanupStaleOutputs(cfg.OutputDir, n)

	fmt.Println("Conversion complete")
	fmt.Printf("\tnodes -> %s\n", nodesOut)
	fmt.Printf("\tedges -> %s\n", edgesOut)
	fmt.Printf("\tTime grid: %d points (rush hours: 7:30-9:30am, 4:00-6:30pm)\n", len(grid.ArrivalPoints))
	fmt.Printf("\tClearway: %d%% of roads widen to %vm during rush hour\n", cfg.ClearwayPercentage, cfg.ClearwayWidth)

	if *geojsonOut != "" {
		err = widepath.ExportGeoJSONFile(*geojsonOut, graph)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("\tgeojson -> %s\n", *geojsonOut)
	}

	if *verify {
		err = verifyRoutable(graph, attrs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}

// applySetFlags Explicitly set flags override config-file values
func applySetFlags(cfg *widepath.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputDir = *input
		case "output":
			cfg.OutputDir = *output
		case "base-width":
			cfg.BaseWidth = *baseWidth
		case "rush-width":
			cfg.RushWidth = *rushWidth
		case "clearway-width":
			cfg.ClearwayWidth = *clearwayWidth
		case "clearway-pct":
			cfg.ClearwayPercentage = *clearwayPct
		case "density":
			cfg.ScoreDensity = *density
		case "speed":
			cfg.BaseSpeed = *speed
		}
	})
}

// pickDataset Selects loader, id policy and speed model per dataset layout
/*
	The plain layout ships km distances with ids already contiguous, so it is
	validated and costed from a 20-25 mph draw. The csv and osm layouts carry
	meter distances over sparse id spaces, so they are renumbered and costed
	from the configured base speed scaled 80-120%.
*/
func pickDataset(cfg widepath.Config) (widepath.DatasetLoader, widepath.IDPolicy, widepath.SpeedModel, error) {
	switch *dataset {
	case "plain":
		loader := widepath.NewPlainLoader(path.Join(cfg.InputDir, *nodeFile), path.Join(cfg.InputDir, *edgeFile))
		return loader, widepath.ValidateIDs, widepath.UniformMPHSpeed(20, 25), nil
	case "csv":
		loader := widepath.NewCSVEdgeListLoader(path.Join(cfg.InputDir, *csvFile), widepath.ApproxBNGToWGS84)
		return loader, widepath.RenumberIDs, widepath.ScaledSpeed(cfg.BaseSpeed, 0.8, 1.2), nil
	case "osm":
		loader := widepath.NewOSMLoader(path.Join(cfg.InputDir, *osmFile), widepath.WithVerbose(true))
		return loader, widepath.RenumberIDs, widepath.ScaledSpeed(cfg.BaseSpeed, 0.8, 1.2), nil
	}
	return nil, 0, nil, fmt.Errorf("unknown dataset layout '%s'", *dataset)
}

// cleanupStaleOutputs Removes the obsolete split-format files for the same graph size
func cleanupStaleOutputs(dir string, n int) {
	stale := []string{
		path.Join(dir, fmt.Sprintf("node_%d.txt", n)),
		path.Join(dir, fmt.Sprintf("edge_%d.txt", n)),
	}
	for _, fname := range stale {
		if _, err := os.Stat(fname); err == nil {
			if err := os.Remove(fname); err == nil {
				fmt.Printf("\tRemoved old file %s\n", fname)
			}
		}
	}
}

// verifyRoutable Sanity shortest-path query over the converted graph
func verifyRoutable(graph *widepath.CanonicalGraph, attrs []widepath.EdgeAttributes) error {
	fmt.Printf("Verifying routability...")
	st := time.Now()
	chGraph := ch.Graph{}
	for _, node := range graph.Nodes {
		if err := chGraph.CreateVertex(int64(node.ID)); err != nil {
			return err
		}
	}
	for i := range attrs {
		// Free-flow cost (the midnight sample) as the query weight.
		if err := chGraph.AddEdge(int64(attrs[i].Src), int64(attrs[i].Dst), attrs[i].Costs[0]); err != nil {
			return err
		}
	}
	chGraph.PrepareContractionHierarchies()
	source := int64(0)
	target := int64(len(graph.Nodes) - 1)
	cost, route := chGraph.ShortestPath(source, target)
	if len(route) == 0 {
		fmt.Printf("Done in %v\n\tNo route %d -> %d (graph may be disconnected, output is still valid)\n", time.Since(st), source, target)
		return nil
	}
	fmt.Printf("Done in %v\n\tSample route %d -> %d: %d hops, %f minutes free-flow\n", time.Since(st), source, target, len(route), cost)
	return nil
}
