package widepath

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

var defaultHighwayTags = []string{
	"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
	"secondary", "secondary_link", "tertiary", "tertiary_link",
	"residential", "road", "unclassified",
}

// OSMLoader Extracts a raw road graph from an *.osm.pbf file
/*
	Ways carrying an accepted 'highway' tag are split at intersection nodes
	(nodes used by more than one way segment); every resulting span becomes a
	directed edge with haversine length in meters, plus the reverse edge when
	the way is not oneway. OSM node ids are sparse, so the output always needs
	the renumber policy.
*/
type OSMLoader struct {
	path    string
	tags    []string
	verbose bool
}

func NewOSMLoader(path string, options ...func(*OSMLoader)) *OSMLoader {
	loader := &OSMLoader{
		path:    path,
		tags:    defaultHighwayTags,
		verbose: false,
	}
	for _, option := range options {
		option(loader)
	}
	return loader
}

// WithHighwayTags Overrides the accepted set of 'highway' tag values
func WithHighwayTags(tags []string) func(*OSMLoader) {
	return func(loader *OSMLoader) {
		loader.tags = tags
	}
}

// WithVerbose Enables progress reporting on stdout
func WithVerbose(verbose bool) func(*OSMLoader) {
	return func(loader *OSMLoader) {
		loader.verbose = verbose
	}
}

func (loader *OSMLoader) acceptTag(tag string) bool {
	for i := range loader.tags {
		if loader.tags[i] == tag {
			return true
		}
	}
	return false
}

type osmWay struct {
	nodes  []osm.NodeID
	oneway bool
}

// Load Scans the PBF twice: ways first, then the nodes those ways reference
func (loader *OSMLoader) Load() ([]NodeRecord, []EdgeRecord, error) {
	file, err := openInput(loader.path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	scannerWays := osmpbf.New(context.Background(), file, 4)
	defer scannerWays.Close()

	ways := []osmWay{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if loader.verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		tag, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if !loader.acceptTag(tag) {
			continue
		}
		oneway := false
		if v, ok := tagMap["oneway"]; ok {
			if v == "yes" || v == "1" {
				oneway = true
			}
		}
		prepared := osmWay{
			nodes:  make([]osm.NodeID, len(way.Nodes)),
			oneway: oneway,
		}
		for i := range way.Nodes {
			prepared.nodes[i] = way.Nodes[i].ID
			nodesSeen[way.Nodes[i].ID] = struct{}{}
		}
		ways = append(ways, prepared)
	}
	if scannerWays.Err() != nil {
		return nil, nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	if loader.verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), file, 4)
	defer scannerNodes.Close()

	positions := make(map[osm.NodeID]orb.Point)
	if loader.verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			positions[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	if loader.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(positions))
	}

	nodes, edges, err := assembleWayGraph(ways, positions)
	if err != nil {
		return nil, nil, err
	}
	if loader.verbose {
		fmt.Printf("Prepared %d nodes, %d edges\n", len(nodes), len(edges))
	}
	return nodes, edges, nil
}

// assembleWayGraph Turns scanned ways and node positions into raw records
/*
	Ways are split at intersection nodes (use count above one), one edge per
	span with haversine length in meters; ways that are not oneway also emit
	the reverse edge for every span.
*/
func assembleWayGraph(ways []osmWay, positions map[osm.NodeID]orb.Point) ([]NodeRecord, []EdgeRecord, error) {
	useCount := make(map[osm.NodeID]int)
	for _, way := range ways {
		for i, nodeID := range way.nodes {
			if _, ok := positions[nodeID]; !ok {
				return nil, nil, &GraphIntegrityError{Reason: fmt.Sprintf("way references missing OSM node %d", nodeID)}
			}
			if i == 0 || i == len(way.nodes)-1 {
				useCount[nodeID] += 2
			} else {
				useCount[nodeID]++
			}
		}
	}

	edges := []EdgeRecord{}
	endpoints := make(map[osm.NodeID]struct{})
	for _, way := range ways {
		if len(way.nodes) < 2 {
			continue
		}
		source := way.nodes[0]
		spanMeters := 0.0
		for i := 1; i < len(way.nodes); i++ {
			spanMeters += geo.DistanceHaversine(positions[way.nodes[i-1]], positions[way.nodes[i]])
			if useCount[way.nodes[i]] > 1 || i == len(way.nodes)-1 {
				endpoints[source] = struct{}{}
				endpoints[way.nodes[i]] = struct{}{}
				edges = append(edges, EdgeRecord{Src: int(source), Dst: int(way.nodes[i]), Distance: spanMeters})
				if !way.oneway {
					edges = append(edges, EdgeRecord{Src: int(way.nodes[i]), Dst: int(source), Distance: spanMeters})
				}
				source = way.nodes[i]
				spanMeters = 0.0
			}
		}
	}

	nodes := make([]NodeRecord, 0, len(endpoints))
	for nodeID := range endpoints {
		pt := positions[nodeID]
		nodes = append(nodes, NodeRecord{ID: int(nodeID), Lat: pt.Lat(), Lon: pt.Lon()})
	}
	return nodes, edges, nil
}
