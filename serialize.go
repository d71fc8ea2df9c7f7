package widepath

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NodesFileName Canonical node file name for an N-node graph
func NodesFileName(n int) string {
	return fmt.Sprintf("nodes_%d.txt", n)
}

// EdgesFileName Canonical edge file name for an N-node graph
func EdgesFileName(n int) string {
	return fmt.Sprintf("edges_%d.txt", n)
}

// WriteNodesFile Writes one line per node, ascending by id
/*
	Format:	<id> <lat> <lon> <clusterId>

	Every node is assigned cluster 1. Input is not mutated.
*/
func WriteNodesFile(fname string, nodes []NodeRecord) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create nodes file")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	ordered := make([]NodeRecord, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, node := range ordered {
		_, err = fmt.Fprintf(writer, "%d %s %s 1\n", node.ID, formatFloat(node.Lat), formatFloat(node.Lon))
		if err != nil {
			return errors.Wrap(err, "Can't write node line")
		}
	}
	return nil
}

// WriteEdgesFile Writes the time grid header and one line per synthesized edge
/*
	Line 1:	arrival points, space-separated
	Line 2:	width points, space-separated (currently just 0)
	Then:	<src> <dst> <cost_1,...,cost_K> <baseWidth> <rushWidth> <distance>

	Costs are comma-joined with fixed 6-decimal formatting, K == number of
	arrival points. Edges are written in the order given, which is the
	canonical (src, dst) order.
*/
func WriteEdgesFile(fname string, grid TimeGrid, edges []EdgeAttributes) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create edges file")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	_, err = fmt.Fprintln(writer, joinInts(grid.ArrivalPoints))
	if err != nil {
		return errors.Wrap(err, "Can't write arrival points")
	}
	_, err = fmt.Fprintln(writer, joinInts(grid.WidthPoints))
	if err != nil {
		return errors.Wrap(err, "Can't write width points")
	}

	for i := range edges {
		costs := make([]string, len(edges[i].Costs))
		for j := range edges[i].Costs {
			costs[j] = fmt.Sprintf("%.6f", edges[i].Costs[j])
		}
		_, err = fmt.Fprintf(writer, "%d %d %s %s %s %s\n",
			edges[i].Src,
			edges[i].Dst,
			strings.Join(costs, ","),
			formatFloat(edges[i].BaseWidth),
			formatFloat(edges[i].RushWidth),
			formatFloat(edges[i].Distance),
		)
		if err != nil {
			return errors.Wrap(err, "Can't write edge line")
		}
	}
	return nil
}

// ReadNodesFile Conforming reader for the node wire format
func ReadNodesFile(fname string) ([]NodeRecord, error) {
	file, err := openInput(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	nodes := []NodeRecord{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 4 {
			return nil, &ParseError{File: fname, Line: line, Reason: "expected 4 columns (id lat lon cluster)"}
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, &ParseError{File: fname, Line: line, Reason: "bad node id"}
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, &ParseError{File: fname, Line: line, Reason: "bad latitude"}
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, &ParseError{File: fname, Line: line, Reason: "bad longitude"}
		}
		nodes = append(nodes, NodeRecord{ID: id, Lat: lat, Lon: lon})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Scanner failed")
	}
	return nodes, nil
}

// ReadEdgesFile Conforming reader for the edge wire format
func ReadEdgesFile(fname string) (TimeGrid, []EdgeAttributes, error) {
	var grid TimeGrid
	file, err := openInput(fname)
	if err != nil {
		return grid, nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return grid, nil, &ParseError{File: fname, Line: "", Reason: "missing arrival points header"}
	}
	grid.ArrivalPoints, err = splitInts(scanner.Text())
	if err != nil {
		return grid, nil, &ParseError{File: fname, Line: scanner.Text(), Reason: "bad arrival points"}
	}
	if !scanner.Scan() {
		return grid, nil, &ParseError{File: fname, Line: "", Reason: "missing width points header"}
	}
	grid.WidthPoints, err = splitInts(scanner.Text())
	if err != nil {
		return grid, nil, &ParseError{File: fname, Line: scanner.Text(), Reason: "bad width points"}
	}

	edges := []EdgeAttributes{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 6 {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "expected 6 columns"}
		}
		var edge EdgeAttributes
		edge.Src, err = strconv.Atoi(parts[0])
		if err != nil {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad source node id"}
		}
		edge.Dst, err = strconv.Atoi(parts[1])
		if err != nil {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad target node id"}
		}
		for _, costStr := range strings.Split(parts[2], ",") {
			cost, err := strconv.ParseFloat(costStr, 64)
			if err != nil {
				return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad travel cost"}
			}
			edge.Costs = append(edge.Costs, cost)
		}
		edge.BaseWidth, err = strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad base width"}
		}
		edge.RushWidth, err = strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad rush width"}
		}
		edge.Distance, err = strconv.ParseFloat(parts[5], 64)
		if err != nil {
			return grid, nil, &ParseError{File: fname, Line: line, Reason: "bad distance"}
		}
		edges = append(edges, edge)
	}
	if err := scanner.Err(); err != nil {
		return grid, nil, errors.Wrap(err, "Scanner failed")
	}
	return grid, edges, nil
}

// formatFloat Shortest decimal representation without exponent notation
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i := range values {
		parts[i] = strconv.Itoa(values[i])
	}
	return strings.Join(parts, " ")
}

func splitInts(line string) ([]int, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	values := make([]int, len(fields))
	for i := range fields {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
