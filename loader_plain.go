package widepath

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PlainLoader Reads the whitespace-delimited two-file layout
/*
	Node file, one node per line:	id longitude latitude
	Edge file, one edge per line:	edgeId src dst distance

	Extra trailing columns are ignored; blank lines are skipped. The edge id
	column is dropped on load since (src, dst) is the key downstream.
*/
type PlainLoader struct {
	nodePath string
	edgePath string
}

func NewPlainLoader(nodePath, edgePath string) *PlainLoader {
	return &PlainLoader{
		nodePath: nodePath,
		edgePath: edgePath,
	}
}

// Load Reads both raw files into memory
func (loader *PlainLoader) Load() ([]NodeRecord, []EdgeRecord, error) {
	nodes, err := loader.loadNodes()
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't load nodes")
	}
	edges, err := loader.loadEdges()
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't load edges")
	}
	return nodes, edges, nil
}

func (loader *PlainLoader) loadNodes() ([]NodeRecord, error) {
	file, err := openInput(loader.nodePath)
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
		if len(parts) < 3 {
			return nil, &ParseError{File: loader.nodePath, Line: line, Reason: "expected at least 3 columns (id lon lat)"}
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, &ParseError{File: loader.nodePath, Line: line, Reason: "bad node id"}
		}
		lon, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, &ParseError{File: loader.nodePath, Line: line, Reason: "bad longitude"}
		}
		lat, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, &ParseError{File: loader.nodePath, Line: line, Reason: "bad latitude"}
		}
		nodes = append(nodes, NodeRecord{ID: id, Lat: lat, Lon: lon})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Scanner failed")
	}
	return nodes, nil
}

func (loader *PlainLoader) loadEdges() ([]EdgeRecord, error) {
	file, err := openInput(loader.edgePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	edges := []EdgeRecord{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return nil, &ParseError{File: loader.edgePath, Line: line, Reason: "expected at least 4 columns (edgeId src dst distance)"}
		}
		src, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, &ParseError{File: loader.edgePath, Line: line, Reason: "bad source node id"}
		}
		dst, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, &ParseError{File: loader.edgePath, Line: line, Reason: "bad target node id"}
		}
		distance, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, &ParseError{File: loader.edgePath, Line: line, Reason: "bad distance"}
		}
		edges = append(edges, EdgeRecord{Src: src, Dst: dst, Distance: distance})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Scanner failed")
	}
	return edges, nil
}

// openInput Opens a raw file, mapping a missing path to the error taxonomy
func openInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &InputNotFoundError{Path: path}
		}
		return nil, errors.Wrap(err, "File open")
	}
	return file, nil
}
