package widepath

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVEdgeListLoader Reads the single-file CSV edge-list layout
/*
	Expected header (order does not matter, extra columns are ignored):

		XCoord,YCoord,START_NODE,END_NODE,EDGE,LENGTH

	(XCoord, YCoord) are the projected coordinates of the START_NODE; LENGTH is
	the edge length in meters. Node positions are recovered in two passes: the
	first pass registers both endpoints of every edge (the destination gets the
	source's coordinates as a placeholder), the second pass overwrites each
	node's position from the rows where it appears as the source. Nodes that
	never appear as a source keep the placeholder; the renumber policy drops
	them anyway if no surviving edge touches them.
*/
type CSVEdgeListLoader struct {
	path    string
	project Projector
}

func NewCSVEdgeListLoader(path string, project Projector) *CSVEdgeListLoader {
	if project == nil {
		project = ApproxBNGToWGS84
	}
	return &CSVEdgeListLoader{
		path:    path,
		project: project,
	}
}

// Load Reads the edge list and reconstructs node records
func (loader *CSVEdgeListLoader) Load() ([]NodeRecord, []EdgeRecord, error) {
	file, err := openInput(loader.path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	// Ragged rows are caught below so they surface as a ParseError carrying
	// the offending line, not as the csv package's own error.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't read CSV header")
	}
	col := map[string]int{}
	for i := range header {
		col[strings.TrimSpace(header[i])] = i
	}
	lastCol := 0
	for _, name := range []string{"XCoord", "YCoord", "START_NODE", "END_NODE", "LENGTH"} {
		if _, ok := col[name]; !ok {
			return nil, nil, &ParseError{File: loader.path, Line: strings.Join(header, ","), Reason: "missing column " + name}
		}
		if col[name] > lastCol {
			lastCol = col[name]
		}
	}

	type row struct {
		x, y     float64
		src, dst int
		length   float64
	}
	rows := []row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, nil, &ParseError{File: loader.path, Line: fmt.Sprintf("line %d", csvErr.Line), Reason: csvErr.Err.Error()}
			}
			return nil, nil, errors.Wrap(err, "Can't read CSV record")
		}
		line := strings.Join(record, ",")
		if len(record) <= lastCol {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "wrong column count"}
		}
		x, err := strconv.ParseFloat(record[col["XCoord"]], 64)
		if err != nil {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "bad XCoord"}
		}
		y, err := strconv.ParseFloat(record[col["YCoord"]], 64)
		if err != nil {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "bad YCoord"}
		}
		src, err := strconv.Atoi(strings.TrimSpace(record[col["START_NODE"]]))
		if err != nil {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "bad START_NODE"}
		}
		dst, err := strconv.Atoi(strings.TrimSpace(record[col["END_NODE"]]))
		if err != nil {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "bad END_NODE"}
		}
		length, err := strconv.ParseFloat(record[col["LENGTH"]], 64)
		if err != nil {
			return nil, nil, &ParseError{File: loader.path, Line: line, Reason: "bad LENGTH"}
		}
		rows = append(rows, row{x: x, y: y, src: src, dst: dst, length: length})
	}

	// First pass: register endpoints, destination coordinates are placeholders.
	nodesByID := map[int]NodeRecord{}
	edges := make([]EdgeRecord, 0, len(rows))
	for i := range rows {
		lat, lon := loader.project(rows[i].x, rows[i].y)
		if _, ok := nodesByID[rows[i].src]; !ok {
			nodesByID[rows[i].src] = NodeRecord{ID: rows[i].src, Lat: lat, Lon: lon}
		}
		if _, ok := nodesByID[rows[i].dst]; !ok {
			nodesByID[rows[i].dst] = NodeRecord{ID: rows[i].dst, Lat: lat, Lon: lon}
		}
		edges = append(edges, EdgeRecord{Src: rows[i].src, Dst: rows[i].dst, Distance: rows[i].length})
	}
	// Second pass: each row carries the authoritative position of its source node.
	for i := range rows {
		lat, lon := loader.project(rows[i].x, rows[i].y)
		nodesByID[rows[i].src] = NodeRecord{ID: rows[i].src, Lat: lat, Lon: lon}
	}

	nodes := make([]NodeRecord, 0, len(nodesByID))
	for _, node := range nodesByID {
		nodes = append(nodes, node)
	}
	return nodes, edges, nil
}
