package widepath

import (
	"errors"
	"os"
	"path"
	"testing"
)

func TestPlainLoader(t *testing.T) {
	dir := t.TempDir()
	nodeFile := path.Join(dir, "node coordinates.txt")
	edgeFile := path.Join(dir, "edge distance.txt")
	nodeBody := "0 -122.0 37.0\n\n1 -122.1 37.1\n"
	edgeBody := "e1 0 1 5.0\ne2 1 0 4.25\n"
	if err := os.WriteFile(nodeFile, []byte(nodeBody), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edgeFile, []byte(edgeBody), 0644); err != nil {
		t.Fatal(err)
	}

	nodes, edges, err := NewPlainLoader(nodeFile, edgeFile).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("Node count must be 2, but got %d", len(nodes))
	}
	// Column order in the raw file is id, longitude, latitude.
	if nodes[0].Lon != -122.0 || nodes[0].Lat != 37.0 {
		t.Errorf("Node 0 must be lon=-122 lat=37, but got %v", nodes[0])
	}
	if len(edges) != 2 {
		t.Fatalf("Edge count must be 2, but got %d", len(edges))
	}
	if edges[1] != (EdgeRecord{Src: 1, Dst: 0, Distance: 4.25}) {
		t.Errorf("Edge 1 must drop the edge-id column, but got %v", edges[1])
	}
}

func TestPlainLoaderMalformedLine(t *testing.T) {
	dir := t.TempDir()
	nodeFile := path.Join(dir, "nodes.txt")
	edgeFile := path.Join(dir, "edges.txt")
	if err := os.WriteFile(nodeFile, []byte("0 -122.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edgeFile, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := NewPlainLoader(nodeFile, edgeFile).Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, but got %v", err)
	}
	if parseErr.Line != "0 -122.0" {
		t.Errorf("ParseError must carry the offending line, but got '%s'", parseErr.Line)
	}
}

func TestPlainLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := NewPlainLoader(path.Join(dir, "absent.txt"), path.Join(dir, "absent2.txt")).Load()
	var notFound *InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected InputNotFoundError, but got %v", err)
	}
}

func TestCSVEdgeListLoader(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "London_Edgelist.csv")
	body := "XCoord,YCoord,START_NODE,END_NODE,EDGE,LENGTH\n" +
		"530000,180000,7,9,1,100.5\n" +
		"531000,181000,9,7,2,100.5\n" +
		"530500,180500,7,15,3,55\n"
	if err := os.WriteFile(fname, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	nodes, edges, err := NewCSVEdgeListLoader(fname, ApproxBNGToWGS84).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Fatalf("Node count must be 3, but got %d", len(nodes))
	}
	if len(edges) != 3 {
		t.Fatalf("Edge count must be 3, but got %d", len(edges))
	}

	byID := map[int]NodeRecord{}
	for _, node := range nodes {
		byID[node.ID] = node
	}
	// Node 9 appears as a source in the second row, so its position must come
	// from that row, not from the first-pass placeholder.
	lat9, lon9 := ApproxBNGToWGS84(531000, 181000)
	if byID[9].Lat != lat9 || byID[9].Lon != lon9 {
		t.Errorf("Node 9 must carry second-pass coordinates, but got %v", byID[9])
	}
	// Node 15 never appears as a source and keeps its placeholder (the
	// position of the row that introduced it).
	lat15, lon15 := ApproxBNGToWGS84(530500, 180500)
	if byID[15].Lat != lat15 || byID[15].Lon != lon15 {
		t.Errorf("Node 15 must keep the placeholder coordinates, but got %v", byID[15])
	}
}

func TestCSVEdgeListLoaderRaggedRow(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "ragged.csv")
	body := "XCoord,YCoord,START_NODE,END_NODE,EDGE,LENGTH\n" +
		"530000,180000,7,9,1,100.5\n" +
		"531000,181000,9\n"
	if err := os.WriteFile(fname, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := NewCSVEdgeListLoader(fname, nil).Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for a row with too few columns, but got %v", err)
	}
	if parseErr.Line != "531000,181000,9" {
		t.Errorf("ParseError must carry the offending line, but got '%s'", parseErr.Line)
	}
	if parseErr.Reason != "wrong column count" {
		t.Errorf("ParseError reason must name the column count, but got '%s'", parseErr.Reason)
	}
}

func TestCSVEdgeListLoaderMissingColumn(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "broken.csv")
	if err := os.WriteFile(fname, []byte("XCoord,YCoord,START_NODE,END_NODE\n1,2,3,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := NewCSVEdgeListLoader(fname, nil).Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for missing LENGTH column, but got %v", err)
	}
}
