package widepath

import (
	"fmt"
	"sort"
	"strings"
)

// IDPolicy How the canonicalizer arrives at a contiguous 0..N-1 node-id space
type IDPolicy int

const (
	// ValidateIDs fails when the raw ids are not already exactly {0..N-1}.
	ValidateIDs = IDPolicy(iota + 1)
	// RenumberIDs rebuilds the id space from the node ids referenced by
	// surviving edges, in ascending raw-id order.
	RenumberIDs
)

func (policy IDPolicy) String() string {
	switch policy {
	case ValidateIDs:
		return "validate"
	case RenumberIDs:
		return "renumber"
	}
	return "unknown"
}

// CanonicalGraph Deduplicated graph over a contiguous id space
/*
	Nodes are indexed by id (slice position == node id). Edges are unique by
	(src, dst) and sorted ascending by that pair; every endpoint is a valid
	node index. This is the binding contract with the downstream solver.
*/
type CanonicalGraph struct {
	Nodes []NodeRecord
	Edges []EdgeRecord
}

// DedupeEdges Collapses parallel edges, keeping the smallest distance per (src, dst)
/*
	Ties between equal-distance duplicates keep the first-encountered record.
	The result is sorted ascending by (src, dst), so the operation is
	idempotent.
*/
func DedupeEdges(edges []EdgeRecord) []EdgeRecord {
	best := make(map[[2]int]EdgeRecord, len(edges))
	for _, edge := range edges {
		key := [2]int{edge.Src, edge.Dst}
		if kept, ok := best[key]; !ok || edge.Distance < kept.Distance {
			best[key] = edge
		}
	}
	deduped := make([]EdgeRecord, 0, len(best))
	for _, edge := range best {
		deduped = append(deduped, edge)
	}
	sortEdges(deduped)
	return deduped
}

func sortEdges(edges []EdgeRecord) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		return edges[i].Dst < edges[j].Dst
	})
}

// Canonicalize Produces the canonical graph from raw records
/*
	Under ValidateIDs the raw id space is checked before anything else, so a
	broken dataset fails loudly instead of being silently repaired. Under
	RenumberIDs the referenced ids are compacted to 0..M-1 by ascending raw id
	and unreferenced nodes are dropped. Both paths end with the same integrity
	check over the final graph.
*/
func Canonicalize(nodes []NodeRecord, edges []EdgeRecord, policy IDPolicy) (*CanonicalGraph, error) {
	if len(nodes) == 0 {
		return nil, &GraphIntegrityError{Reason: "raw node set is empty"}
	}
	byID := make(map[int]NodeRecord, len(nodes))
	for _, node := range nodes {
		if _, ok := byID[node.ID]; ok {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("duplicate node id %d", node.ID)}
		}
		byID[node.ID] = node
	}

	if policy == ValidateIDs {
		if err := ensureContiguous(byID, edges); err != nil {
			return nil, err
		}
	}

	deduped := DedupeEdges(edges)

	var graph *CanonicalGraph
	var err error
	switch policy {
	case ValidateIDs:
		graph = assembleValidated(byID, deduped)
	case RenumberIDs:
		graph, err = renumber(byID, deduped)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &GraphIntegrityError{Reason: fmt.Sprintf("unknown id policy %d", policy)}
	}

	if err := graph.checkIntegrity(); err != nil {
		return nil, err
	}
	return graph, nil
}

func ensureContiguous(byID map[int]NodeRecord, edges []EdgeRecord) error {
	maxID := 0
	for id := range byID {
		if id > maxID {
			maxID = id
		}
	}
	missing := []int{}
	for id := 0; id <= maxID; id++ {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &GraphIntegrityError{Reason: "node ids are not contiguous from 0..N-1, missing: " + joinIDs(missing, 20)}
	}
	unknown := []int{}
	seen := map[int]struct{}{}
	for _, edge := range edges {
		for _, id := range []int{edge.Src, edge.Dst} {
			if _, ok := byID[id]; !ok {
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					unknown = append(unknown, id)
				}
			}
		}
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		return &GraphIntegrityError{Reason: "edges reference unknown nodes: " + joinIDs(unknown, 20)}
	}
	return nil
}

func assembleValidated(byID map[int]NodeRecord, deduped []EdgeRecord) *CanonicalGraph {
	nodes := make([]NodeRecord, len(byID))
	for id, node := range byID {
		nodes[id] = node
	}
	return &CanonicalGraph{Nodes: nodes, Edges: deduped}
}

// renumber Bijection between referenced raw ids (ascending) and 0..M-1
/*
	The ordering is part of the contract: it determines which physical
	location each numeric id refers to downstream.
*/
func renumber(byID map[int]NodeRecord, deduped []EdgeRecord) (*CanonicalGraph, error) {
	referenced := map[int]struct{}{}
	for _, edge := range deduped {
		referenced[edge.Src] = struct{}{}
		referenced[edge.Dst] = struct{}{}
	}
	rawIDs := make([]int, 0, len(referenced))
	for id := range referenced {
		if _, ok := byID[id]; !ok {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("edges reference unknown node %d", id)}
		}
		rawIDs = append(rawIDs, id)
	}
	sort.Ints(rawIDs)

	oldToNew := make(map[int]int, len(rawIDs))
	nodes := make([]NodeRecord, len(rawIDs))
	for newID, rawID := range rawIDs {
		oldToNew[rawID] = newID
		node := byID[rawID]
		node.ID = newID
		nodes[newID] = node
	}
	edges := make([]EdgeRecord, len(deduped))
	for i, edge := range deduped {
		edges[i] = EdgeRecord{Src: oldToNew[edge.Src], Dst: oldToNew[edge.Dst], Distance: edge.Distance}
	}
	// Remapping is monotonic in both components, sort order survives it; the
	// edges stay sorted by construction.
	return &CanonicalGraph{Nodes: nodes, Edges: edges}, nil
}

func (graph *CanonicalGraph) checkIntegrity() error {
	n := len(graph.Nodes)
	if n == 0 {
		return &GraphIntegrityError{Reason: "canonical graph has no nodes"}
	}
	for i, node := range graph.Nodes {
		if node.ID != i {
			return &GraphIntegrityError{Reason: fmt.Sprintf("node at index %d carries id %d", i, node.ID)}
		}
	}
	for _, edge := range graph.Edges {
		if edge.Src < 0 || edge.Src >= n || edge.Dst < 0 || edge.Dst >= n {
			return &GraphIntegrityError{Reason: fmt.Sprintf("edge (%d,%d) outside node id space 0..%d", edge.Src, edge.Dst, n-1)}
		}
	}
	return nil
}

func joinIDs(ids []int, limit int) string {
	if len(ids) > limit {
		ids = ids[:limit]
	}
	parts := make([]string, len(ids))
	for i := range ids {
		parts[i] = fmt.Sprintf("%d", ids[i])
	}
	return strings.Join(parts, ",")
}
