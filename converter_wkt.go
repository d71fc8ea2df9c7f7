package widepath

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTNode Returns WKT representation of a node
func PrepareWKTNode(node NodeRecord) string {
	return wkt.MarshalString(orb.Point{node.Lon, node.Lat})
}

// PrepareWKTEdge Returns WKT representation of an edge as a two-point LineString
func PrepareWKTEdge(graph *CanonicalGraph, edge EdgeRecord) string {
	from := graph.Nodes[edge.Src]
	to := graph.Nodes[edge.Dst]
	return wkt.MarshalString(orb.LineString{
		orb.Point{from.Lon, from.Lat},
		orb.Point{to.Lon, to.Lat},
	})
}
