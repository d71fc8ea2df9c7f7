package widepath

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSON Renders the canonical graph as a GeoJSON FeatureCollection
/*
	Nodes become Point features (properties: id, cluster), edges become
	two-point LineString features (properties: src, dst, distance). Intended
	for eyeballing a converted network in any GeoJSON viewer.
*/
func PrepareGeoJSON(graph *CanonicalGraph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, node := range graph.Nodes {
		feature := geojson.NewPointFeature([]float64{node.Lon, node.Lat})
		feature.SetProperty("id", node.ID)
		feature.SetProperty("cluster", 1)
		fc.AddFeature(feature)
	}
	for _, edge := range graph.Edges {
		from := graph.Nodes[edge.Src]
		to := graph.Nodes[edge.Dst]
		feature := geojson.NewLineStringFeature([][]float64{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		})
		feature.SetProperty("src", edge.Src)
		feature.SetProperty("dst", edge.Dst)
		feature.SetProperty("distance", edge.Distance)
		fc.AddFeature(feature)
	}
	return fc
}

// ExportGeoJSONFile Writes the GeoJSON preview of the canonical graph
func ExportGeoJSONFile(fname string, graph *CanonicalGraph) error {
	b, err := PrepareGeoJSON(graph).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write geojson file")
	}
	return nil
}
