package widepath

// NodeRecord Raw graph vertex as shipped by a dataset
type NodeRecord struct {
	ID  int
	Lat float64
	Lon float64
}

// EdgeRecord Directed raw edge. (Src, Dst) is the natural key before deduplication.
/*
	Distance unit is dataset-specific (kilometers for the California layout,
	meters for the London edge list and for OSM extracts) but must be the same
	for every edge within one dataset.
*/
type EdgeRecord struct {
	Src      int
	Dst      int
	Distance float64
}

// DatasetLoader Hides per-dataset raw format idiosyncrasies behind one loading capability
/*
	New datasets are supported by adding new implementations, never by
	branching inside the pipeline.
*/
type DatasetLoader interface {
	Load() ([]NodeRecord, []EdgeRecord, error)
}
