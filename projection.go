package widepath

// Projector Converts a source-CRS coordinate pair to WGS84 (lat, lon)
/*
	The pipeline never knows which projection is active: a precise external
	transformer and the built-in approximate fallback share this signature and
	are selected at configuration time.
*/
type Projector func(x, y float64) (lat, lon float64)

// WGS84Passthrough Projector for datasets already carrying geographic
// coordinates as (lon, lat).
func WGS84Passthrough(x, y float64) (float64, float64) {
	return y, x
}

// Approximate British National Grid (EPSG:27700) parameters, Ordnance Survey
// false origin plus flat per-meter degree scales valid around UK latitudes.
const (
	bngFalseEasting  = 400000.0
	bngFalseNorthing = -100000.0
	bngOriginLat     = 49.0
	bngOriginLon     = -2.0
	latDegPerMeter   = 1.0 / 111320.0
	lonDegPerMeter   = 1.0 / (111320.0 * 0.68)
)

// ApproxBNGToWGS84 Approximate linear transform from British National Grid
// easting/northing to WGS84
/*
	Kilometer-level accuracy only. Good enough to drop a converted network
	onto a slippy map; plug in a precise Projector when real georeferencing
	matters.
*/
func ApproxBNGToWGS84(easting, northing float64) (float64, float64) {
	lat := bngOriginLat + (northing-bngFalseNorthing)*latDegPerMeter
	lon := bngOriginLon + (easting-bngFalseEasting)*lonDegPerMeter
	return lat, lon
}
