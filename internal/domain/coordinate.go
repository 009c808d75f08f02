package domain

// CoordinatePrecision is the maximum number of decimal places kept on a
// coordinate axis (~11cm at the equator). Values beyond it are truncated.
const CoordinatePrecision = 6

// Coordinate is a WGS84 longitude/latitude pair.
type Coordinate struct {
	Lon float64 `json:"lon" db:"lon"`
	Lat float64 `json:"lat" db:"lat"`
}

// Region is an immutable min/max rectangle used for coarse membership
// pre-checks, independent of true polygon containment.
type Region struct {
	Name   string  `json:"name"`
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Contains reports whether the coordinate falls inside the region rectangle,
// borders included.
func (r Region) Contains(c Coordinate) bool {
	return c.Lon >= r.MinLon && c.Lon <= r.MaxLon &&
		c.Lat >= r.MinLat && c.Lat <= r.MaxLat
}

// RegionCaribbean bounds the monitored waters. Used by the optional
// region-membership gate of coordinate validation.
var RegionCaribbean = Region{
	Name:   "caribbean",
	MinLon: -90.0,
	MinLat: 7.0,
	MaxLon: -58.0,
	MaxLat: 28.0,
}
