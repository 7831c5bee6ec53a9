package geoportal

import (
	"encoding/json"
	"fmt"
)

// Feature is one geometry+attributes record from a portal response. The
// geometry is kept as raw GeoJSON; this client does no geometry math.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection tagged with the EPSG
// code the query asked for. It is not mutated after construction.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	CRS      int       `json:"-"`
}

// MarshalJSON writes the collection with a named crs member so consumers
// see which spatial reference the coordinates are in.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	type namedCRS struct {
		Type       string `json:"type"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	}
	crs := namedCRS{Type: "name"}
	crs.Properties.Name = fmt.Sprintf("EPSG:%d", fc.CRS)

	features := fc.Features
	if features == nil {
		features = []Feature{}
	}
	return json.Marshal(struct {
		Type     string    `json:"type"`
		CRS      namedCRS  `json:"crs"`
		Features []Feature `json:"features"`
	}{Type: "FeatureCollection", CRS: crs, Features: features})
}
