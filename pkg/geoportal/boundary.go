package geoportal

import (
	"fmt"
	"maps"
	"slices"
)

// BoundaryDescriptor identifies one layer collection on the portal: the
// service category prefix, the dataset published under it, and the
// attribute fields that dataset exposes.
type BoundaryDescriptor struct {
	Category string
	Dataset  string
	Fields   []string
}

// Census and administrative geography types live in disjoint service
// categories on the portal. Adding a dataset is a one-entry edit.
var censusBoundaries = map[string]BoundaryDescriptor{
	"lsoa": {
		Category: "Census_Boundaries",
		Dataset:  "Lower_Super_Output_Areas_December_2011_Boundaries",
		Fields:   []string{"objectid", "lsoa11cd", "lsoa11nm", "shape", "st_area", "st_length"},
	},
}

var adminBoundaries = map[string]BoundaryDescriptor{
	"lad": {
		Category: "Administrative_Boundaries",
		Dataset:  "Local_Authority_Districts_December_2018_Boundaries_UK_BGC",
		Fields:   []string{"objectid", "lad18cd", "lad18nm", "shape", "st_area", "st_length"},
	},
}

// ResolveBoundary maps a geometry type to the portal dataset serving it.
func ResolveBoundary(geometryType string) (BoundaryDescriptor, error) {
	if d, ok := censusBoundaries[geometryType]; ok {
		return d, nil
	}
	if d, ok := adminBoundaries[geometryType]; ok {
		return d, nil
	}
	return BoundaryDescriptor{}, fmt.Errorf("%w %q: census types %v, administrative types %v",
		ErrUnsupportedGeometryType, geometryType,
		slices.Sorted(maps.Keys(censusBoundaries)),
		slices.Sorted(maps.Keys(adminBoundaries)))
}
