package geoportal

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Output spatial references accepted by the portal's boundary layers:
// WGS84, Web Mercator and British National Grid.
var supportedCRS = []int{4326, 3857, 27700}

// Coordinate precision is decimal places past the point.
const (
	minPrecision = 1
	maxPrecision = 7
)

// BuildQueryParams translates a validated column selection, filter
// predicate, spatial reference and precision into the portal's
// feature-service query string. The where predicate passes through
// verbatim; the service parses it server-side.
func BuildQueryParams(cols ColumnSelection, fields []string, where string, crs, precision int) (url.Values, error) {
	outFields := "*"
	if !cols.all {
		names := make([]string, len(cols.names))
		for i, c := range cols.names {
			names[i] = strings.ToLower(strings.TrimSpace(c))
		}
		for _, c := range names {
			if !slices.Contains(fields, c) {
				return nil, fmt.Errorf("%w %q: only %v are supported for this geometry type",
					ErrUnsupportedColumns, c, fields)
			}
		}
		outFields = strings.Join(names, ", ")
	}

	if !slices.Contains(supportedCRS, crs) {
		return nil, fmt.Errorf("%w %d: supported EPSG codes %v", ErrUnsupportedCRS, crs, supportedCRS)
	}
	if precision < minPrecision || precision > maxPrecision {
		return nil, fmt.Errorf("%w %d: precision must be between %d and %d",
			ErrUnsupportedPrecision, precision, minPrecision, maxPrecision)
	}

	params := url.Values{}
	params.Set("outFields", outFields)
	params.Set("where", where)
	params.Set("outSR", strconv.Itoa(crs))
	params.Set("f", "geojson")
	params.Set("geometryPrecision", strconv.Itoa(precision))
	return params, nil
}
