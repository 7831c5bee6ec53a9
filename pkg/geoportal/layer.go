package geoportal

import "fmt"

// Layer rendering variants published by the portal. The map value is the
// MapServer layer index the variant is served under.
const (
	LayerFullClipped             = "full clipped"
	LayerFullExtent              = "full extent"
	LayerGeneralisedClipped      = "generalised clipped"
	LayerSuperGeneralisedClipped = "super generalised clipped"
)

var layerIndex = map[string]int{
	LayerFullClipped:             0,
	LayerFullExtent:              1,
	LayerGeneralisedClipped:      2,
	LayerSuperGeneralisedClipped: 3,
}

// ResolveLayer maps a rendering-variant label to its MapServer layer index.
func ResolveLayer(layerType string) (int, error) {
	idx, ok := layerIndex[layerType]
	if !ok {
		return 0, fmt.Errorf("%w %q: supported layer types %q",
			ErrUnsupportedLayerType, layerType, []string{
				LayerFullClipped,
				LayerFullExtent,
				LayerGeneralisedClipped,
				LayerSuperGeneralisedClipped,
			})
	}
	return idx, nil
}
