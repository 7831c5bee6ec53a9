package geoportal

import (
	"encoding/json"
	"testing"
)

func TestFeatureCollectionMarshal(t *testing.T) {
	fc := FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{
			{Type: "Feature", Geometry: json.RawMessage(`{"type":"Point","coordinates":[0,0]}`), Properties: map[string]any{"lad18cd": "E06000001"}},
		},
		CRS: 4326,
	}
	b, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out struct {
		Type string `json:"type"`
		CRS  struct {
			Type       string `json:"type"`
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
		Features []Feature `json:"features"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if out.Type != "FeatureCollection" || out.CRS.Type != "name" {
		t.Fatalf("envelope got %+v", out)
	}
	if out.CRS.Properties.Name != "EPSG:4326" {
		t.Fatalf("crs name got %q", out.CRS.Properties.Name)
	}
	if len(out.Features) != 1 {
		t.Fatalf("features got %d", len(out.Features))
	}
}

func TestFeatureCollectionMarshal_EmptyFeatures(t *testing.T) {
	b, err := json.Marshal(FeatureCollection{Type: "FeatureCollection", CRS: 27700})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if string(out["features"]) != "[]" {
		t.Fatalf("features got %s, want []", out["features"])
	}
}
