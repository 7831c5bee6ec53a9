package geoportal

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveBoundary_Census(t *testing.T) {
	d, err := ResolveBoundary("lsoa")
	if err != nil {
		t.Fatalf("ResolveBoundary(lsoa): %v", err)
	}
	if d.Category != "Census_Boundaries" {
		t.Fatalf("category got %q", d.Category)
	}
	if d.Dataset != "Lower_Super_Output_Areas_December_2011_Boundaries" {
		t.Fatalf("dataset got %q", d.Dataset)
	}
	want := []string{"objectid", "lsoa11cd", "lsoa11nm", "shape", "st_area", "st_length"}
	if len(d.Fields) != len(want) {
		t.Fatalf("fields got %v want %v", d.Fields, want)
	}
	for i := range want {
		if d.Fields[i] != want[i] {
			t.Fatalf("fields[%d] got %q want %q", i, d.Fields[i], want[i])
		}
	}
}

func TestResolveBoundary_Admin(t *testing.T) {
	d, err := ResolveBoundary("lad")
	if err != nil {
		t.Fatalf("ResolveBoundary(lad): %v", err)
	}
	if d.Category != "Administrative_Boundaries" {
		t.Fatalf("category got %q", d.Category)
	}
	if d.Dataset != "Local_Authority_Districts_December_2018_Boundaries_UK_BGC" {
		t.Fatalf("dataset got %q", d.Dataset)
	}
}

func TestResolveBoundary_Unsupported(t *testing.T) {
	for _, gt := range []string{"", "msoa", "LSOA", "ward"} {
		_, err := ResolveBoundary(gt)
		if !errors.Is(err, ErrUnsupportedGeometryType) {
			t.Fatalf("ResolveBoundary(%q) err=%v, want ErrUnsupportedGeometryType", gt, err)
		}
		// the error must name both supported sets
		if !strings.Contains(err.Error(), "lsoa") || !strings.Contains(err.Error(), "lad") {
			t.Fatalf("error does not name supported types: %v", err)
		}
	}
}

func TestResolveLayer(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"full clipped", 0},
		{"full extent", 1},
		{"generalised clipped", 2},
		{"super generalised clipped", 3},
	}
	for _, c := range cases {
		got, err := ResolveLayer(c.label)
		if err != nil {
			t.Fatalf("ResolveLayer(%q): %v", c.label, err)
		}
		if got != c.want {
			t.Fatalf("ResolveLayer(%q) got %d want %d", c.label, got, c.want)
		}
	}
}

func TestResolveLayer_Unsupported(t *testing.T) {
	for _, label := range []string{"", "clipped", "Full Clipped", "super generalised"} {
		if _, err := ResolveLayer(label); !errors.Is(err, ErrUnsupportedLayerType) {
			t.Fatalf("ResolveLayer(%q) err=%v, want ErrUnsupportedLayerType", label, err)
		}
	}
}
