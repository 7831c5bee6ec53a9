package geoportal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

type portalRecorder struct {
	mu        sync.Mutex
	calls     int
	lastPath  string
	lastQuery url.Values

	status int
	body   string
}

func (p *portalRecorder) handler(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.calls++
	p.lastPath = r.URL.Path
	p.lastQuery = r.URL.Query()
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(p.status)
	_, _ = w.Write([]byte(p.body))
}

func (p *portalRecorder) snapshot() (int, string, url.Values) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls, p.lastPath, p.lastQuery
}

const twoFeatures = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"lsoa11cd":"E01000001"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[1,1]},"properties":{"lsoa11cd":"E01000002"}}
]}`

func newTestClient(t *testing.T, p *portalRecorder) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(p.handler))
	return New(WithBaseURL(srv.URL)), srv.Close
}

func TestFetchBoundaries(t *testing.T) {
	p := &portalRecorder{status: http.StatusOK, body: twoFeatures}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	fc, err := c.FetchBoundaries(context.Background(), Query{
		GeometryType: "lsoa",
		LayerType:    "full clipped",
		Columns:      AllColumns(),
		Where:        "1=1",
		CRS:          27700,
		Precision:    5,
	})
	if err != nil {
		t.Fatalf("FetchBoundaries: %v", err)
	}
	if fc.CRS != 27700 {
		t.Fatalf("CRS got %d want 27700", fc.CRS)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("features got %d want 2", len(fc.Features))
	}
	if got := fc.Features[0].Properties["lsoa11cd"]; got != "E01000001" {
		t.Fatalf("first feature property got %v", got)
	}

	_, path, query := p.snapshot()
	wantPath := "/Census_Boundaries/Lower_Super_Output_Areas_December_2011_Boundaries/MapServer/0/query"
	if path != wantPath {
		t.Fatalf("portal path got %q want %q", path, wantPath)
	}
	if got := query.Get("outFields"); got != "*" {
		t.Fatalf("outFields got %q", got)
	}
	if got := query.Get("f"); got != "geojson" {
		t.Fatalf("f got %q", got)
	}
}

func TestFetchBoundaries_AdminLayerIndex(t *testing.T) {
	p := &portalRecorder{status: http.StatusOK, body: `{"features":[]}`}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	fc, err := c.FetchBoundaries(context.Background(), Query{
		GeometryType: "lad",
		LayerType:    "super generalised clipped",
		Columns:      SelectColumns("LAD18CD"),
		Where:        "1=1",
		CRS:          4326,
		Precision:    7,
	})
	if err != nil {
		t.Fatalf("FetchBoundaries: %v", err)
	}
	if len(fc.Features) != 0 {
		t.Fatalf("features got %d want 0", len(fc.Features))
	}

	_, path, query := p.snapshot()
	wantPath := "/Administrative_Boundaries/Local_Authority_Districts_December_2018_Boundaries_UK_BGC/MapServer/3/query"
	if path != wantPath {
		t.Fatalf("portal path got %q want %q", path, wantPath)
	}
	if got := query.Get("outFields"); got != "lad18cd" {
		t.Fatalf("outFields got %q", got)
	}
}

func TestFetchBoundaries_UpstreamError(t *testing.T) {
	p := &portalRecorder{status: http.StatusInternalServerError, body: "boom"}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	fc, err := c.FetchBoundaries(context.Background(), Query{
		GeometryType: "lsoa",
		LayerType:    "full clipped",
		Columns:      AllColumns(),
		Where:        "1=1",
		CRS:          27700,
		Precision:    5,
	})
	if fc != nil {
		t.Fatalf("expected no collection on upstream failure")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v, want *StatusError", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("status got %d want 500", se.Code)
	}
}

func TestFetchBoundaries_MalformedBody(t *testing.T) {
	p := &portalRecorder{status: http.StatusOK, body: `{"features":`}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	if _, err := c.FetchBoundaries(context.Background(), lsoaQuery()); err == nil {
		t.Fatalf("expected parse error for malformed body")
	}
}

func TestFetchBoundaries_MissingFeaturesKey(t *testing.T) {
	p := &portalRecorder{status: http.StatusOK, body: `{"error":{"code":400}}`}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	if _, err := c.FetchBoundaries(context.Background(), lsoaQuery()); err == nil {
		t.Fatalf("expected error for response without features key")
	}
}

func TestFetchBoundaries_ValidationHappensBeforeRequest(t *testing.T) {
	p := &portalRecorder{status: http.StatusOK, body: twoFeatures}
	c, closeSrv := newTestClient(t, p)
	defer closeSrv()

	cases := []struct {
		name string
		q    Query
		want error
	}{
		{"geometry", Query{GeometryType: "ward", LayerType: "full clipped", Columns: AllColumns(), CRS: 27700, Precision: 5}, ErrUnsupportedGeometryType},
		{"layer", Query{GeometryType: "lsoa", LayerType: "clipped", Columns: AllColumns(), CRS: 27700, Precision: 5}, ErrUnsupportedLayerType},
		{"columns", Query{GeometryType: "lsoa", LayerType: "full clipped", Columns: SelectColumns("nope"), CRS: 27700, Precision: 5}, ErrUnsupportedColumns},
		{"crs", Query{GeometryType: "lsoa", LayerType: "full clipped", Columns: AllColumns(), CRS: 1234, Precision: 5}, ErrUnsupportedCRS},
		{"precision", Query{GeometryType: "lsoa", LayerType: "full clipped", Columns: AllColumns(), CRS: 27700, Precision: 8}, ErrUnsupportedPrecision},
	}
	for _, tc := range cases {
		if _, err := c.FetchBoundaries(context.Background(), tc.q); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err=%v, want %v", tc.name, err, tc.want)
		}
	}
	if calls, _, _ := p.snapshot(); calls != 0 {
		t.Fatalf("validation errors must not reach the portal; saw %d calls", calls)
	}
}

func TestPlaceholders(t *testing.T) {
	c := New()
	ctx := context.Background()
	for name, call := range map[string]func(context.Context) (*FeatureCollection, error){
		"postcodes": c.FetchPostcodes,
		"lookups":   c.FetchLookups,
		"products":  c.FetchProducts,
		"uprns":     c.FetchUPRNs,
	} {
		if _, err := call(ctx); !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("%s: err=%v, want ErrNotImplemented", name, err)
		}
	}
}

func lsoaQuery() Query {
	return Query{
		GeometryType: "lsoa",
		LayerType:    "full clipped",
		Columns:      AllColumns(),
		Where:        "1=1",
		CRS:          27700,
		Precision:    5,
	}
}
