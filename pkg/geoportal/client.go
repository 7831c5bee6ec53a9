// Package geoportal is a client for the boundary feature services of the
// ONS Open Geography Portal (https://geoportal.statistics.gov.uk/). It
// validates query inputs, builds the feature-service query string, issues
// one GET per call and parses the GeoJSON response. Calls are stateless
// and independent; there is no caching and no retrying.
package geoportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the ArcGIS services root the portal publishes under.
const DefaultBaseURL = "https://ons-inspire.esriuk.com/arcgis/rest/services"

// Query describes one boundaries request.
type Query struct {
	GeometryType string
	LayerType    string
	Columns      ColumnSelection
	Where        string
	CRS          int
	Precision    int
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a portal client. Without options it talks to the public
// portal with a 30 second timeout and discards logs.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBoundaries resolves the dataset and layer for the query, validates
// the remaining inputs, performs one GET against
// <base>/<category>/<dataset>/MapServer/<layer>/query and returns the
// parsed feature collection tagged with the requested CRS. Validation
// failures happen before any network activity.
func (c *Client) FetchBoundaries(ctx context.Context, q Query) (*FeatureCollection, error) {
	desc, err := ResolveBoundary(q.GeometryType)
	if err != nil {
		return nil, err
	}
	layer, err := ResolveLayer(q.LayerType)
	if err != nil {
		return nil, err
	}
	params, err := BuildQueryParams(q.Columns, desc.Fields, q.Where, q.CRS, q.Precision)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/%s/MapServer/%d/query",
		c.baseURL, desc.Category, desc.Dataset, layer)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("portal query",
		"dataset", desc.Dataset,
		"layer", layer,
		"status", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return decodeFeatureCollection(b, q.CRS)
}

func decodeFeatureCollection(b []byte, crs int) (*FeatureCollection, error) {
	var body struct {
		Features *[]Feature `json:"features"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if body.Features == nil {
		return nil, errors.New(`parse response: missing "features"`)
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: *body.Features,
		CRS:      crs,
	}, nil
}

// The portal also publishes postcode directories, reference-data lookups,
// a product catalogue and UPRN indexes. None of these are wired up yet.

func (c *Client) FetchPostcodes(ctx context.Context) (*FeatureCollection, error) {
	return nil, fmt.Errorf("fetch postcodes: %w", ErrNotImplemented)
}

func (c *Client) FetchLookups(ctx context.Context) (*FeatureCollection, error) {
	return nil, fmt.Errorf("fetch lookups: %w", ErrNotImplemented)
}

func (c *Client) FetchProducts(ctx context.Context) (*FeatureCollection, error) {
	return nil, fmt.Errorf("fetch products: %w", ErrNotImplemented)
}

func (c *Client) FetchUPRNs(ctx context.Context) (*FeatureCollection, error) {
	return nil, fmt.Errorf("fetch UPRNs: %w", ErrNotImplemented)
}
