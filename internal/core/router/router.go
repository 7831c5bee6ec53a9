// Package router validates boundary requests at the HTTP edge and hands
// them to the portal client.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/onsgeo/onsgeo/internal/core/config"
	"github.com/onsgeo/onsgeo/internal/core/observability"
	"github.com/onsgeo/onsgeo/pkg/geoportal"
)

// BoundaryFetcher is implemented by the portal client.
type BoundaryFetcher interface {
	FetchBoundaries(ctx context.Context, q geoportal.Query) (*geoportal.FeatureCollection, error)
}

// HandleBoundaries validates input query params and serves the fetched
// feature collection as GeoJSON.
func HandleBoundaries(logger *slog.Logger, cfg config.Config, fetcher BoundaryFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		q, err := ParseBoundaryQuery(r, cfg)
		if err != nil {
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/boundaries", sw.code, time.Since(start).Seconds())
			return
		}

		upStart := time.Now()
		fc, err := fetcher.FetchBoundaries(r.Context(), q)
		observability.ObservePortalLatency(time.Since(upStart).Seconds())
		if err != nil {
			writeFetchError(sw, logger, err)
			observability.ObserveHTTP(r.Method, "/boundaries", sw.code, time.Since(start).Seconds())
			return
		}

		sw.Header().Set("Content-Type", "application/geo+json")
		if err := json.NewEncoder(sw).Encode(fc); err != nil {
			logger.Error("write response", "err", err)
		}
		observability.ObserveHTTP(r.Method, "/boundaries", sw.code, time.Since(start).Seconds())
	}
}

func writeFetchError(w http.ResponseWriter, logger *slog.Logger, err error) {
	for _, sentinel := range []error{
		geoportal.ErrUnsupportedGeometryType,
		geoportal.ErrUnsupportedLayerType,
		geoportal.ErrUnsupportedColumns,
		geoportal.ErrUnsupportedCRS,
		geoportal.ErrUnsupportedPrecision,
	} {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var se *geoportal.StatusError
	if errors.As(err, &se) {
		logger.Error("portal error", "status", se.Code)
		http.Error(w, fmt.Sprintf("portal returned status %d", se.Code), http.StatusBadGateway)
		return
	}
	logger.Error("fetch boundaries", "err", err)
	http.Error(w, "upstream fetch failed: "+err.Error(), http.StatusBadGateway)
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// ParseBoundaryQuery reads the boundary query params, applying configured
// defaults for crs and precision. Geometry is required; everything else
// falls back to the portal-friendly defaults.
func ParseBoundaryQuery(r *http.Request, cfg config.Config) (geoportal.Query, error) {
	params := r.URL.Query()

	geometry := strings.TrimSpace(params.Get("geometry"))
	if geometry == "" {
		return geoportal.Query{}, errors.New("missing required parameter: geometry")
	}

	layer := strings.TrimSpace(params.Get("layer"))
	if layer == "" {
		layer = geoportal.LayerFullClipped
	}

	where := strings.TrimSpace(params.Get("where"))
	if where == "" {
		where = "1=1"
	} else if !isSafePredicate(where) {
		return geoportal.Query{}, errors.New("invalid or disallowed where predicate")
	}

	crs := cfg.DefaultCRS
	if raw := strings.TrimSpace(params.Get("crs")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return geoportal.Query{}, fmt.Errorf("invalid crs: %w", err)
		}
		crs = n
	}

	precision := cfg.DefaultPrecision
	if raw := strings.TrimSpace(params.Get("precision")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return geoportal.Query{}, fmt.Errorf("invalid precision: %w", err)
		}
		precision = n
	}

	return geoportal.Query{
		GeometryType: geometry,
		LayerType:    layer,
		Columns:      geoportal.ParseColumns(params.Get("columns")),
		Where:        where,
		CRS:          crs,
		Precision:    precision,
	}, nil
}

// The portal applies the predicate server-side; this allowlist only keeps
// obviously hostile input from transiting the service.
var safePredicatePattern = regexp.MustCompile(`^[\w\s\=\>\<\!\(\)\.\,\'\"\-\*]+$`)

func isSafePredicate(s string) bool {
	if len(s) > 500 {
		return false
	}
	return safePredicatePattern.MatchString(s)
}
