package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/onsgeo/onsgeo/internal/core/httpclient"
	"github.com/onsgeo/onsgeo/internal/logger"
	"github.com/onsgeo/onsgeo/pkg/geoportal"
)

type Options struct {
	Geometry  string        `short:"g" long:"geometry"  env:"GEOMETRY_TYPE" description:"Geometry type (lsoa, lad)" default:"lsoa"`
	Layer     string        `short:"l" long:"layer"     env:"LAYER_TYPE"    description:"Layer rendering variant" default:"full clipped"`
	Columns   string        `short:"c" long:"columns"   env:"COLUMNS"       description:"Comma-separated columns, or 'all'" default:"all"`
	Where     string        `short:"w" long:"where"     description:"Attribute filter predicate, passed to the portal as-is" default:"1=1"`
	CRS       int           `long:"crs"                 description:"Output EPSG code (4326, 3857, 27700)" default:"27700"`
	Precision int           `short:"p" long:"precision" description:"Coordinate decimal places (1-7)" default:"5"`
	Output    string        `short:"o" long:"output"    description:"Write GeoJSON to this file instead of stdout"`
	PortalURL string        `long:"portal"    env:"PORTAL_URL" description:"Portal services base URL" default:"https://ons-inspire.esriuk.com/arcgis/rest/services"`
	Timeout   time.Duration `long:"timeout"   env:"REQUEST_TIMEOUT" description:"Request timeout" default:"30s"`
	LogLevel  string        `long:"log-level" env:"LOG_LEVEL" description:"Log level" default:"info"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	zl := logger.Build(logger.Config{
		Level:     opts.LogLevel,
		Console:   true,
		Component: "onsgeo-fetch",
	}, os.Stderr)

	client := geoportal.New(
		geoportal.WithBaseURL(opts.PortalURL),
		geoportal.WithHTTPClient(httpclient.NewOutbound(opts.Timeout)),
		geoportal.WithLogger(logger.NewSlog(&zl)),
	)

	fc, err := client.FetchBoundaries(context.Background(), geoportal.Query{
		GeometryType: opts.Geometry,
		LayerType:    opts.Layer,
		Columns:      geoportal.ParseColumns(opts.Columns),
		Where:        opts.Where,
		CRS:          opts.CRS,
		Precision:    opts.Precision,
	})
	if err != nil {
		zl.Error().Err(err).Msg("fetch boundaries")
		os.Exit(1)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		zl.Error().Err(err).Msg("encode feature collection")
		os.Exit(1)
	}
	data = append(data, '\n')

	if opts.Output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			zl.Error().Err(err).Msg("write output")
			os.Exit(1)
		}
	} else if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		zl.Error().Err(err).Str("path", opts.Output).Msg("write output")
		os.Exit(1)
	}

	zl.Info().
		Int("features", len(fc.Features)).
		Int("crs", fc.CRS).
		Msg("fetched boundaries")
}
