package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nrel/windwatts-core/internal/model"
	"github.com/nrel/windwatts-core/internal/wind"
)

// GetTimeseriesCSV renders the hourly series of one grid point, interpolated
// to the requested hub height, as CSV. When a turbine is given, a per-step
// power column is appended.
func (ws *WindService) GetTimeseriesCSV(ctx context.Context, req *model.TimeseriesRequest) ([]byte, error) {
	ds, err := ws.dataset(req.Model)
	if err != nil {
		return nil, err
	}

	years := req.Years
	if len(years) == 0 {
		years = ds.profile.SampleYears
	}
	for _, y := range years {
		if err := validateYear(ds.profile, y); err != nil {
			return nil, err
		}
	}

	var curve *wind.PowerCurve
	if req.Turbine != "" {
		curve, err = ws.registry.Get(req.Turbine)
		if err != nil {
			return nil, err
		}
	}

	series, err := ws.seriesForGridPoint(ctx, ds, req.GridIndex, req.Height, years)
	if err != nil {
		return nil, err
	}

	heightLabel := strconv.FormatFloat(req.Height, 'f', -1, 64)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"time",
		fmt.Sprintf("windspeed_%sm", heightLabel),
		fmt.Sprintf("winddirection_%sm", heightLabel),
	}
	if curve != nil {
		header = append(header, "power_kw")
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	for _, s := range series {
		row := []string{
			s.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(s.Speed, 'f', 3, 64),
			strconv.FormatFloat(s.Direction, 'f', 1, 64),
		}
		if curve != nil {
			row = append(row, strconv.FormatFloat(curve.PowerAt(s.Speed), 'f', 3, 64))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}

// GetTimeseriesBatchZip renders the series of multiple grid points as a ZIP
// of per-location CSV files. Locations are processed concurrently by a
// fixed-size worker pool; every archive entry is named by its location's
// coordinates so output is grouped unambiguously.
func (ws *WindService) GetTimeseriesBatchZip(ctx context.Context, modelName string, req *model.TimeseriesBatchRequest) ([]byte, error) {
	if len(req.Locations) == 0 {
		return nil, errors.New("no locations provided")
	}

	results := make([][]byte, len(req.Locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ws.workers)

	for i, loc := range req.Locations {
		i, loc := i, loc
		g.Go(func() error {
			content, err := ws.GetTimeseriesCSV(gctx, &model.TimeseriesRequest{
				Model:     modelName,
				GridIndex: loc.Index,
				Height:    req.Height,
				Turbine:   req.Turbine,
				Years:     req.Years,
			})
			if err != nil {
				return fmt.Errorf("grid point %s: %w", loc.Index, err)
			}
			results[i] = content
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, loc := range req.Locations {
		name := fmt.Sprintf("wind_data_%.5f_%.5f.csv", loc.Latitude, loc.Longitude)

		f, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := f.Write(results[i]); err != nil {
			return nil, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}

	return buf.Bytes(), nil
}

func validateYear(p *wind.DatasetProfile, year int) error {
	for _, y := range p.Years {
		if y == year {
			return nil
		}
	}
	return fmt.Errorf("year %d is not available for %s, currently supporting years %d-%d",
		year, p.Name, p.Years[0], p.Years[len(p.Years)-1])
}
