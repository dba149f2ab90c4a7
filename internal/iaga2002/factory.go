// Package iaga2002 reads and writes day-partitioned observatory timeseries
// stored in the IAGA 2002 columnar text format, addressed through a
// templated URL scheme.
package iaga2002

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/geomag-data-etl/internal/adapter/fetch"
	"github.com/couchcryptid/geomag-data-etl/internal/domain"
)

// ErrUnsupportedSink indicates a write attempted through a non-file
// template. Network targets are read-only.
var ErrUnsupportedSink = errors.New("only file urls are supported for writing")

// Request carries per-call parameter overrides. Zero fields fall back to
// the factory defaults; the fallback is resolved once at the top of each
// operation.
type Request struct {
	Observatory string
	Channels    []string
	Type        domain.DataType
	Interval    domain.Interval
}

// Defaults are the factory's configured fallback parameters.
type Defaults struct {
	Observatory string
	Channels    []string
	Type        domain.DataType
	Interval    domain.Interval
}

// Factory fetches and stores multi-day timeseries windows, one URL per
// calendar day. It holds no mutable state, so concurrent calls need no
// locking; concurrent writes to overlapping targets do, since day files
// are created and truncated non-atomically.
type Factory struct {
	template    *URLTemplate
	fetcher     fetch.Fetcher
	defaults    Defaults
	concurrency int
	logger      *slog.Logger
}

// NewFactory compiles the URL template and builds a factory around the
// given fetcher. concurrency bounds the per-day fetch fan-out.
func NewFactory(rawTemplate string, fetcher fetch.Fetcher, defaults Defaults, concurrency int, logger *slog.Logger) (*Factory, error) {
	template, err := ParseTemplate(rawTemplate)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Factory{
		template:    template,
		fetcher:     fetcher,
		defaults:    defaults,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

func (f *Factory) resolve(req Request) Request {
	if req.Observatory == "" {
		req.Observatory = f.defaults.Observatory
	}
	if len(req.Channels) == 0 {
		req.Channels = f.defaults.Channels
	}
	if req.Type == "" {
		req.Type = f.defaults.Type
	}
	if req.Interval == "" {
		req.Interval = f.defaults.Interval
	}
	return req
}

// GetTimeseries fetches every day file covering [start, end], merges the
// per-day traces into continuous channel traces, and trims the result to
// the exact requested window. All URLs are rendered before the first fetch
// so vocabulary errors fail fast; one bad day fails the whole call.
func (f *Factory) GetTimeseries(ctx context.Context, start, end time.Time, req Request) (domain.Timeseries, error) {
	req = f.resolve(req)

	dayList, err := days(start, end)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(dayList))
	for i, day := range dayList {
		if urls[i], err = f.renderURL(req.Observatory, day, req.Type, req.Interval); err != nil {
			return nil, err
		}
	}

	perDay := make([]domain.Timeseries, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, url := range urls {
		g.Go(func() error {
			content, err := f.fetcher.Fetch(gctx, url)
			if err != nil {
				return err
			}
			ts, err := parseTimeseries(content)
			if err != nil {
				return &FormatError{URL: url, Err: err}
			}
			perDay[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all domain.Timeseries
	for _, ts := range perDay {
		all = append(all, ts...)
	}
	merged, err := domain.Merge(all)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("timeseries retrieved",
		"observatory", req.Observatory, "days", len(dayList), "channels", len(merged))
	return domain.Trim(merged, start, end), nil
}

// PutTimeseries writes ts one day file at a time. The template must be a
// file:// template. Channels, type, and interval fall back to the factory
// defaults; observatory, start, and end derive from the first trace when
// omitted (zero times mean "use the trace bounds"). The first failed day
// aborts the call.
func (f *Factory) PutTimeseries(ctx context.Context, ts domain.Timeseries, start, end time.Time, req Request) error {
	if !f.template.IsFile() {
		return fmt.Errorf("template %q: %w", f.template, ErrUnsupportedSink)
	}
	if len(ts) == 0 {
		return fmt.Errorf("cannot store an empty timeseries")
	}

	req = f.resolve(req)
	if len(req.Channels) == 0 {
		req.Channels = ts.Channels()
	}
	stats := ts[0].Stats
	if start.IsZero() {
		start = stats.StartTime
	}
	if end.IsZero() {
		end = stats.EndTime()
	}

	dayList, err := days(start, end)
	if err != nil {
		return err
	}
	for _, day := range dayList {
		url, err := f.renderURL(stats.Station, day, req.Type, req.Interval)
		if err != nil {
			return err
		}
		if err := f.writeDay(ctx, url, ts, day, req); err != nil {
			return err
		}
	}
	return nil
}

// writeDay slices ts to one day's bounds and serializes it to url. The
// minute cadence stops at 23:59:00 (86340 s from midnight); every other
// cadence runs to the end of the day's last microsecond.
func (f *Factory) writeDay(ctx context.Context, url string, ts domain.Timeseries, day time.Time, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := strings.TrimPrefix(url, "file://")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", path, err)
	}

	dayEnd := day.Add(86399*time.Second + 999999*time.Microsecond)
	if req.Interval == domain.IntervalMinute {
		dayEnd = day.Add(86340 * time.Second)
	}
	sliced := domain.Slice(ts, day, dayEnd)

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeTimeseries(fh, sliced, req.Channels); err != nil {
		fh.Close()
		return &FormatError{URL: url, Err: err}
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	f.logger.Debug("day file written", "url", url, "day", day.Format("2006-01-02"))
	return nil
}

// renderURL expands the template for one (observatory, day, type, interval)
// tuple. Long names are resolved only when the template references them, so
// cadences without a long name (daily, hourly, monthly) still resolve
// through abbreviation-only templates.
func (f *Factory) renderURL(observatory string, day time.Time, dataType domain.DataType, interval domain.Interval) (string, error) {
	values := PlaceholderValues{
		Observatory:      strings.ToLower(observatory),
		ObservatoryUpper: strings.ToUpper(observatory),
		Date:             day.Format("20060102"),
	}

	var err error
	if values.IntervalAbbreviation, err = interval.Abbreviation(); err != nil {
		return "", err
	}
	if values.TypeAbbreviation, err = dataType.Abbreviation(); err != nil {
		return "", err
	}
	if f.template.uses("interval") {
		if values.IntervalName, err = interval.Name(); err != nil {
			return "", err
		}
	}
	if f.template.uses("type") {
		if values.TypeName, err = dataType.Name(); err != nil {
			return "", err
		}
	}
	return f.template.Render(values), nil
}

// parseTimeseries converts one day file's content into a per-day
// timeseries: one trace per reported channel, sampling rate derived from
// the file contents, declination converted to radians.
func parseTimeseries(raw []byte) (domain.Timeseries, error) {
	file, err := parseFile(raw)
	if err != nil {
		return nil, err
	}

	n := len(file.times)
	start := file.times[0]
	var sampleRate float64
	if n > 1 && file.times[n-1].After(start) {
		sampleRate = float64(n-1) / file.times[n-1].Sub(start).Seconds()
	}

	base := domain.Stats{
		Station:     file.headers[headerIAGACode],
		StationName: file.headers[headerStationName],
		DataType:    file.headers[headerDataType],
		SampleRate:  sampleRate,
		StartTime:   start,
		SampleCount: n,
	}
	if base.Latitude, err = file.headerFloat(headerLatitude); err != nil {
		return nil, err
	}
	if base.Longitude, err = file.headerFloat(headerLongitude); err != nil {
		return nil, err
	}
	if base.Elevation, err = file.headerFloat(headerElevation); err != nil {
		return nil, err
	}

	ts := make(domain.Timeseries, 0, len(file.channels))
	for _, channel := range file.channels {
		data := file.data[channel]
		if channel == domain.DeclinationChannel {
			data = domain.RadiansFromMinutes(data)
		}
		stats := base
		stats.Channel = channel
		ts = append(ts, &domain.Trace{Stats: stats, Data: data})
	}
	return ts, nil
}
