// Command geomag copies a time window of observatory data from one IAGA
// 2002 location to another: it fetches every day file covering the window
// from the input template, reassembles the continuous timeseries, and
// rewrites it one day file at a time under the output template.
//
// Usage:
//
//	go run ./cmd/geomag \
//	  -input-url 'https://geomag.example.org/data/{obs}/{OBS}{ymd}{t}{i}.{i}' \
//	  -output-url 'file:///var/geomag/{interval}/{obs}{ymd}{t}{i}.{i}' \
//	  -observatory BOU \
//	  -starttime 2020-01-01T00:00:00Z \
//	  -endtime 2020-01-02T23:59:59Z
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/couchcryptid/geomag-data-etl/internal/adapter/fetch"
	"github.com/couchcryptid/geomag-data-etl/internal/domain"
	"github.com/couchcryptid/geomag-data-etl/internal/iaga2002"
)

func main() {
	inputURL := flag.String("input-url", "", "input URL template (file:// or http(s)://)")
	outputURL := flag.String("output-url", "", "output URL template (file:// only)")
	observatory := flag.String("observatory", "", "observatory code, e.g. BOU")
	channels := flag.String("channels", "H,D,Z,F", "comma-separated channel codes")
	dataType := flag.String("type", "variation", "data type")
	interval := flag.String("interval", "minute", "sampling interval")
	starttime := flag.String("starttime", "", "window start (RFC 3339)")
	endtime := flag.String("endtime", "", "window end (RFC 3339)")
	concurrency := flag.Int("concurrency", 4, "parallel day fetches")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request fetch timeout")
	rateLimit := flag.Float64("rate-limit", 5, "fetch requests per second")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *inputURL == "" || *outputURL == "" || *observatory == "" || *starttime == "" || *endtime == "" {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if code := run(logger, options{
		inputURL:    *inputURL,
		outputURL:   *outputURL,
		observatory: *observatory,
		channels:    splitChannels(*channels),
		dataType:    domain.DataType(*dataType),
		interval:    domain.Interval(*interval),
		starttime:   *starttime,
		endtime:     *endtime,
		concurrency: *concurrency,
		timeout:     *timeout,
		rateLimit:   *rateLimit,
	}); code != 0 {
		os.Exit(code)
	}
}

type options struct {
	inputURL    string
	outputURL   string
	observatory string
	channels    []string
	dataType    domain.DataType
	interval    domain.Interval
	starttime   string
	endtime     string
	concurrency int
	timeout     time.Duration
	rateLimit   float64
}

func run(logger *slog.Logger, opts options) int {
	start, err := time.Parse(time.RFC3339, opts.starttime)
	if err != nil {
		logger.Error("invalid starttime", "error", err)
		return 1
	}
	end, err := time.Parse(time.RFC3339, opts.endtime)
	if err != nil {
		logger.Error("invalid endtime", "error", err)
		return 1
	}

	defaults := iaga2002.Defaults{
		Observatory: opts.observatory,
		Channels:    opts.channels,
		Type:        opts.dataType,
		Interval:    opts.interval,
	}

	var fetcher fetch.Fetcher
	if strings.HasPrefix(opts.inputURL, "file://") {
		fetcher = fetch.NewFileFetcher()
	} else {
		fetcher = fetch.NewHTTPFetcher(opts.timeout, opts.rateLimit, logger)
	}

	input, err := iaga2002.NewFactory(opts.inputURL, fetcher, defaults, opts.concurrency, logger)
	if err != nil {
		logger.Error("invalid input template", "error", err)
		return 1
	}
	output, err := iaga2002.NewFactory(opts.outputURL, fetch.NewFileFetcher(), defaults, 1, logger)
	if err != nil {
		logger.Error("invalid output template", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ts, err := input.GetTimeseries(ctx, start, end, iaga2002.Request{})
	if err != nil {
		logger.Error("retrieval failed", "error", err)
		return 1
	}
	if err := output.PutTimeseries(ctx, ts, start, end, iaga2002.Request{}); err != nil {
		logger.Error("store failed", "error", err)
		return 1
	}

	samples := 0
	for _, tr := range ts {
		samples += len(tr.Data)
	}
	fmt.Printf("copied %d channels, %d samples, %s to %s\n",
		len(ts), samples, start.Format(time.RFC3339), end.Format(time.RFC3339))
	return 0
}

func splitChannels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
