package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrMergeConflict indicates per-day traces for the same channel that
// overlap in time or disagree on sampling rate.
var ErrMergeConflict = errors.New("merge conflict")

// Merge concatenates same-channel traces from independently fetched day
// units into single continuous traces. Interior gaps between units are
// filled with NaN at the trace's sample spacing. Channel order follows
// first appearance in ts.
func Merge(ts Timeseries) (Timeseries, error) {
	groups := make(map[string][]*Trace)
	var order []string
	for _, tr := range ts {
		ch := tr.Stats.Channel
		if _, ok := groups[ch]; !ok {
			order = append(order, ch)
		}
		groups[ch] = append(groups[ch], tr)
	}

	merged := make(Timeseries, 0, len(order))
	for _, ch := range order {
		tr, err := mergeChannel(groups[ch])
		if err != nil {
			return nil, err
		}
		merged = append(merged, tr)
	}
	return merged, nil
}

func mergeChannel(traces []*Trace) (*Trace, error) {
	if len(traces) == 1 {
		return traces[0], nil
	}
	sort.SliceStable(traces, func(i, j int) bool {
		return traces[i].Stats.StartTime.Before(traces[j].Stats.StartTime)
	})

	first := traces[0]
	delta := first.Stats.Delta()
	if delta <= 0 {
		return nil, fmt.Errorf("channel %s has unknown sampling rate: %w",
			first.Stats.Channel, ErrMergeConflict)
	}

	data := append([]float64(nil), first.Data...)
	prevEnd := first.Stats.EndTime()
	for _, tr := range traces[1:] {
		if !sameRate(first.Stats.SampleRate, tr.Stats.SampleRate) {
			return nil, fmt.Errorf("channel %s rate mismatch (%g vs %g samples/s): %w",
				first.Stats.Channel, first.Stats.SampleRate, tr.Stats.SampleRate, ErrMergeConflict)
		}
		if !tr.Stats.StartTime.After(prevEnd) {
			return nil, fmt.Errorf("channel %s units overlap at %s: %w",
				first.Stats.Channel, tr.Stats.StartTime.Format(time.RFC3339), ErrMergeConflict)
		}
		missing := int(math.Round(float64(tr.Stats.StartTime.Sub(prevEnd))/float64(delta))) - 1
		for i := 0; i < missing; i++ {
			data = append(data, math.NaN())
		}
		data = append(data, tr.Data...)
		prevEnd = tr.Stats.EndTime()
	}

	stats := first.Stats
	stats.SampleCount = len(data)
	return &Trace{Stats: stats, Data: data}, nil
}

func sameRate(a, b float64) bool {
	if a == b {
		return true
	}
	larger := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= larger*1e-6
}

// Trim restricts every trace to the window [start, end], dropping samples
// outside it. Trim never extrapolates: a window partially outside the
// available data yields the intersection. Trimming an already-trimmed
// series to the same window is a no-op.
func Trim(ts Timeseries, start, end time.Time) Timeseries {
	return Slice(ts, start, end)
}

// Slice returns a windowed copy of ts covering [start, end]. The input is
// not modified.
func Slice(ts Timeseries, start, end time.Time) Timeseries {
	out := make(Timeseries, 0, len(ts))
	for _, tr := range ts {
		out = append(out, sliceTrace(tr, start, end))
	}
	return out
}

func sliceTrace(tr *Trace, start, end time.Time) *Trace {
	stats := tr.Stats
	delta := stats.Delta()

	if len(tr.Data) <= 1 || delta <= 0 {
		if len(tr.Data) == 1 && !stats.StartTime.Before(start) && !stats.StartTime.After(end) {
			return &Trace{Stats: stats, Data: append([]float64(nil), tr.Data...)}
		}
		stats.StartTime = start
		stats.SampleCount = 0
		return &Trace{Stats: stats}
	}

	first := ceilDiv(start.Sub(stats.StartTime), delta)
	if first < 0 {
		first = 0
	}
	last := floorDiv(end.Sub(stats.StartTime), delta)
	if last > int64(len(tr.Data)-1) {
		last = int64(len(tr.Data) - 1)
	}
	if last < first {
		stats.StartTime = start
		stats.SampleCount = 0
		return &Trace{Stats: stats}
	}

	stats.StartTime = stats.StartTime.Add(time.Duration(first) * delta)
	stats.SampleCount = int(last - first + 1)
	return &Trace{
		Stats: stats,
		Data:  append([]float64(nil), tr.Data[first:last+1]...),
	}
}

func ceilDiv(a, b time.Duration) int64 {
	q := int64(a / b)
	if a%b > 0 {
		q++
	}
	return q
}

func floorDiv(a, b time.Duration) int64 {
	q := int64(a / b)
	if a%b < 0 {
		q--
	}
	return q
}
