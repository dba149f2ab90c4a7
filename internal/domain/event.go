package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SampleEvent is the flattened, per-sample form published to the sink
// topic. Value is nil for missing samples so the JSON stays valid (NaN has
// no JSON encoding).
type SampleEvent struct {
	ID          string    `json:"id"`
	Station     string    `json:"station"`
	Channel     string    `json:"channel"`
	Time        time.Time `json:"time"`
	Value       *float64  `json:"value"`
	ProcessedAt time.Time `json:"processed_at"`
}

// FlattenSamples expands a timeseries into one event per (channel, instant)
// pair, in trace order. IDs are deterministic (station-channel-epochMillis)
// so downstream consumers can upsert idempotently when a window is
// re-published.
func FlattenSamples(ts Timeseries) []SampleEvent {
	processedAt := clock.Now().UTC()

	var events []SampleEvent
	for _, tr := range ts {
		delta := tr.Stats.Delta()
		station := strings.ToLower(tr.Stats.Station)
		for i, v := range tr.Data {
			instant := tr.Stats.StartTime.Add(time.Duration(i) * delta)
			e := SampleEvent{
				ID:          fmt.Sprintf("%s-%s-%d", station, tr.Stats.Channel, instant.UnixMilli()),
				Station:     tr.Stats.Station,
				Channel:     tr.Stats.Channel,
				Time:        instant,
				ProcessedAt: processedAt,
			}
			if !math.IsNaN(v) {
				value := v
				e.Value = &value
			}
			events = append(events, e)
		}
	}
	return events
}
