package domain

import "github.com/jonboulle/clockwork"

// clock supplies the processed-at instants stamped onto outgoing sample
// events. Observation instants always come from the day files themselves;
// only the stamping of when this service flattened a batch goes through
// here, so tests can freeze it and assert exact event payloads.
var clock = clockwork.NewRealClock()

// SetClock swaps the event-stamping time source. A nil value restores the
// real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
