package session

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

// cancellableStreamer ends the stream at the next chunk once cancelled.
type cancellableStreamer struct {
	streamer  beep.Streamer
	cancelled atomic.Bool
}

func (c *cancellableStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.cancelled.Load() {
		return 0, false
	}
	return c.streamer.Stream(samples)
}

func (c *cancellableStreamer) Err() error {
	return c.streamer.Err()
}

func (c *cancellableStreamer) Cancel() {
	c.cancelled.Store(true)
}
